package dgmenu

import (
	"context"
	"sync"
)

// mockClient implements MessagingClient in memory, recording every call for
// assertions.
type mockClient struct {
	mu     sync.Mutex
	nextID uint64

	sent             []sentMessage
	edits            []editedMessage
	deleted          []MessageIdentity
	reactionsAdded   []addedReaction
	reactionsRemoved []removedReaction
	reactionsCleared []MessageIdentity

	// newerMessages is returned by MessagesAfter, keyed by channel.
	newerMessages map[uint64][]MessageRef

	// onAddReaction, when set, observes every AddReaction call.
	onAddReaction func(id MessageIdentity, emoji string)

	// failEdit, when set, is returned by EditMessage.
	failEdit error

	currentUser UserRef
}

type sentMessage struct {
	channelID uint64
	identity  MessageIdentity
	content   Content
}

type editedMessage struct {
	identity MessageIdentity
	content  Content
}

type addedReaction struct {
	identity MessageIdentity
	emoji    string
}

type removedReaction struct {
	identity MessageIdentity
	emoji    string
	userID   uint64
}

func newMockClient() *mockClient {
	return &mockClient{
		nextID:      1000,
		currentUser: UserRef{ID: 1, Name: "bot"},
	}
}

func (c *mockClient) SendMessage(_ context.Context, channelID uint64, content Content) (MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	ref := MessageRef{Identity: NewMessageIdentity(channelID, c.nextID)}
	c.sent = append(c.sent, sentMessage{channelID: channelID, identity: ref.Identity, content: content})
	return ref, nil
}

func (c *mockClient) EditMessage(_ context.Context, id MessageIdentity, content Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failEdit != nil {
		return c.failEdit
	}
	c.edits = append(c.edits, editedMessage{identity: id, content: content})
	return nil
}

func (c *mockClient) DeleteMessage(_ context.Context, id MessageIdentity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	return nil
}

func (c *mockClient) AddReaction(_ context.Context, id MessageIdentity, emoji string) error {
	c.mu.Lock()
	hook := c.onAddReaction
	c.reactionsAdded = append(c.reactionsAdded, addedReaction{identity: id, emoji: emoji})
	c.mu.Unlock()
	if hook != nil {
		hook(id, emoji)
	}
	return nil
}

func (c *mockClient) RemoveReaction(_ context.Context, id MessageIdentity, emoji string, userID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reactionsRemoved = append(c.reactionsRemoved, removedReaction{identity: id, emoji: emoji, userID: userID})
	return nil
}

func (c *mockClient) RemoveAllReactions(_ context.Context, id MessageIdentity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reactionsCleared = append(c.reactionsCleared, id)
	return nil
}

func (c *mockClient) MessagesAfter(_ context.Context, channelID uint64, _ MessageIdentity, limit int) ([]MessageRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	refs := c.newerMessages[channelID]
	if len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (c *mockClient) CurrentUser(context.Context) (UserRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentUser, nil
}

// snapshot accessors, safe against concurrent background tasks.

func (c *mockClient) deletedMessages() []MessageIdentity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MessageIdentity(nil), c.deleted...)
}

func (c *mockClient) addedReactions() []addedReaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]addedReaction(nil), c.reactionsAdded...)
}

func (c *mockClient) removedReactions() []removedReaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]removedReaction(nil), c.reactionsRemoved...)
}

func (c *mockClient) editedMessages() []editedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]editedMessage(nil), c.edits...)
}

func (c *mockClient) setNewerMessages(channelID uint64, refs ...MessageRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.newerMessages == nil {
		c.newerMessages = make(map[uint64][]MessageRef)
	}
	c.newerMessages[channelID] = refs
}

// newTestManager creates a Manager around a fresh mock client.
func newTestManager(opts ...Option) (*Manager, *mockClient) {
	client := newMockClient()
	m, err := New(client, opts...)
	if err != nil {
		panic(err)
	}
	return m, client
}
