package dgmenu

import "context"

// MessageRef points at a message that exists on the platform.
type MessageRef struct {
	Identity MessageIdentity
}

// UserRef identifies one platform user.
type UserRef struct {
	ID   uint64
	Name string
}

// MessagingClient is the platform transport the library drives.
// The discord subpackage provides an implementation backed by a discordgo
// session; tests use an in-memory fake.
type MessagingClient interface {
	// SendMessage posts a new message to the channel.
	SendMessage(ctx context.Context, channelID uint64, content Content) (MessageRef, error)
	// EditMessage replaces the content of an existing message.
	EditMessage(ctx context.Context, id MessageIdentity, content Content) error
	// DeleteMessage deletes a message.
	DeleteMessage(ctx context.Context, id MessageIdentity) error
	// AddReaction adds the bot's reaction to a message.
	AddReaction(ctx context.Context, id MessageIdentity, emoji string) error
	// RemoveReaction removes one user's reaction from a message.
	RemoveReaction(ctx context.Context, id MessageIdentity, emoji string, userID uint64) error
	// RemoveAllReactions strips every reaction from a message.
	RemoveAllReactions(ctx context.Context, id MessageIdentity) error
	// MessagesAfter lists up to limit messages in the channel posted after
	// the given message.
	MessagesAfter(ctx context.Context, channelID uint64, after MessageIdentity, limit int) ([]MessageRef, error)
	// CurrentUser returns the bot's own user.
	CurrentUser(ctx context.Context) (UserRef, error)
}
