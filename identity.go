package dgmenu

import (
	"fmt"
	"sync"
)

// MessageIdentity identifies one message on the platform at a point in time.
// It is not stable over the lifetime of a menu: a sticky menu that relocates
// itself gets a new identity (see Registry.Rekey).
type MessageIdentity struct {
	ChannelID uint64
	MessageID uint64
}

// NewMessageIdentity creates an identity from raw channel and message IDs.
func NewMessageIdentity(channelID, messageID uint64) MessageIdentity {
	return MessageIdentity{ChannelID: channelID, MessageID: messageID}
}

// Compare orders identities by channel ID, then message ID.
// Returns -1, 0 or 1.
func (id MessageIdentity) Compare(other MessageIdentity) int {
	switch {
	case id.ChannelID < other.ChannelID:
		return -1
	case id.ChannelID > other.ChannelID:
		return 1
	case id.MessageID < other.MessageID:
		return -1
	case id.MessageID > other.MessageID:
		return 1
	}
	return 0
}

// IsZero reports whether the identity is the zero value.
func (id MessageIdentity) IsZero() bool {
	return id.ChannelID == 0 && id.MessageID == 0
}

func (id MessageIdentity) String() string {
	return fmt.Sprintf("%d/%d", id.ChannelID, id.MessageID)
}

// IdentityCell is a shared, lock-protected message identity.
//
// A menu and the registry key it is filed under must agree on the identity
// even while relocation changes it, so every holder reads through the cell
// instead of keeping a copy. The cell is only ever written during relocation,
// together with the registry rekey.
type IdentityCell struct {
	mu sync.RWMutex
	id MessageIdentity
}

// NewIdentityCell creates a cell holding the given identity.
func NewIdentityCell(id MessageIdentity) *IdentityCell {
	return &IdentityCell{id: id}
}

// Get returns the current identity.
func (c *IdentityCell) Get() MessageIdentity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

func (c *IdentityCell) set(id MessageIdentity) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}
