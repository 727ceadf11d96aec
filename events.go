package dgmenu

// Kind identifies one notification shape routed through the Dispatcher.
// Kinds are plain strings so that applications can define their own events
// without touching this package.
type Kind string

// Built-in notification kinds.
const (
	// KindReady fires once the gateway connection is established.
	KindReady Kind = "ready"
	// KindReactionAdd fires when a reaction is added to any message.
	KindReactionAdd Kind = "reaction_add"
	// KindReactionRemove fires when a reaction is removed from any message.
	KindReactionRemove Kind = "reaction_remove"
	// KindMessageDelete fires when a single message is deleted.
	KindMessageDelete Kind = "message_delete"
	// KindMessageBulkDelete fires when multiple messages are deleted at once.
	KindMessageBulkDelete Kind = "message_bulk_delete"
)

// Event is a notification that can be routed through the Dispatcher.
// Kind must be callable on a zero value.
type Event interface {
	Kind() Kind
}

// Reaction describes one reaction on one message.
type Reaction struct {
	// Identity is the message the reaction belongs to.
	Identity MessageIdentity
	// Emoji is the reaction symbol.
	Emoji string
	// UserID is the acting user. Zero when the platform did not resolve one.
	UserID uint64
	// Me reports whether the acting user is the bot itself.
	Me bool
}

// Ready signals that the connection is up and background work may start.
type Ready struct{}

func (Ready) Kind() Kind { return KindReady }

// ReactionAdd signals that a reaction was added to a message.
type ReactionAdd struct {
	Reaction
}

func (ReactionAdd) Kind() Kind { return KindReactionAdd }

// ReactionRemove signals that a reaction was removed from a message.
type ReactionRemove struct {
	Reaction
}

func (ReactionRemove) Kind() Kind { return KindReactionRemove }

// MessageDelete signals that a single message was deleted.
type MessageDelete struct {
	Identity MessageIdentity
}

func (MessageDelete) Kind() Kind { return KindMessageDelete }

// MessageBulkDelete signals that several messages in one channel were deleted.
type MessageBulkDelete struct {
	ChannelID  uint64
	MessageIDs []uint64
}

func (MessageBulkDelete) Kind() Kind { return KindMessageBulkDelete }
