package dgmenu

import (
	"context"
	"sort"
	"time"
)

// Default control emojis.
const (
	NextPageEmoji     = "➡️"
	PreviousPageEmoji = "⬅️"
	CloseMenuEmoji    = "❌"
	HelpEmoji         = "❔"
)

// ActionFunc runs one menu control. It executes with exclusive access to the
// menu's state.
type ActionFunc func(ctx context.Context, m *Menu, r Reaction) error

// Action binds a control callback to its display position. Lower positions
// sort first in help text and reaction order.
type Action struct {
	Run      ActionFunc
	Position int
}

// Menu is a paginated, reaction-controlled message. It implements Listener
// and is driven entirely through the registry: reactions and ticks arrive
// under the menu's handle lock, so its state needs no further synchronization.
type Menu struct {
	mgr         *Manager
	cell        *IdentityCell
	pages       []*Page
	current     int
	controls    map[string]Action
	helpEntries map[string]string
	deadline    time.Time
	sticky      bool
	owner       uint64
	closed      bool
	data        map[any]any
}

// Identity returns the menu message's current identity.
func (m *Menu) Identity() MessageIdentity { return m.cell.Get() }

// Cell returns the shared identity cell. Holders must read the identity
// through it: relocation changes the identity while the menu lives.
func (m *Menu) Cell() *IdentityCell { return m.cell }

// CurrentIndex returns the 0-based index of the current page.
func (m *Menu) CurrentIndex() int { return m.current }

// PageCount returns the number of pages, fixed at build time.
func (m *Menu) PageCount() int { return len(m.pages) }

// CurrentPage returns the current page.
func (m *Menu) CurrentPage() (*Page, error) {
	if m.current < 0 || m.current >= len(m.pages) {
		return nil, &PageNotFoundError{Index: m.current}
	}
	return m.pages[m.current], nil
}

// Data returns the auxiliary value stored under key, or nil.
func (m *Menu) Data(key any) any { return m.data[key] }

// SetData stores an auxiliary value under key.
func (m *Menu) SetData(key, value any) { m.data[key] = value }

// Finished reports whether the menu has been closed.
func (m *Menu) Finished() bool { return m.closed }

// OnTick closes the menu once its deadline has passed. Before that, a sticky
// menu checks whether newer messages exist in its channel and relocates itself
// to stay last.
func (m *Menu) OnTick(ctx context.Context) error {
	if m.closed {
		return nil
	}

	if !time.Now().Before(m.deadline) {
		m.mgr.logger.Debug("menu deadline reached, closing", "message", m.Identity())
		return m.close(ctx)
	}

	if m.sticky {
		id := m.Identity()
		newer, err := m.mgr.client.MessagesAfter(ctx, id.ChannelID, id, 1)
		if err != nil {
			return err
		}
		if len(newer) > 0 {
			m.mgr.logger.Debug("newer messages in channel, relocating menu", "message", id)
			return m.relocate(ctx)
		}
	}

	return nil
}

// OnDeleted marks the menu closed; the remote message is already gone.
func (m *Menu) OnDeleted(ctx context.Context) error {
	m.closed = true
	return nil
}

// OnReactionAdd handles one added reaction. The bot's own reactions are
// ignored. Every other reaction is stripped from the message first — controls
// are buttons, not toggles — and only then checked against the owner
// restriction and the control map.
func (m *Menu) OnReactionAdd(ctx context.Context, r Reaction) error {
	if m.closed {
		return nil
	}
	if r.Me {
		return nil
	}
	if r.UserID == 0 {
		return ErrNoReactionUser
	}

	if err := m.mgr.client.RemoveReaction(ctx, m.Identity(), r.Emoji, r.UserID); err != nil {
		return err
	}

	if m.owner != 0 && r.UserID != m.owner {
		m.mgr.logger.Debug("reaction from non-owner ignored", "message", m.Identity(), "user", r.UserID)
		return nil
	}

	action, ok := m.controls[r.Emoji]
	if !ok {
		return nil
	}
	return action.Run(ctx, m, r)
}

// OnReactionRemove is a no-op: controls strip their own reactions.
func (m *Menu) OnReactionRemove(ctx context.Context, r Reaction) error {
	return nil
}

// close strips all reactions from the message and marks the menu closed.
// The sweeper evicts closed menus; CloseMenu also evicts immediately.
func (m *Menu) close(ctx context.Context) error {
	if err := m.mgr.client.RemoveAllReactions(ctx, m.Identity()); err != nil {
		return err
	}
	m.closed = true
	return nil
}

// display re-renders the current page onto the existing message.
func (m *Menu) display(ctx context.Context) error {
	page, err := m.CurrentPage()
	if err != nil {
		return err
	}
	content, err := page.Get(ctx)
	if err != nil {
		return err
	}
	return m.mgr.client.EditMessage(ctx, m.Identity(), content)
}

// relocate re-sends the current page as a brand-new message in the same
// channel, re-attaches the control reactions, moves the registry entry to the
// new identity and only then deletes the old message. A missing old entry
// during the rekey means the registry and this menu disagree about the
// identity; that error is surfaced, never swallowed.
func (m *Menu) relocate(ctx context.Context) error {
	old := m.Identity()

	page, err := m.CurrentPage()
	if err != nil {
		return err
	}
	content, err := page.Get(ctx)
	if err != nil {
		return err
	}

	ref, err := m.mgr.client.SendMessage(ctx, old.ChannelID, content)
	if err != nil {
		return err
	}
	for _, c := range sortedControls(m.controls) {
		if err := m.mgr.client.AddReaction(ctx, ref.Identity, c.emoji); err != nil {
			return err
		}
	}

	m.cell.set(ref.Identity)
	if err := m.mgr.registry.Rekey(old, ref.Identity); err != nil {
		m.mgr.logger.Error("registry lost menu entry during relocation", "old", old, "new", ref.Identity, "error", err)
		return err
	}

	return m.mgr.client.DeleteMessage(ctx, old)
}

// helpMessage renders one line per control that has a help entry, ordered by
// ascending position. Controls without help entries are omitted.
func (m *Menu) helpMessage() string {
	type line struct {
		emoji    string
		help     string
		position int
	}
	lines := make([]line, 0, len(m.helpEntries))
	for emoji, help := range m.helpEntries {
		action, ok := m.controls[emoji]
		if !ok {
			continue
		}
		lines = append(lines, line{emoji: emoji, help: help, position: action.Position})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].position != lines[j].position {
			return lines[i].position < lines[j].position
		}
		return lines[i].emoji < lines[j].emoji
	})

	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += " - " + l.emoji + " " + l.help
	}
	return out
}

// sortedControl pairs an emoji with its action for ordered iteration.
type sortedControl struct {
	emoji  string
	action Action
}

func sortedControls(controls map[string]Action) []sortedControl {
	out := make([]sortedControl, 0, len(controls))
	for emoji, action := range controls {
		out = append(out, sortedControl{emoji: emoji, action: action})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].action.Position != out[j].action.Position {
			return out[i].action.Position < out[j].action.Position
		}
		return out[i].emoji < out[j].emoji
	})
	return out
}
