package dgmenu

import (
	"context"
	"sync/atomic"
	"time"
)

// MenuBuilder accumulates the configuration of one menu and creates it with
// Build. Builders are not safe for concurrent use and must not be reused.
type MenuBuilder struct {
	mgr         *Manager
	pages       []*Page
	startPage   int
	controls    map[string]Action
	helpEntries map[string]string
	timeout     time.Duration
	sticky      bool
	owner       uint64
	data        map[any]any
}

// NewMenu creates an empty menu builder with a 60 second timeout and no
// controls.
func (m *Manager) NewMenu() *MenuBuilder {
	return &MenuBuilder{
		mgr:         m,
		controls:    make(map[string]Action),
		helpEntries: make(map[string]string),
		timeout:     LongTimeout,
		data:        make(map[any]any),
	}
}

// NewPaginator creates a menu builder preloaded with the standard pagination
// controls: previous page, close and next page.
func (m *Manager) NewPaginator() *MenuBuilder {
	return m.NewMenu().
		AddControl(0, PreviousPageEmoji, PreviousPage).
		AddHelp(PreviousPageEmoji, "Displays the previous page").
		AddControl(1, CloseMenuEmoji, CloseMenu).
		AddHelp(CloseMenuEmoji, "Closes the menu buttons").
		AddControl(2, NextPageEmoji, NextPage).
		AddHelp(NextPageEmoji, "Displays the next page")
}

// AddPage appends a page.
func (b *MenuBuilder) AddPage(p *Page) *MenuBuilder {
	b.pages = append(b.pages, p)
	return b
}

// AddPages appends multiple pages in order.
func (b *MenuBuilder) AddPages(pages ...*Page) *MenuBuilder {
	b.pages = append(b.pages, pages...)
	return b
}

// AddControl binds an action to an emoji. Adding a control for an emoji that
// already has one replaces it.
func (b *MenuBuilder) AddControl(position int, emoji string, fn ActionFunc) *MenuBuilder {
	b.controls[emoji] = Action{Run: fn, Position: position}
	return b
}

// AddHelp sets the help line shown for a control when help is toggled on.
func (b *MenuBuilder) AddHelp(emoji, help string) *MenuBuilder {
	b.helpEntries[emoji] = help
	return b
}

// Timeout sets how long the menu stays alive. The duration is converted to an
// absolute deadline when Build runs.
func (b *MenuBuilder) Timeout(d time.Duration) *MenuBuilder {
	b.timeout = d
	return b
}

// StartPage sets the page the menu opens on.
func (b *MenuBuilder) StartPage(index int) *MenuBuilder {
	b.startPage = index
	return b
}

// Sticky keeps the menu the last message in its channel by relocating it when
// newer messages appear.
func (b *MenuBuilder) Sticky(sticky bool) *MenuBuilder {
	b.sticky = sticky
	return b
}

// Owner restricts the menu's controls to one user. Reactions from other users
// are still removed from the message but trigger nothing.
func (b *MenuBuilder) Owner(userID uint64) *MenuBuilder {
	b.owner = userID
	return b
}

// AddData stores an auxiliary value on the menu, keyed by capability type.
func (b *MenuBuilder) AddData(key, value any) *MenuBuilder {
	b.data[key] = value
	return b
}

// ShowHelp adds the help-toggle control and the shared flag it stashes its
// state in.
func (b *MenuBuilder) ShowHelp() *MenuBuilder {
	return b.AddControl(100, HelpEmoji, ToggleHelp).
		AddData(helpShownKey{}, new(atomic.Bool))
}

// Build sends the initial message, registers the menu and attaches its
// control reactions in ascending position order. The registry entry exists
// before the first reaction is attached, so a reaction arriving the instant
// it appears already finds a live listener. Returns the shared identity cell
// for querying the menu's (possibly relocated) message later.
func (b *MenuBuilder) Build(ctx context.Context, channelID uint64) (*IdentityCell, error) {
	if b.mgr == nil || b.mgr.client == nil || b.mgr.registry == nil {
		return nil, ErrUninitialized
	}
	if b.startPage < 0 || b.startPage >= len(b.pages) {
		return nil, &PageNotFoundError{Index: b.startPage}
	}

	content, err := b.pages[b.startPage].Get(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := b.mgr.client.SendMessage(ctx, channelID, content)
	if err != nil {
		return nil, err
	}

	controls := sortedControls(b.controls)

	cell := NewIdentityCell(ref.Identity)
	menu := &Menu{
		mgr:         b.mgr,
		cell:        cell,
		pages:       b.pages,
		current:     b.startPage,
		controls:    b.controls,
		helpEntries: b.helpEntries,
		deadline:    time.Now().Add(b.timeout),
		sticky:      b.sticky,
		owner:       b.owner,
		data:        b.data,
	}

	if err := b.mgr.registry.Insert(ref.Identity, NewHandle(menu)); err != nil {
		return nil, err
	}

	for _, c := range controls {
		if err := b.mgr.client.AddReaction(ctx, ref.Identity, c.emoji); err != nil {
			return nil, err
		}
	}

	return cell, nil
}
