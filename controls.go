package dgmenu

import (
	"context"
	"sync/atomic"
)

// helpShownKey is the data key for the shared help-visibility flag.
type helpShownKey struct{}

// NextPage advances the menu to the next page, wrapping at the end.
func NextPage(ctx context.Context, m *Menu, _ Reaction) error {
	m.current = (m.current + 1) % len(m.pages)
	return m.display(ctx)
}

// PreviousPage moves the menu to the previous page, wrapping at the start.
func PreviousPage(ctx context.Context, m *Menu, _ Reaction) error {
	if m.current == 0 {
		m.current = len(m.pages) - 1
	} else {
		m.current--
	}
	return m.display(ctx)
}

// CloseMenu strips all reactions from the message, marks the menu closed and
// removes it from the registry.
func CloseMenu(ctx context.Context, m *Menu, _ Reaction) error {
	if err := m.close(ctx); err != nil {
		return err
	}
	m.mgr.registry.Remove(m.Identity())
	return nil
}

// ToggleHelp appends a help block for the menu's controls onto the current
// page, or re-renders the plain page if help is already shown.
func ToggleHelp(ctx context.Context, m *Menu, _ Reaction) error {
	shown, ok := m.Data(helpShownKey{}).(*atomic.Bool)
	if !ok {
		shown = new(atomic.Bool)
		m.SetData(helpShownKey{}, shown)
	}

	if shown.Load() {
		if err := m.display(ctx); err != nil {
			return err
		}
		shown.Store(false)
		return nil
	}

	page, err := m.CurrentPage()
	if err != nil {
		return err
	}
	content, err := page.Get(ctx)
	if err != nil {
		return err
	}

	content = content.clone()
	if content.Embed == nil {
		content.Embed = &Embed{}
	}
	content.Embed.Fields = append(content.Embed.Fields, EmbedField{
		Name:  "Help",
		Value: m.helpMessage(),
	})

	if err := m.mgr.client.EditMessage(ctx, m.Identity(), content); err != nil {
		return err
	}
	shown.Store(true)
	return nil
}

// DisplayPage re-renders the current page. Useful as a custom control for
// menus whose page content changes over time.
func DisplayPage(ctx context.Context, m *Menu, _ Reaction) error {
	return m.display(ctx)
}
