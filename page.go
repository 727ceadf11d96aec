package dgmenu

import "context"

// Content is the renderable body of one message.
type Content struct {
	Text  string
	Embed *Embed
}

// Embed is a rich content block attached to a message.
type Embed struct {
	Title       string
	Description string
	Fields      []EmbedField
}

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// clone returns a deep copy so that callers may decorate the content without
// mutating what the page produced.
func (c Content) clone() Content {
	if c.Embed == nil {
		return c
	}
	embed := *c.Embed
	embed.Fields = append([]EmbedField(nil), c.Embed.Fields...)
	c.Embed = &embed
	return c
}

// Page produces the content of one menu page. Content is fetched on demand
// every time the page is displayed, never cached by the menu.
type Page struct {
	fetch func(ctx context.Context) (Content, error)
}

// NewPage creates a page with fixed content.
func NewPage(content Content) *Page {
	return &Page{fetch: func(context.Context) (Content, error) {
		return content, nil
	}}
}

// PageFunc creates a page whose content is produced lazily on every display.
func PageFunc(fn func(ctx context.Context) (Content, error)) *Page {
	return &Page{fetch: fn}
}

// Get fetches the page's current content.
func (p *Page) Get(ctx context.Context) (Content, error) {
	return p.fetch(ctx)
}
