// Package discord adapts a discordgo session to the dgmenu core: it
// implements dgmenu.MessagingClient on top of the Discord REST API and
// bridges gateway events into the dgmenu dispatcher.
package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/dgmenu/dgmenu"
)

// Client implements dgmenu.MessagingClient using a discordgo session.
type Client struct {
	session *discordgo.Session
}

// NewClient wraps a discordgo session.
func NewClient(s *discordgo.Session) *Client {
	return &Client{session: s}
}

// SendMessage posts a new message to the channel.
func (c *Client) SendMessage(ctx context.Context, channelID uint64, content dgmenu.Content) (dgmenu.MessageRef, error) {
	msg, err := c.session.ChannelMessageSendComplex(
		formatSnowflake(channelID), toMessageSend(content), discordgo.WithContext(ctx))
	if err != nil {
		return dgmenu.MessageRef{}, err
	}
	msgID, err := parseSnowflake(msg.ID)
	if err != nil {
		return dgmenu.MessageRef{}, err
	}
	return dgmenu.MessageRef{Identity: dgmenu.NewMessageIdentity(channelID, msgID)}, nil
}

// EditMessage replaces the content of an existing message.
func (c *Client) EditMessage(ctx context.Context, id dgmenu.MessageIdentity, content dgmenu.Content) error {
	_, err := c.session.ChannelMessageEditComplex(toMessageEdit(id, content), discordgo.WithContext(ctx))
	return err
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, id dgmenu.MessageIdentity) error {
	return c.session.ChannelMessageDelete(
		formatSnowflake(id.ChannelID), formatSnowflake(id.MessageID), discordgo.WithContext(ctx))
}

// AddReaction adds the bot's reaction to a message.
func (c *Client) AddReaction(ctx context.Context, id dgmenu.MessageIdentity, emoji string) error {
	return c.session.MessageReactionAdd(
		formatSnowflake(id.ChannelID), formatSnowflake(id.MessageID), emoji, discordgo.WithContext(ctx))
}

// RemoveReaction removes one user's reaction from a message.
func (c *Client) RemoveReaction(ctx context.Context, id dgmenu.MessageIdentity, emoji string, userID uint64) error {
	return c.session.MessageReactionRemove(
		formatSnowflake(id.ChannelID), formatSnowflake(id.MessageID), emoji,
		formatSnowflake(userID), discordgo.WithContext(ctx))
}

// RemoveAllReactions strips every reaction from a message.
func (c *Client) RemoveAllReactions(ctx context.Context, id dgmenu.MessageIdentity) error {
	return c.session.MessageReactionsRemoveAll(
		formatSnowflake(id.ChannelID), formatSnowflake(id.MessageID), discordgo.WithContext(ctx))
}

// MessagesAfter lists up to limit messages posted after the given one.
func (c *Client) MessagesAfter(ctx context.Context, channelID uint64, after dgmenu.MessageIdentity, limit int) ([]dgmenu.MessageRef, error) {
	msgs, err := c.session.ChannelMessages(
		formatSnowflake(channelID), limit, "", formatSnowflake(after.MessageID), "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	refs := make([]dgmenu.MessageRef, 0, len(msgs))
	for _, msg := range msgs {
		msgID, err := parseSnowflake(msg.ID)
		if err != nil {
			return nil, err
		}
		refs = append(refs, dgmenu.MessageRef{Identity: dgmenu.NewMessageIdentity(channelID, msgID)})
	}
	return refs, nil
}

// CurrentUser returns the bot's own user, from the session state when
// available.
func (c *Client) CurrentUser(ctx context.Context) (dgmenu.UserRef, error) {
	user := c.stateUser()
	if user == nil {
		var err error
		user, err = c.session.User("@me", discordgo.WithContext(ctx))
		if err != nil {
			return dgmenu.UserRef{}, err
		}
	}
	userID, err := parseSnowflake(user.ID)
	if err != nil {
		return dgmenu.UserRef{}, err
	}
	return dgmenu.UserRef{ID: userID, Name: user.Username}, nil
}

func (c *Client) stateUser() *discordgo.User {
	if c.session.State == nil {
		return nil
	}
	return c.session.State.User
}

// parseSnowflake converts a Discord string ID to its numeric form.
func parseSnowflake(id string) (uint64, error) {
	return strconv.ParseUint(id, 10, 64)
}

func formatSnowflake(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// toMessageSend converts content for the send endpoint.
func toMessageSend(content dgmenu.Content) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: content.Text}
	if content.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toEmbed(content.Embed)}
	}
	return send
}

// toMessageEdit converts content for the edit endpoint. Content and Embeds
// are always set so that an edit fully replaces the previous rendering,
// dropping embeds that are no longer present.
func toMessageEdit(id dgmenu.MessageIdentity, content dgmenu.Content) *discordgo.MessageEdit {
	edit := discordgo.NewMessageEdit(formatSnowflake(id.ChannelID), formatSnowflake(id.MessageID))
	edit.Content = &content.Text
	embeds := []*discordgo.MessageEmbed{}
	if content.Embed != nil {
		embeds = append(embeds, toEmbed(content.Embed))
	}
	edit.Embeds = &embeds
	return edit
}

func toEmbed(e *dgmenu.Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}
