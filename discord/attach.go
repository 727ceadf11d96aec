package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/dgmenu/dgmenu"
)

// Attach registers gateway handlers on the session that translate raw Discord
// events into dgmenu notifications: Ready, reaction add/remove and single and
// bulk message deletion. Call it once, before opening the session.
func Attach(s *discordgo.Session, m *dgmenu.Manager) {
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		m.Dispatch(context.Background(), dgmenu.Ready{})
	})
	s.AddHandler(func(s *discordgo.Session, e *discordgo.MessageReactionAdd) {
		r, err := toReaction(s, e.MessageReaction)
		if err != nil {
			m.Logger().Error("dropping malformed reaction event", "error", err)
			return
		}
		m.Dispatch(context.Background(), dgmenu.ReactionAdd{Reaction: r})
	})
	s.AddHandler(func(s *discordgo.Session, e *discordgo.MessageReactionRemove) {
		r, err := toReaction(s, e.MessageReaction)
		if err != nil {
			m.Logger().Error("dropping malformed reaction event", "error", err)
			return
		}
		m.Dispatch(context.Background(), dgmenu.ReactionRemove{Reaction: r})
	})
	s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDelete) {
		id, err := toIdentity(e.ChannelID, e.ID)
		if err != nil {
			m.Logger().Error("dropping malformed delete event", "error", err)
			return
		}
		m.Dispatch(context.Background(), dgmenu.MessageDelete{Identity: id})
	})
	s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDeleteBulk) {
		channelID, err := parseSnowflake(e.ChannelID)
		if err != nil {
			m.Logger().Error("dropping malformed bulk delete event", "error", err)
			return
		}
		messageIDs := make([]uint64, 0, len(e.Messages))
		for _, raw := range e.Messages {
			msgID, err := parseSnowflake(raw)
			if err != nil {
				m.Logger().Error("dropping malformed bulk delete event", "error", err)
				return
			}
			messageIDs = append(messageIDs, msgID)
		}
		m.Dispatch(context.Background(), dgmenu.MessageBulkDelete{
			ChannelID:  channelID,
			MessageIDs: messageIDs,
		})
	})
}

// toReaction converts a gateway reaction, resolving whether it came from the
// bot itself via the session state.
func toReaction(s *discordgo.Session, r *discordgo.MessageReaction) (dgmenu.Reaction, error) {
	id, err := toIdentity(r.ChannelID, r.MessageID)
	if err != nil {
		return dgmenu.Reaction{}, err
	}

	var userID uint64
	if r.UserID != "" {
		userID, err = parseSnowflake(r.UserID)
		if err != nil {
			return dgmenu.Reaction{}, err
		}
	}

	me := false
	if s.State != nil && s.State.User != nil {
		me = r.UserID == s.State.User.ID
	}

	return dgmenu.Reaction{
		Identity: id,
		Emoji:    r.Emoji.APIName(),
		UserID:   userID,
		Me:       me,
	}, nil
}

func toIdentity(channelID, messageID string) (dgmenu.MessageIdentity, error) {
	chID, err := parseSnowflake(channelID)
	if err != nil {
		return dgmenu.MessageIdentity{}, err
	}
	msgID, err := parseSnowflake(messageID)
	if err != nil {
		return dgmenu.MessageIdentity{}, err
	}
	return dgmenu.NewMessageIdentity(chID, msgID), nil
}
