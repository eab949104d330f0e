// Package discord implements the notify Adapter for Discord. Events
// are posted as channel embeds over the REST API; Greenlight never
// listens, so no Gateway connection is opened.
package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/greenlight/internal/notify"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// realSession wraps *discordgo.Session to implement the session interface.
type realSession struct {
	s *discordgo.Session
}

func (r *realSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return r.s.ChannelMessageSendEmbed(channelID, embed, options...)
}

func (r *realSession) Close() error { return r.s.Close() }

// Adapter posts readiness events to a Discord channel.
type Adapter struct {
	sess      session
	channelID string
}

// AdapterOpts holds parameters for creating a Discord Adapter.
type AdapterOpts struct {
	BotToken  string // Discord bot token
	ChannelID string // channel to post to
	// For testing: inject a mock session instead of the real Discord API.
	Session session
}

// New creates a Discord Adapter.
func New(opts AdapterOpts) (*Adapter, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel ID is required")
	}

	a := &Adapter{channelID: opts.ChannelID}
	if opts.Session != nil {
		a.sess = opts.Session
	} else {
		dg, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("discord: create session: %w", err)
		}
		a.sess = &realSession{s: dg}
	}
	return a, nil
}

// Send posts an event to the channel as an embed.
func (a *Adapter) Send(ctx context.Context, evt notify.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := a.sess.ChannelMessageSendEmbed(a.channelID, eventToEmbed(evt)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (a *Adapter) Close() error {
	return a.sess.Close()
}

// eventToEmbed converts a notify.Event to a Discord embed.
func eventToEmbed(evt notify.Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       evt.Title,
		Description: evt.Body,
		Color:       parseColor(evt.Color),
	}
	for _, f := range evt.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Short,
		})
	}
	if !evt.Timestamp.IsZero() {
		embed.Timestamp = evt.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	}
	return embed
}

// parseColor converts a "#rrggbb" hint into Discord's integer color.
// Unknown formats fall back to neutral grey.
func parseColor(hex string) int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0x95a5a6
	}
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0x95a5a6
	}
	return int(v)
}
