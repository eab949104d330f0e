package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/zulandar/greenlight/internal/notify"
)

// mockSession records sent embeds.
type mockSession struct {
	channels []string
	embeds   []*discordgo.MessageEmbed
	err      error
	closed   bool
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.channels = append(m.channels, channelID)
	m.embeds = append(m.embeds, embed)
	return &discordgo.Message{}, nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(AdapterOpts{ChannelID: "123"}); err == nil {
		t.Error("expected error without token or session")
	}
	if _, err := New(AdapterOpts{BotToken: "abc"}); err == nil {
		t.Error("expected error without channel ID")
	}
	if _, err := New(AdapterOpts{Session: &mockSession{}, ChannelID: "123"}); err != nil {
		t.Errorf("mock session should not need a token: %v", err)
	}
}

func TestSend(t *testing.T) {
	sess := &mockSession{}
	a, _ := New(AdapterOpts{Session: sess, ChannelID: "123"})

	evt := notify.Event{
		Title:     "ready",
		Body:      "all required items done",
		Color:     "#36a64f",
		Fields:    []notify.Field{{Name: "Project", Value: "Portal", Short: true}},
		Timestamp: time.Now(),
	}
	if err := a.Send(context.Background(), evt); err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(sess.embeds) != 1 || sess.channels[0] != "123" {
		t.Fatalf("embeds = %d, channels = %v", len(sess.embeds), sess.channels)
	}
	embed := sess.embeds[0]
	if embed.Title != "ready" || embed.Description != "all required items done" {
		t.Errorf("embed = %+v", embed)
	}
	if embed.Color != 0x36a64f {
		t.Errorf("color = %#x, want 0x36a64f", embed.Color)
	}
	if len(embed.Fields) != 1 || !embed.Fields[0].Inline {
		t.Errorf("fields = %+v", embed.Fields)
	}
	if embed.Timestamp == "" {
		t.Error("timestamp should be set")
	}
}

func TestSend_Error(t *testing.T) {
	sess := &mockSession{err: errors.New("missing access")}
	a, _ := New(AdapterOpts{Session: sess, ChannelID: "123"})
	if err := a.Send(context.Background(), notify.Event{Title: "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSend_CancelledContext(t *testing.T) {
	sess := &mockSession{}
	a, _ := New(AdapterOpts{Session: sess, ChannelID: "123"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Send(ctx, notify.Event{Title: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(sess.embeds) != 0 {
		t.Error("nothing should be sent on a cancelled context")
	}
}

func TestClose(t *testing.T) {
	sess := &mockSession{}
	a, _ := New(AdapterOpts{Session: sess, ChannelID: "123"})
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !sess.closed {
		t.Error("Close should close the session")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"#36a64f", 0x36a64f},
		{"daa038", 0xdaa038},
		{"", 0x95a5a6},
		{"#xyz", 0x95a5a6},
		{"#12345", 0x95a5a6},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
