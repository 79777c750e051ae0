package channel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openclaw/clawstats/internal/core/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected model.ChannelTag
	}{
		{"telegram marker", "[Telegram chat_id:42] hello", model.ChannelTelegram},
		{"discord marker", "[Discord #general] hey", model.ChannelDiscord},
		{"signal marker", "[Signal +1555] hi", model.ChannelSignal},
		{"slack marker", "[Slack #random] yo", model.ChannelSlack},
		{"webchat marker", "[message_id: abc123] question", model.ChannelWebchat},
		{"marker mid-text", "forwarded: [Discord #ops] restart please", model.ChannelDiscord},
		{"no marker", "plain message with no markers", model.ChannelOther},
		{"empty text", "", model.ChannelOther},
		{"bracket but no known marker", "[Matrix room] hello", model.ChannelOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// Telegram-origin messages may also carry the relay's [message_id:
	// marker; Telegram must win over webchat.
	text := "[Telegram chat_id:42] [message_id: m-1] hello"
	assert.Equal(t, model.ChannelTelegram, Classify(text))

	// The same holds for the other named platforms.
	assert.Equal(t, model.ChannelDiscord, Classify("[Discord] [message_id: m-2] hi"))
	assert.Equal(t, model.ChannelSignal, Classify("[Signal] [message_id: m-3] hi"))
	assert.Equal(t, model.ChannelSlack, Classify("[Slack] [message_id: m-4] hi"))

	// Order among the platform markers themselves: first match in the text
	// does not matter, precedence order does.
	assert.Equal(t, model.ChannelTelegram, Classify("[Discord] then [Telegram] later"))
}

func TestClassifyDeterministic(t *testing.T) {
	text := "[Telegram] " + strings.Repeat("x", 1000) + " [message_id: z]"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
