// Package channel infers the communication surface of a user message from
// markers the OpenClaw relays prepend to the text.
package channel

import (
	"strings"

	"github.com/openclaw/clawstats/internal/core/model"
)

type marker struct {
	substr string
	tag    model.ChannelTag
}

// markers is checked in order, first match wins. Telegram must be checked
// before the webchat marker: Telegram-origin messages may also carry a
// [message_id: marker injected by a downstream relay.
var markers = []marker{
	{"[Telegram", model.ChannelTelegram},
	{"[Discord", model.ChannelDiscord},
	{"[Signal", model.ChannelSignal},
	{"[Slack", model.ChannelSlack},
	{"[message_id:", model.ChannelWebchat},
}

// Classify maps raw message text to a channel tag. Total and deterministic:
// text with no marker, including the empty string, classifies as other.
func Classify(text string) model.ChannelTag {
	for _, m := range markers {
		if strings.Contains(text, m.substr) {
			return m.tag
		}
	}
	return model.ChannelOther
}
