package model

// ChannelTag identifies the communication surface a user turn arrived
// through, inferred from markers in the message text.
type ChannelTag string

const (
	ChannelTelegram ChannelTag = "telegram"
	ChannelDiscord  ChannelTag = "discord"
	ChannelSignal   ChannelTag = "signal"
	ChannelSlack    ChannelTag = "slack"
	ChannelWebchat  ChannelTag = "webchat"
	ChannelOther    ChannelTag = "other"
	// ChannelUnknown marks assistant replies seen before any user message
	// in the file.
	ChannelUnknown ChannelTag = "unknown"
)

// UsageRecord is one assistant reply's billed usage plus derived metadata.
// It is never mutated after construction, only folded into aggregates.
type UsageRecord struct {
	Date      string     `json:"date"` // calendar day in fixed PST
	Hour      int        `json:"hour"` // 0-23, fixed PST
	Model     string     `json:"model"`
	Provider  string     `json:"provider"`
	SessionID string     `json:"session_id"` // first 8 chars of the file stem
	Channel   ChannelTag `json:"channel"`

	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheRead  int64 `json:"cache_read"`
	CacheWrite int64 `json:"cache_write"`
	Total      int64 `json:"total"`

	Cost           float64 `json:"cost"`
	CostInput      float64 `json:"cost_input"`
	CostOutput     float64 `json:"cost_output"`
	CostCacheRead  float64 `json:"cost_cache_read"`
	CostCacheWrite float64 `json:"cost_cache_write"`
}
