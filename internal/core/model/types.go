package model

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// SessionLog is one line of an OpenClaw session transcript. Only the fields
// the usage report consumes are mapped; everything else on the line is
// ignored by the decoder.
type SessionLog struct {
	Timestamp string   `json:"timestamp"`
	Message   *Message `json:"message"`
	Model     string   `json:"model,omitempty"`
	Provider  string   `json:"provider,omitempty"`
	// Some writer versions attach usage to the outer record instead of the
	// message; consulted as a fallback.
	Usage *Usage `json:"usage,omitempty"`
}

type Message struct {
	Role     string          `json:"role"`
	Model    string          `json:"model,omitempty"`
	Provider string          `json:"provider,omitempty"`
	Content  FlexibleContent `json:"content,omitempty"`
	Usage    *Usage          `json:"usage,omitempty"`
}

// FlexibleContent accepts both message content encodings: an array of typed
// blocks or a bare string.
type FlexibleContent []ContentItem

func (fc *FlexibleContent) UnmarshalJSON(data []byte) error {
	// Decode arrays element by element: a stray non-block element must not
	// hide the text blocks around it.
	var elems []json.RawMessage
	if err := sonic.Unmarshal(data, &elems); err == nil {
		items := make([]ContentItem, 0, len(elems))
		for _, elem := range elems {
			var item ContentItem
			if err := sonic.Unmarshal(elem, &item); err != nil {
				continue
			}
			items = append(items, item)
		}
		*fc = items
		return nil
	}

	var str string
	if err := sonic.Unmarshal(data, &str); err == nil {
		*fc = []ContentItem{{Type: "text", Text: str}}
		return nil
	}

	// Any other shape carries no extractable text. Never an error: a weird
	// content payload must not take the rest of the message down with it.
	*fc = nil
	return nil
}

// Text returns the text of the first text block, or "" if there is none.
func (fc FlexibleContent) Text() string {
	for _, item := range fc {
		if item.Type == "text" {
			return item.Text
		}
	}
	return ""
}

type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Usage holds one assistant reply's billed token counts as reported by the
// provider. TotalTokens is trusted, not recomputed from the parts.
type Usage struct {
	Input       int64         `json:"input"`
	Output      int64         `json:"output"`
	CacheRead   int64         `json:"cacheRead"`
	CacheWrite  int64         `json:"cacheWrite"`
	TotalTokens int64         `json:"totalTokens"`
	Cost        CostBreakdown `json:"cost"`
}

// IsZero reports whether the usage is absent or carries no billed data at
// all. An empty usage object is treated the same as a missing one: it must
// not shadow usage reported on the outer record.
func (u *Usage) IsZero() bool {
	return u == nil || *u == (Usage{})
}

type CostBreakdown struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheRead  float64 `json:"cacheRead"`
	CacheWrite float64 `json:"cacheWrite"`
	Total      float64 `json:"total"`
}
