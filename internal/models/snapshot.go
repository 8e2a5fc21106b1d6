package models

import json "github.com/goccy/go-json"

// Snapshot is the frozen projection of a message stored in a log entry.
// Nested values are shared with the source message, not cloned.
type Snapshot struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channelId"`
	Author      any    `json:"author,omitempty"`
	Content     string `json:"content,omitempty"`
	Embeds      []any  `json:"embeds"`
	Attachments []any  `json:"attachments"`
	Timestamp   any    `json:"timestamp,omitempty"`
}

// NewSnapshot returns nil for a nil message.
func NewSnapshot(msg MessageFields) *Snapshot {
	if isNilMessage(msg) {
		return nil
	}
	return &Snapshot{
		ID:          msg.MessageID(),
		ChannelID:   ResolveChannelID(msg),
		Author:      msg.MessageAuthor(),
		Content:     msg.MessageContent(),
		Embeds:      msg.MessageEmbeds(),
		Attachments: msg.MessageAttachments(),
		Timestamp:   msg.MessageTimestamp(),
	}
}

// MarshalJSON omits fields the message did not carry. Empty embeds and
// attachments are kept as [], so only a nil sequence disappears.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := struct {
		ID          string `json:"id"`
		ChannelID   string `json:"channelId"`
		Author      any    `json:"author,omitempty"`
		Content     string `json:"content,omitempty"`
		Embeds      any    `json:"embeds,omitempty"`
		Attachments any    `json:"attachments,omitempty"`
		Timestamp   any    `json:"timestamp,omitempty"`
	}{
		ID:        s.ID,
		ChannelID: s.ChannelID,
		Author:    s.Author,
		Content:   s.Content,
		Timestamp: s.Timestamp,
	}
	if s.Embeds != nil {
		out.Embeds = s.Embeds
	}
	if s.Attachments != nil {
		out.Attachments = s.Attachments
	}
	return json.Marshal(out)
}

// MinimalSnapshot is what a delete records when the message was not cached.
func MinimalSnapshot(channelID, messageID string) *Snapshot {
	return &Snapshot{ID: messageID, ChannelID: channelID}
}

func isNilMessage(msg MessageFields) bool {
	if msg == nil {
		return true
	}
	m, ok := msg.(*Message)
	return ok && m == nil
}
