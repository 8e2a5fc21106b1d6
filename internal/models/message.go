package models

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// MessageFields is the read-only view of a chat message that snapshots are
// built from. The channel id is exposed under both spellings the host uses;
// NewSnapshot decides which one wins.
type MessageFields interface {
	MessageID() string
	PrimaryChannelID() string
	AliasChannelID() string
	MessageAuthor() any
	MessageContent() string
	MessageEmbeds() []any
	MessageAttachments() []any
	MessageTimestamp() any
}

// Message is the host's wire representation of a chat message.
type Message struct {
	ID             string `json:"id"`
	ChannelID      string `json:"channel_id,omitempty"`
	ChannelIDAlias string `json:"channelId,omitempty"`
	Author         any    `json:"author,omitempty"`
	Content        string `json:"content"`
	Embeds         []any  `json:"embeds"`
	Attachments    []any  `json:"attachments"`
	Timestamp      any    `json:"timestamp,omitempty"`
}

func (m *Message) MessageID() string         { return m.ID }
func (m *Message) PrimaryChannelID() string  { return m.ChannelID }
func (m *Message) AliasChannelID() string    { return m.ChannelIDAlias }
func (m *Message) MessageAuthor() any        { return m.Author }
func (m *Message) MessageContent() string    { return m.Content }
func (m *Message) MessageEmbeds() []any      { return m.Embeds }
func (m *Message) MessageAttachments() []any { return m.Attachments }
func (m *Message) MessageTimestamp() any     { return m.Timestamp }

// UnmarshalJSON accepts snowflake ids as strings or numbers. Numeric ids
// keep every digit.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             json.RawMessage `json:"id"`
		ChannelID      json.RawMessage `json:"channel_id"`
		ChannelIDAlias json.RawMessage `json:"channelId"`
		Author         any             `json:"author"`
		Content        string          `json:"content"`
		Embeds         []any           `json:"embeds"`
		Attachments    []any           `json:"attachments"`
		Timestamp      any             `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	channelID, err := decodeID(raw.ChannelID)
	if err != nil {
		return fmt.Errorf("channel_id: %w", err)
	}
	alias, err := decodeID(raw.ChannelIDAlias)
	if err != nil {
		return fmt.Errorf("channelId: %w", err)
	}

	*m = Message{
		ID:             id,
		ChannelID:      channelID,
		ChannelIDAlias: alias,
		Author:         raw.Author,
		Content:        raw.Content,
		Embeds:         raw.Embeds,
		Attachments:    raw.Attachments,
		Timestamp:      raw.Timestamp,
	}
	return nil
}

// decodeID reads numbers as json.Number so ids above 2^53 are not rounded.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	return cast.ToStringE(v)
}

// ResolveChannelID prefers channel_id and falls back to channelId.
func ResolveChannelID(msg MessageFields) string {
	if isNilMessage(msg) {
		return ""
	}
	if id := msg.PrimaryChannelID(); id != "" {
		return id
	}
	return msg.AliasChannelID()
}
