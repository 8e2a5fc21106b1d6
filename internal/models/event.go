package models

const (
	EventMessageCreate = "MESSAGE_CREATE"
	EventMessageDelete = "MESSAGE_DELETE"
	EventMessageUpdate = "MESSAGE_UPDATE"
)

// Event is a host lifecycle notification. MESSAGE_DELETE fills ChannelID and
// ID, MESSAGE_UPDATE and MESSAGE_CREATE fill Message.
type Event struct {
	Type      string   `json:"type" validate:"required|in:MESSAGE_CREATE,MESSAGE_DELETE,MESSAGE_UPDATE"`
	ChannelID string   `json:"channelId,omitempty"`
	ID        string   `json:"id,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

type Handler func(Event)

type SubscriptionID uint64
