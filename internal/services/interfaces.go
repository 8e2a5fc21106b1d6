package services

import "nodelete/internal/models"

// MessageLookup is the host's message cache.
type MessageLookup interface {
	GetMessage(channelID, messageID string) (models.MessageFields, bool)
}

// NotificationBus delivers host lifecycle events.
type NotificationBus interface {
	Subscribe(eventType string, handler models.Handler) models.SubscriptionID
	Unsubscribe(eventType string, id models.SubscriptionID) bool
}

// MenuHook lets a plugin decorate the channel context menu. The token
// returned by Use is the only way to remove the middleware again.
type MenuHook interface {
	Use(mw models.MenuMiddleware) models.MenuToken
	Remove(token models.MenuToken) bool
}

type Toaster interface {
	ShowToast(text string)
}
