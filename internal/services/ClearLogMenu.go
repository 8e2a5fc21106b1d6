package services

import (
	"fmt"
	"nodelete/internal/models"
	"nodelete/internal/providers"
)

const (
	ClearLogItemID = "clear-log"
	ClearLogLabel  = "Clear log"
)

// ClearLogMenu adds a "Clear log" action to channel context menus.
type ClearLogMenu struct {
	store   *models.LogStore
	toaster Toaster
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewClearLogMenu(store *models.LogStore, toaster Toaster, metrics providers.MetricsProviderInterface, logger providers.Logger) *ClearLogMenu {
	return &ClearLogMenu{
		store:   store,
		toaster: toaster,
		metrics: metrics,
		logger:  logger,
	}
}

// Middleware is installed on the host's menu builder. Menus without a
// channel, or whose layout has no action list, are left untouched.
func (c *ClearLogMenu) Middleware(menu *models.Menu) {
	if menu == nil || menu.Channel == nil || menu.Channel.ID == "" {
		return
	}
	actions, err := menu.ActionList()
	if err != nil {
		c.logger.Debugf(providers.TypeApp, "Skipped clear-log item for channel %s: %s", menu.Channel.ID, err)
		return
	}

	channel := *menu.Channel
	actions.Children = append(actions.Children, &models.MenuNode{Item: &models.MenuItem{
		ID:      ClearLogItemID,
		Label:   ClearLogLabel,
		OnPress: func() { c.ClearChannel(channel) },
	}})
}

// ClearChannel empties the channel's log and confirms with a toast.
func (c *ClearLogMenu) ClearChannel(channel models.Channel) {
	c.store.Clear(channel.ID)
	c.metrics.IncLogClears()
	c.logger.Infof(providers.TypeApp, "Cleared log for channel %s", channel.ID)

	if c.toaster != nil {
		c.toaster.ShowToast(fmt.Sprintf("Cleared logs for %s", channelLabel(channel)))
	}
}

func channelLabel(channel models.Channel) string {
	if channel.Name != "" {
		return channel.Name
	}
	return "channel"
}
