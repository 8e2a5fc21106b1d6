package host

import (
	"errors"
	"fmt"
	"nodelete/internal/models"
	"nodelete/internal/providers"
)

var (
	ErrUnknownEvent   = errors.New("unknown event type")
	ErrMalformedEvent = errors.New("malformed event")
)

// Host plays the chat client: it owns the message cache and notifies
// subscribers before it evicts or replaces the cached copy.
type Host struct {
	Bus     *Dispatcher
	Cache   *MessageCache
	Menus   *MenuRegistry
	Toaster *Toaster
	logger  providers.Logger
}

func NewHost(bus *Dispatcher, cache *MessageCache, menus *MenuRegistry, toaster *Toaster, logger providers.Logger) *Host {
	return &Host{
		Bus:     bus,
		Cache:   cache,
		Menus:   menus,
		Toaster: toaster,
		logger:  logger,
	}
}

func (h *Host) Ingest(e models.Event) error {
	switch e.Type {
	case models.EventMessageCreate:
		if e.Message == nil {
			return fmt.Errorf("%s without message: %w", e.Type, ErrMalformedEvent)
		}
		return h.Cache.Put(e.Message)

	case models.EventMessageUpdate:
		if e.Message == nil || e.Message.ID == "" || models.ResolveChannelID(e.Message) == "" {
			return fmt.Errorf("%s without message id or channel: %w", e.Type, ErrMalformedEvent)
		}
		h.Bus.Dispatch(e)
		h.replace(e.Message)
		return nil

	case models.EventMessageDelete:
		if e.ChannelID == "" || e.ID == "" {
			return fmt.Errorf("%s without channel or id: %w", e.Type, ErrMalformedEvent)
		}
		h.Bus.Dispatch(e)
		if !h.Cache.Evict(e.ChannelID, e.ID) {
			h.logger.Debugf(providers.TypeEvent, "Message %s in %s was not cached", e.ID, e.ChannelID)
		}
		return nil
	}
	return fmt.Errorf("%q: %w", e.Type, ErrUnknownEvent)
}

// replace runs after subscribers saw the update, so a failure here must not
// fail the event. The old copy is dropped rather than left stale.
func (h *Host) replace(msg *models.Message) {
	if err := h.Cache.Put(msg); err != nil {
		h.logger.Warnf(providers.TypeEvent, "Could not cache update of %s: %s", msg.ID, err)
		h.Cache.Evict(models.ResolveChannelID(msg), msg.ID)
	}
}
