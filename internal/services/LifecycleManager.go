package services

import (
	"errors"
	"nodelete/internal/models"
	"nodelete/internal/providers"
	"sync"
)

var ErrMissingBus = errors.New("notification bus is not available")

type subscription struct {
	eventType string
	id        models.SubscriptionID
}

// LifecycleManager owns the router subscriptions and the menu patch as one
// resource. Start must not be called twice without a Stop in between.
type LifecycleManager struct {
	mu            sync.Mutex
	router        *EventRouter
	bus           NotificationBus
	menus         MenuHook
	clearMenu     *ClearLogMenu
	logger        providers.Logger
	subscriptions []subscription
	unpatch       func()
}

func NewLifecycleManager(router *EventRouter, bus NotificationBus, menus MenuHook, clearMenu *ClearLogMenu, logger providers.Logger) *LifecycleManager {
	return &LifecycleManager{
		router:    router,
		bus:       bus,
		menus:     menus,
		clearMenu: clearMenu,
		logger:    logger,
	}
}

func (m *LifecycleManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bus == nil {
		return ErrMissingBus
	}

	m.subscribe(models.EventMessageDelete, m.router.HandleDelete)
	m.subscribe(models.EventMessageUpdate, m.router.HandleUpdate)

	if m.menus != nil {
		token := m.menus.Use(m.clearMenu.Middleware)
		m.unpatch = func() { m.menus.Remove(token) }
	} else {
		m.logger.Warnf(providers.TypeApp, "No menu hook, clear-log action disabled")
	}

	m.logger.Infof(providers.TypeApp, "Message logger started with %d subscriptions", len(m.subscriptions))
	return nil
}

func (m *LifecycleManager) subscribe(eventType string, handler models.Handler) {
	id := m.bus.Subscribe(eventType, handler)
	m.subscriptions = append(m.subscriptions, subscription{eventType: eventType, id: id})
}

// Stop undoes whatever Start managed to set up. Safe to call at any time.
func (m *LifecycleManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.subscriptions {
		m.bus.Unsubscribe(s.eventType, s.id)
	}
	m.subscriptions = nil

	if m.unpatch != nil {
		m.unpatch()
		m.unpatch = nil
	}
}

func (m *LifecycleManager) ActiveSubscriptions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscriptions)
}

func (m *LifecycleManager) Patched() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unpatch != nil
}
