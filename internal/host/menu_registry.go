package host

import (
	"errors"
	"fmt"
	"nodelete/internal/models"
	"sort"
	"sync"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRegistry builds channel context menus and runs the installed
// middlewares over every menu it builds.
type MenuRegistry struct {
	mu          sync.RWMutex
	nextToken   models.MenuToken
	middlewares map[models.MenuToken]models.MenuMiddleware
}

func NewMenuRegistry() *MenuRegistry {
	return &MenuRegistry{middlewares: make(map[models.MenuToken]models.MenuMiddleware)}
}

func (r *MenuRegistry) Use(mw models.MenuMiddleware) models.MenuToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextToken++
	r.middlewares[r.nextToken] = mw
	return r.nextToken
}

func (r *MenuRegistry) Remove(token models.MenuToken) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.middlewares[token]; !ok {
		return false
	}
	delete(r.middlewares, token)
	return true
}

func (r *MenuRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.middlewares)
}

// chain returns middlewares in installation order.
func (r *MenuRegistry) chain() []models.MenuMiddleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]models.MenuToken, 0, len(r.middlewares))
	for t := range r.middlewares {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })

	chain := make([]models.MenuMiddleware, len(tokens))
	for i, t := range tokens {
		chain[i] = r.middlewares[t]
	}
	return chain
}

func (r *MenuRegistry) Build(channel models.Channel) *models.Menu {
	ch := channel
	menu := &models.Menu{
		Channel: &ch,
		Root: &models.MenuNode{Children: []*models.MenuNode{{Children: []*models.MenuNode{
			{Item: &models.MenuItem{ID: "mark-channel-read", Label: "Mark As Read"}},
			{Item: &models.MenuItem{ID: "copy-channel-id", Label: "Copy ID"}},
		}}}},
	}
	for _, mw := range r.chain() {
		mw(menu)
	}
	return menu
}

// Press builds the channel menu and triggers the item with itemID.
func (r *MenuRegistry) Press(channel models.Channel, itemID string) error {
	for _, item := range r.Build(channel).Items() {
		if item.ID != itemID {
			continue
		}
		if item.OnPress != nil {
			item.OnPress()
		}
		return nil
	}
	return fmt.Errorf("%s: %w", itemID, ErrMenuItemNotFound)
}
