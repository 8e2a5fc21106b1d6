package controllers

import (
	"errors"
	"net/http"
	"nodelete/internal/host"
	"nodelete/internal/models"
	"nodelete/internal/providers"
	"nodelete/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type EventIngester interface {
	Ingest(e models.Event) error
}

type ChannelMenus interface {
	Build(channel models.Channel) *models.Menu
	Press(channel models.Channel, itemID string) error
}

type ApiController struct {
	logger    providers.Logger
	store     *models.LogStore
	ingester  EventIngester
	menus     ChannelMenus
	clearMenu *services.ClearLogMenu
	cache     providers.CacheProviderInterface
}

type menuItemResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type menuResponse struct {
	Channel models.Channel     `json:"channel"`
	Items   []menuItemResponse `json:"items"`
}

func NewApiController(logger providers.Logger, store *models.LogStore, ingester EventIngester, menus ChannelMenus, clearMenu *services.ClearLogMenu, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		store:     store,
		ingester:  ingester,
		menus:     menus,
		clearMenu: clearMenu,
		cache:     cache,
	}
}

func getChannel(r *http.Request) (models.Channel, bool) {
	q := r.URL.Query()
	ch := models.Channel{ID: q.Get("ch"), Name: q.Get("name")}
	return ch, ch.ID != ""
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// serveFromCacheOrCompute caches by key; callers put the store revision in
// the key so a cached body never outlives a mutation.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) ReceiveEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := validate.Struct(&event)
	if !v.Validate() {
		http.Error(w, v.Errors.One(), http.StatusBadRequest)
		return
	}

	if err := ac.ingester.Ingest(event); err != nil {
		if errors.Is(err, host.ErrMalformedEvent) || errors.Is(err, host.ErrUnknownEvent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ac.logger.Errorf(providers.TypePost, "Ingest %s: %s", event.Type, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) GetLogs(w http.ResponseWriter, r *http.Request) {
	ch, ok := getChannel(r)
	if !ok {
		http.Error(w, "missing ch", http.StatusBadRequest)
		return
	}
	key := providers.ResponseKey("logs", ac.store.Revision(), ch.ID)
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.store.Entries(ch.ID), nil
	})
}

func (ac *ApiController) ClearLog(w http.ResponseWriter, r *http.Request) {
	ch, ok := getChannel(r)
	if !ok {
		http.Error(w, "missing ch", http.StatusBadRequest)
		return
	}
	ac.clearMenu.ClearChannel(ch)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetChannels(w http.ResponseWriter, r *http.Request) {
	key := providers.ResponseKey("channels", ac.store.Revision(), "")
	ac.serveFromCacheOrCompute(w, key, func() (any, error) {
		return ac.store.Channels(), nil
	})
}

func (ac *ApiController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ch, ok := getChannel(r)
	if !ok {
		http.Error(w, "missing ch", http.StatusBadRequest)
		return
	}

	resp := menuResponse{Channel: ch, Items: []menuItemResponse{}}
	for _, item := range ac.menus.Build(ch).Items() {
		resp.Items = append(resp.Items, menuItemResponse{ID: item.ID, Label: item.Label})
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, gson)
}

func (ac *ApiController) PressMenuItem(w http.ResponseWriter, r *http.Request) {
	ch, ok := getChannel(r)
	item := r.URL.Query().Get("item")
	if !ok || item == "" {
		http.Error(w, "missing ch or item", http.StatusBadRequest)
		return
	}

	if err := ac.menus.Press(ch, item); err != nil {
		if errors.Is(err, host.ErrMenuItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		ac.logger.Errorf(providers.TypePost, "Press %s in %s: %s", item, ch.ID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
