package internal

import (
	"net/http"
	"net/http/httptest"
	"nodelete/internal/controllers"
	"nodelete/internal/host"
	"nodelete/internal/models"
	"nodelete/internal/services"
	"nodelete/internal/structures"
	"nodelete/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteTestMux(t *testing.T) (*http.ServeMux, *models.LogStore) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	conf := &structures.Config{Host: structures.HostConfig{MessageCacheSize: 1}}
	h := host.NewHost(host.NewDispatcher(), host.NewMessageCache(conf, logger), host.NewMenuRegistry(), host.NewToaster(logger), logger)

	store := models.NewLogStore()
	store.Init(nil)
	clearMenu := services.NewClearLogMenu(store, h.Toaster, metrics, logger)
	lifecycle := services.NewLifecycleManager(services.NewEventRouter(store, h.Cache, metrics, logger), h.Bus, h.Menus, clearMenu, logger)
	require.NoError(t, lifecycle.Start())
	t.Cleanup(lifecycle.Stop)

	ac := controllers.NewApiController(logger, store, h, h.Menus, clearMenu, testutil.NewMockCache())
	mux := http.NewServeMux()
	for _, r := range InitRoutes(ac).GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux, store
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	ac := controllers.NewApiController(&testutil.MockLogger{}, models.NewLogStore(), nil, nil, nil, testutil.NewMockCache())
	routes := InitRoutes(ac).GetRoutes()

	require.Len(t, routes, 5)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	assert.Equal(t, []string{"/events", "/logs", "/channels", "/menu", "/menu/press"}, urls)
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux, _ := newRouteTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/logs?ch=c1", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "DELETE, GET", rr.Header().Get("Allow"))
}

func TestInitRoutes_EndToEnd(t *testing.T) {
	mux, store := newRouteTestMux(t)
	send := func(method, target, body string) int {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rr.Code
	}

	require.Equal(t, http.StatusCreated, send(http.MethodPost, "/events", `{"type":"MESSAGE_CREATE","message":{"id":"m1","channel_id":"c1","content":"hi"}}`))
	require.Equal(t, http.StatusCreated, send(http.MethodPost, "/events", `{"type":"MESSAGE_DELETE","channelId":"c1","id":"m1"}`))
	assert.Equal(t, 1, store.Len("c1"))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logs?ch=c1", nil))
	assert.Contains(t, rr.Body.String(), `"content":"hi"`)

	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, "/logs?ch=c1", ""))
	assert.Equal(t, 0, store.Len("c1"))
}
