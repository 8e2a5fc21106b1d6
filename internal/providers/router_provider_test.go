package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func serve(h http.Handler, method, url string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, url, nil))
	return rr
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/logs", dummyHandler("ok"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/logs", routes[0].Url)
}

func TestRouterProvider_MultipleRoutesKeepOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler("a"))
	rp.Post("/b", dummyHandler("b"))
	rp.Get("/c", dummyHandler("c"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/a", routes[0].Url)
	assert.Equal(t, "/b", routes[1].Url)
	assert.Equal(t, "/c", routes[2].Url)
}

func TestRouterProvider_SameURLSeveralMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/logs", dummyHandler("read"))
	rp.Delete("/logs", dummyHandler("clear"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)

	assert.Equal(t, "read", serve(routes[0].Handler, http.MethodGet, "/logs").Body.String())
	assert.Equal(t, "clear", serve(routes[0].Handler, http.MethodDelete, "/logs").Body.String())
}

func TestRouterProvider_WrongMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/logs", dummyHandler("read"))
	rp.Delete("/logs", dummyHandler("clear"))

	rr := serve(rp.GetRoutes()[0].Handler, http.MethodPost, "/logs")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "DELETE, GET", rr.Header().Get("Allow"))
}

func TestRouterProvider_PostRouteRejectsGet(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/events", dummyHandler("ok"))

	rr := serve(rp.GetRoutes()[0].Handler, http.MethodGet, "/events")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
