package internal

import (
	"net/http"
	"nodelete/internal/controllers"
	"nodelete/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(apiController.ReceiveEvent))
	routers.Get("/logs", http.HandlerFunc(apiController.GetLogs))
	routers.Delete("/logs", http.HandlerFunc(apiController.ClearLog))
	routers.Get("/channels", http.HandlerFunc(apiController.GetChannels))
	routers.Get("/menu", http.HandlerFunc(apiController.GetMenu))
	routers.Post("/menu/press", http.HandlerFunc(apiController.PressMenuItem))
	return routers
}
