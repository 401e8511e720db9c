package internal

import (
	"net/http"

	"cgmd/internal/controllers"
	"cgmd/internal/providers"
	"cgmd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, streamController *controllers.StreamController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/login", http.HandlerFunc(apiController.Login))
	routers.Post("/patient", http.HandlerFunc(apiController.SelectPatient))
	routers.Post("/logout", http.HandlerFunc(apiController.Logout))
	routers.Get("/glucose", http.HandlerFunc(apiController.GetGlucose))
	routers.Get("/glucose/history", http.HandlerFunc(apiController.GetHistory))
	routers.Get("/glucose/logbook", http.HandlerFunc(apiController.GetLogbook))
	routers.Get("/patients", http.HandlerFunc(apiController.GetPatients))
	routers.Get("/stream", http.HandlerFunc(streamController.Stream))
	return routers
}
