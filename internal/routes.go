package internal

import (
	"net/http"
	"repopulse/internal/controllers"
	"repopulse/internal/providers"
)

func InitRoutes(historyController *controllers.HistoryController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/histories", http.HandlerFunc(historyController.GetHistories))
	routers.Get("/history", http.HandlerFunc(historyController.GetHistory))
	return routers
}
