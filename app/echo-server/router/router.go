package router

import (
	"skinMatch/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/logout", handler.Logout, authRequired)

	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupProfileRoutes(api *echo.Group, handler *rest.ProfileHandler, authRequired echo.MiddlewareFunc) {
	profile := api.Group("/profile", authRequired)

	profile.GET("", handler.GetProfile)
	profile.PUT("", handler.SaveProfile)
}

func SetupPreferencesRoutes(api *echo.Group, handler *rest.PreferencesHandler, authRequired echo.MiddlewareFunc) {
	prefs := api.Group("/preferences", authRequired)

	prefs.GET("", handler.GetPreferences)
	prefs.PUT("", handler.SavePreferences)
	prefs.DELETE("", handler.DeletePreferences)
}

func SetupMeasurementRoutes(api *echo.Group, handler *rest.MeasurementHandler, authRequired echo.MiddlewareFunc) {
	measurements := api.Group("/measurements", authRequired)

	measurements.POST("", handler.RecordSnapshot)
	measurements.GET("", handler.GetHistory)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	catalog := api.Group("/catalog")

	catalog.GET("", handler.GetItems)
	catalog.GET("/:id", handler.GetItemByID)
	catalog.POST("", handler.CreateItem, authRequired, adminOnly)
	catalog.PUT("/:id", handler.UpdateItem, authRequired, adminOnly)
	catalog.DELETE("/:id", handler.DeleteItem, authRequired, adminOnly)
}

func SetupRecoRoutes(api *echo.Group, handler *rest.RecoHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.List)
	reco.POST("/generate", handler.Generate)
	reco.POST("/feedback", handler.Feedback)
}

func SetupRecoAdminRoutes(api *echo.Group, handler *rest.RecoAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/reco", authRequired, adminOnly)

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}
