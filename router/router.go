package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/controllers"
	"github.com/yeremiapane/restaurant-menu/events"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, hub *events.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	// Inisialisasi service dan controller
	versionSvc := services.NewVersionService(db, hub)
	queryCtrl := controllers.NewMenuQueryController(services.NewMenuQueryService(db))
	analyticsCtrl := controllers.NewAnalyticsController(services.NewAnalyticsService(db))
	dietaryCtrl := controllers.NewDietaryController(services.NewCatalogService(db))
	versionCtrl := controllers.NewMenuVersionController(versionSvc)
	eventsCtrl := controllers.NewEventsController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Menu change stream
	r.GET("/ws/menus", eventsCtrl.MenuEvents)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      RESOURCES
	// ----------------------------------------------------------------
	controllers.NewResourceController[models.Restaurant](db, "Restaurant").Register(api.Group("/restaurants"))
	controllers.NewResourceController[models.Menu](db, "Menu").Register(api.Group("/menus"))
	versionCtrl.Register(api.Group("/menu-versions"))
	controllers.NewResourceController[models.MenuSection](db, "Menu section").Register(api.Group("/menu-sections"))
	controllers.NewResourceController[models.MenuItem](db, "Menu item").Register(api.Group("/menu-items"))
	controllers.NewResourceController[models.DietaryRestriction](db, "Dietary restriction").Register(api.Group("/dietary-restrictions"))
	controllers.NewResourceController[models.ProcessingLog](db, "Processing log").Register(api.Group("/processing-logs"))

	items := api.Group("/menu-items/:id/dietary-restrictions")
	{
		items.GET("", dietaryCtrl.ListItemRestrictions)
		items.POST("", dietaryCtrl.TagItem)
		items.DELETE("/:restriction_id", dietaryCtrl.UntagItem)
	}

	// ----------------------------------------------------------------
	//                      QUERIES
	// ----------------------------------------------------------------
	restaurant := api.Group("/restaurants/:id")
	{
		restaurant.GET("/sections", queryCtrl.GetRestaurantSections)
		restaurant.GET("/active-sections", queryCtrl.GetActiveSections)
		restaurant.GET("/analytics", analyticsCtrl.GetRestaurantAnalytics)
		restaurant.GET("/menus/:menu_id/versions", queryCtrl.GetMenuVersions)
		restaurant.GET("/menus/:menu_id/items", queryCtrl.GetMenuItems)
		restaurant.GET("/menus/:menu_id/dietary-items", queryCtrl.GetDietaryItems)
	}
	api.GET("/analytics", analyticsCtrl.GetPriceAnalytics)

	return r
}
