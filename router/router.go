package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/maisonember/restaurant-site/config"
	"github.com/maisonember/restaurant-site/controllers"
	"github.com/maisonember/restaurant-site/mailer"
	"github.com/maisonember/restaurant-site/middlewares"
	"github.com/maisonember/restaurant-site/services"
	"github.com/maisonember/restaurant-site/store"
	"github.com/maisonember/restaurant-site/utils"
)

func SetupRouter(cfg *config.Config, records *store.RecordStore, content *store.ContentStore) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	submissionSvc := services.NewSubmissionService(records, mailer.NewNotifier())

	contentCtrl := controllers.NewContentController(content)
	submissionCtrl := controllers.NewSubmissionController(submissionSvc)
	adminCtrl := controllers.NewAdminController(cfg, records)

	// Serve the built marketing site when it exists next to the binary.
	if siteDir, err := filepath.Abs(cfg.SiteDir); err == nil {
		if _, err := os.Stat(siteDir); err == nil {
			r.Static("/site", siteDir)
			r.GET("/", func(c *gin.Context) {
				c.Redirect(http.StatusMovedPermanently, "/site/index.html")
			})
			utils.InfoLogger.Printf("Serving static site from %s", siteDir)
		}
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.GET("/content", contentCtrl.GetContent)

	// Forms are open to the internet, keep them behind the limiter.
	forms := api.Group("/")
	forms.Use(middlewares.NewRateLimiter(2, 5).RateLimit())
	{
		forms.POST("/reservations", submissionCtrl.CreateReservation)
		forms.POST("/orders", submissionCtrl.CreateOrder)
	}

	api.POST("/admin/login", middlewares.NewRateLimiter(1, 3).RateLimit(), adminCtrl.Login)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())

	admin.GET("/reservations", adminCtrl.ListReservations)
	admin.GET("/orders", adminCtrl.ListOrders)
	admin.POST("/reservations/:id/status", adminCtrl.UpdateReservationStatus)
	admin.POST("/orders/:id/status", adminCtrl.UpdateOrderStatus)
	admin.PUT("/content", contentCtrl.ReplaceContent)

	return r
}
