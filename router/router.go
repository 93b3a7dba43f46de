package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aadit2805/project3-group7-deploy-sub000/config"
	"github.com/aadit2805/project3-group7-deploy-sub000/controllers"
	"github.com/aadit2805/project3-group7-deploy-sub000/middlewares"
	"github.com/aadit2805/project3-group7-deploy-sub000/models"
	"github.com/aadit2805/project3-group7-deploy-sub000/services"
	"github.com/aadit2805/project3-group7-deploy-sub000/sessions"
)

type Deps struct {
	DB              *gorm.DB
	Config          *config.Config
	KioskSessions   *sessions.Store
	CashierSessions *sessions.Store
	Monitor         *services.AvailabilityMonitor
	APILimiter      *middlewares.RateLimiter
	LoginLimiter    *middlewares.RateLimiter
}

func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if d.APILimiter == nil {
		d.APILimiter = middlewares.NewRateLimiter(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)
	}
	if d.LoginLimiter == nil {
		d.LoginLimiter = middlewares.NewRateLimiter(cfg.HTTP.LoginLimit, cfg.HTTP.LoginBurst)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(cfg.GinMode == gin.ReleaseMode))
	r.Use(middlewares.CORSMiddlewares(cfg.HTTP.CORSOrigins))
	r.Use(d.APILimiter.RateLimit())

	orders := services.NewOrderService(d.DB)
	reports := services.NewReportService(d.DB)

	userCtrl := controllers.NewUserController(d.DB)
	menuCtrl := controllers.NewMenuController(d.DB, d.Monitor)
	mealTypeCtrl := controllers.NewMealTypeController(d.DB)
	orderCtrl := controllers.NewOrderController(orders)
	reportCtrl := controllers.NewReportController(reports)
	kioskCtrl := controllers.NewSessionController(d.DB, d.KioskSessions, orders)
	cashierCtrl := controllers.NewSessionController(d.DB, d.CashierSessions, orders)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", d.LoginLimiter.RateLimit(), middlewares.OptionalAuthMiddleware(), userCtrl.Register)
		auth.POST("/login", d.LoginLimiter.RateLimit(), userCtrl.Login)
		auth.POST("/logout", middlewares.AuthMiddleware(), userCtrl.Logout)
		auth.GET("/profile", middlewares.AuthMiddleware(), userCtrl.GetProfile)
	}

	r.GET("/meal-types", mealTypeCtrl.GetAllMealTypes)
	r.GET("/meal-types/:meal_type_id", mealTypeCtrl.GetMealTypeByID)
	r.GET("/menu-items", menuCtrl.GetAllMenuItems)
	r.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
	r.GET("/menu/selectable", menuCtrl.GetSelectable)

	// -- KIOSK (no login) --
	kiosk := r.Group("/kiosk")
	kiosk.Use(middlewares.Surface(models.SourceKiosk))
	{
		sessionRoutes(kiosk, kioskCtrl)
		kiosk.POST("/orders", orderCtrl.CreateOrder)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	cashier := r.Group("/cashier")
	cashier.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleCashier), middlewares.Surface(models.SourceCashier))
	{
		sessionRoutes(cashier, cashierCtrl)
		cashier.POST("/orders", orderCtrl.CreateOrder)
		cashier.GET("/orders", orderCtrl.GetAllOrders)
		cashier.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		cashier.PUT("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	}

	kitchen := r.Group("/kitchen")
	kitchen.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleKitchen))
	{
		kitchen.GET("/orders", orderCtrl.GetKitchenDisplay)
		kitchen.PUT("/orders/:order_id/start", orderCtrl.StartCooking)
		kitchen.PUT("/orders/:order_id/finish", orderCtrl.FinishCooking)
		kitchen.PUT("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	}

	manager := r.Group("/manager")
	manager.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles(models.RoleManager))
	{
		manager.GET("/users", userCtrl.GetAllUsers)

		manager.POST("/menu-items", menuCtrl.CreateMenuItem)
		manager.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		manager.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		manager.POST("/meal-types", mealTypeCtrl.CreateMealType)
		manager.PATCH("/meal-types/:meal_type_id", mealTypeCtrl.UpdateMealType)
		manager.DELETE("/meal-types/:meal_type_id", mealTypeCtrl.DeleteMealType)

		manager.GET("/orders", orderCtrl.GetAllOrders)
		manager.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		manager.GET("/reports/x", reportCtrl.GetXReport)
		manager.POST("/reports/z", reportCtrl.CloseDay)
		manager.GET("/reports/sales", reportCtrl.GetSalesByItem)
		manager.GET("/reports/day-closes", reportCtrl.GetDayCloses)
	}

	// WebSocket endpoint for kitchen screens and staff terminals
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/kitchen", controllers.KDSHandler)
	}

	return r
}

func sessionRoutes(g *gin.RouterGroup, sc *controllers.SessionController) {
	g.POST("/sessions", sc.CreateSession)
	g.GET("/sessions/:session_id", sc.GetSession)
	g.DELETE("/sessions/:session_id", sc.DiscardSession)
	g.POST("/sessions/:session_id/line", sc.StartLine)
	g.DELETE("/sessions/:session_id/line", sc.CancelLine)
	g.POST("/sessions/:session_id/click", sc.Click)
	g.POST("/sessions/:session_id/commit", sc.CommitLine)
	g.POST("/sessions/:session_id/lines/:index/edit", sc.EditLine)
	g.DELETE("/sessions/:session_id/lines/:index", sc.RemoveLine)
	g.POST("/sessions/:session_id/checkout", sc.Checkout)
}
