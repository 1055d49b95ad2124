package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warinth/barlink-backend/controllers"
	"github.com/warinth/barlink-backend/hub"
	"github.com/warinth/barlink-backend/middlewares"
	"github.com/warinth/barlink-backend/services"
	"github.com/warinth/barlink-backend/sessions"
)

// Deps adalah kolaborator yang dirakit main dan disuntik ke controller.
type Deps struct {
	DB       *gorm.DB
	Sessions *sessions.Store
	Hub      *hub.Hub
	Cache    *services.UnpaidCache
	Orders   controllers.OrderInfoFetcher
	Points   *services.PointsService
	Contacts *services.ContactService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	identitySvc := services.NewIdentityService(deps.DB)
	chatSvc := services.NewChatService(deps.DB, deps.Hub)

	checkinCtrl := controllers.NewCheckinController(identitySvc, deps.Points, deps.Sessions)
	chatCtrl := controllers.NewChatController(chatSvc, deps.Sessions)
	screenCtrl := controllers.NewScreenController(deps.Hub)
	adminCtrl := controllers.NewAdminController(chatSvc, deps.Contacts, deps.Orders)
	unpaidCtrl := controllers.NewUnpaidController(deps.Cache)
	tableCtrl := controllers.NewTableController(deps.DB)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk check-in login/register
	checkin := r.Group("/checkin")
	checkin.Use(middlewares.NewStrictRateLimiter())
	{
		checkin.POST("/login", checkinCtrl.Login)
		checkin.POST("/register", checkinCtrl.Register)
	}
	r.GET("/checkin/landing", middlewares.SessionMiddleware(deps.Sessions), checkinCtrl.Landing)
	r.POST("/checkin/logout", checkinCtrl.Logout)

	// Chat untuk big screen
	r.POST("/chat", chatCtrl.PostMessage)
	r.GET("/chat/history", chatCtrl.GetHistory)

	// Big screen subscriber (tanpa auth; layar besar hanya menonton)
	r.GET("/screen/ws", screenCtrl.Handler)

	// Meja: listing + QR tent card
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id/qr", tableCtrl.GetTableQR)

	// ----------------------------------------------------------------
	//                      ADMIN / MODERATOR ROUTES
	// ----------------------------------------------------------------
	r.POST("/admin/login", adminCtrl.Login)

	admin := r.Group("/admin")
	admin.Use(middlewares.AdminAuthMiddleware())
	{
		admin.GET("/chat", adminCtrl.GetChatAudit)
		admin.DELETE("/chat/:chat_id", adminCtrl.DeleteMessage)
		admin.DELETE("/chat", adminCtrl.ClearMessages)
		admin.GET("/unpaid/data", unpaidCtrl.GetUnpaidData)
		admin.POST("/unpaid/contact", adminCtrl.ContactLookup)
	}

	// WebSocket dashboard moderator dengan token di query
	wsGroup := r.Group("/admin/ws")
	wsGroup.Use(middlewares.AdminWebSocketMiddleware())
	{
		wsGroup.GET("", screenCtrl.Handler)
	}

	return r
}
