package api

import (
	"github.com/piyukr2/Bed-Manager/internal/api/handler"
	"github.com/piyukr2/Bed-Manager/internal/api/middleware"
	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/notify"
	"github.com/piyukr2/Bed-Manager/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(
	authService *service.AuthService,
	bedService *service.BedService,
	occupancyService *service.OccupancyService,
	recommendService *service.RecommendService,
	authMw *middleware.AuthMiddleware,
	hub *notify.Hub,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// WebSocket endpoint (realtime connections are unauthenticated).
	wsHandler := handler.NewWebSocketHandler(hub, logger)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		bedH := handler.NewBedHandler(bedService)
		occupancyH := handler.NewOccupancyHandler(occupancyService)
		recommendH := handler.NewRecommendHandler(recommendService)

		bedRoutes := v1.Group("/beds")
		{
			bedRoutes.GET("", bedH.GetBeds)
			bedRoutes.GET("/available", recommendH.GetAvailableBeds)
			bedRoutes.GET("/stats", occupancyH.GetBedStats)
			bedRoutes.GET("/history", occupancyH.GetOccupancyHistory)
			bedRoutes.GET("/:id", bedH.GetBedByID)
			bedRoutes.PUT("/:id",
				authMw.AuthorizeRole(domain.RoleAdmin, domain.RoleICUManager, domain.RoleWardStaff),
				bedH.UpdateBedStatus)
			bedRoutes.POST("/recommend",
				authMw.AuthorizeRole(domain.RoleAdmin, domain.RoleICUManager, domain.RoleERStaff),
				recommendH.RecommendBed)
		}
	}
	return r
}
