package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	bookingHttp "github.com/nekogravitycat/smartpark-backend/internal/booking/http"
	locHttp "github.com/nekogravitycat/smartpark-backend/internal/location/http"
	"github.com/nekogravitycat/smartpark-backend/internal/metrics"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	parkingHttp "github.com/nekogravitycat/smartpark-backend/internal/parking/http"
	"github.com/nekogravitycat/smartpark-backend/internal/session"
	sessionHttp "github.com/nekogravitycat/smartpark-backend/internal/session/http"
	zoneHttp "github.com/nekogravitycat/smartpark-backend/internal/zone/http"
)

// Config holds what the router needs to build its handlers.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	ParkingService parking.Service
	SessionService session.Service
	JWTManager     *auth.JWTManager
	Now            func() time.Time
}

// NewRouter assembles middleware (CORS, Logger, Auth) and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Dashboard dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// authMiddleware: Validates the JWT and that its session is still logged in.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.SessionService)
	// adminMiddleware: Further checks that the session belongs to an admin.
	adminMiddleware := RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	sessionHandler := sessionHttp.NewHandler(cfg.SessionService, cfg.ParkingService, cfg.JWTManager)
	zoneHandler := zoneHttp.NewHandler(cfg.ParkingService, cfg.SessionService)
	bookingHandler := bookingHttp.NewHandler(cfg.ParkingService, cfg.SessionService)
	locHandler := locHttp.NewHandler(cfg.ParkingService)
	parkingHandler := parkingHttp.NewHandler(cfg.ParkingService, cfg.Now)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware)
		zoneHttp.RegisterRoutes(v1, zoneHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		locHttp.RegisterRoutes(v1, locHandler, authMiddleware, adminMiddleware)
		parkingHttp.RegisterRoutes(v1, parkingHandler, authMiddleware, adminMiddleware)
	}

	return r
}
