package app

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/api"
	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/kv"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/session"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	Store             kv.Store
	JWTSecret         string
	JWTTTL            time.Duration
	AdminPasswordHash string
	PasswordCost      int       // 0 means bcrypt's default
	Rand              zone.Rand // nil means time-seeded
	Now               func() time.Time
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	ParkingService parking.Service
	SessionService session.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher()
	if cfg.PasswordCost > 0 {
		passwordHasher = auth.NewBcryptPasswordHasherWithCost(cfg.PasswordCost)
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Parking Module (zones, bookings, location configuration)
	parkingService := parking.NewService(ctx, parking.Options{
		Store: cfg.Store,
		Rand:  cfg.Rand,
		Now:   cfg.Now,
	})

	// Session Module
	sessionService := session.NewService(passwordHasher, cfg.AdminPasswordHash, cfg.JWTTTL, cfg.Now)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		ParkingService: parkingService,
		SessionService: sessionService,
		JWTManager:     jwtManager,
		Now:            cfg.Now,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		ParkingService: parkingService,
		SessionService: sessionService,
	}
}

// SeededRand returns a deterministic source for seed != 0, nil otherwise.
func SeededRand(seed uint64) zone.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}
