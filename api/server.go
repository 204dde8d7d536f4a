package api

import (
	"bingohall/application"
	"bingohall/config"
	"bingohall/domain/interfaces"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server owns the HTTP surface. Handlers create one unit of work per
// request and build services from its transaction-scoped repositories.
type Server struct {
	router     *gin.Engine
	uowFactory application.UnitOfWorkFactory
	numbers    interfaces.NumberSource
}

// NewServer creates the API server and registers all routes
func NewServer(cfg *config.Config, uowFactory application.UnitOfWorkFactory, numbers interfaces.NumberSource) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	s := &Server{
		router:     router,
		uowFactory: uowFactory,
		numbers:    numbers,
	}
	s.registerRoutes()
	return s
}

// Router returns the underlying gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.health)

	// User routes
	api.POST("/users", s.registerUser)
	api.GET("/users/:telegram_id", s.getUser)
	api.PUT("/users/:telegram_id", s.updateUser)
	api.GET("/users/:telegram_id/referral", s.getReferral)

	// Game routes
	api.POST("/games", s.createGame)
	api.GET("/games/:id", s.getGame)
	api.POST("/games/:id/cards", s.selectCards)
	api.POST("/games/:id/call", s.callNumber)
	api.POST("/games/:id/bingo", s.checkBingo)
	api.POST("/games/:id/abandon", s.abandonGame)
	api.POST("/cards/:id/mark", s.markNumber)

	// Wallet routes
	api.GET("/wallet/:telegram_id", s.getBalance)
	api.GET("/wallet/:telegram_id/transactions", s.walletHistory)
	api.POST("/wallet/deposit", s.deposit)
	api.POST("/wallet/withdraw", s.withdraw)
	api.POST("/wallet/transfer", s.transfer)
	api.GET("/leaderboard", s.leaderboard)
}

func (s *Server) health(c *gin.Context) {
	respondOK(c, gin.H{"healthy": true})
}
