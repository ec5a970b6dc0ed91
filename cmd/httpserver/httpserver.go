// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/depositdelivery"
	"github.com/go-petr/pet-ledger/internal/depositrepo"
	"github.com/go-petr/pet-ledger/internal/depositservice"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/userdelivery"
	"github.com/go-petr/pet-ledger/internal/userrepo"
	"github.com/go-petr/pet-ledger/internal/userservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/metricspkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB       *sql.DB
	Engine   *gin.Engine
	Config   configpkg.Config
	Registry *prometheus.Registry
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	minAmount, err := decimal.NewFromString(config.DepositMinAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid deposit minimum amount %q: %w", config.DepositMinAmount, err)
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("cannot register go collector: %w", err)
	}

	depositMetrics, err := metricspkg.NewDeposits(registry)
	if err != nil {
		return nil, fmt.Errorf("cannot register deposit metrics: %w", err)
	}

	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	depositRepo := depositrepo.NewRepoPGS(conn, config.DepositLockTimeout)

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, ledgerRepo)
	depositService := depositservice.New(depositRepo, accountRepo, userRepo, depositMetrics, depositservice.Config{
		MinAmount:    minAmount,
		MaxRetries:   config.DepositMaxRetries,
		RetryBackoff: config.DepositRetryBackoff,
	})

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	depositHandler := depositdelivery.NewHandler(depositService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.NoRoute(middleware.NoRoute)

	engine.GET("/", landing)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:number", accountHandler.Get)
	authRoutes.GET("/accounts/:number/transactions", accountHandler.ListTransactions)

	authRoutes.POST("/deposits", depositHandler.Create)

	server := &Server{
		DB:       conn,
		Engine:   engine,
		Config:   config,
		Registry: registry,
	}

	return server, nil
}

// WelcomeMessage is served on the landing route.
const WelcomeMessage = "Welcome to the Banking Application Api"

func landing(gctx *gin.Context) {
	gctx.String(http.StatusOK, WelcomeMessage)
}
