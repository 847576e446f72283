package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/username/paisatrack/backend/src/config"
	"github.com/username/paisatrack/backend/src/database"
	"github.com/username/paisatrack/backend/src/handlers"
	"github.com/username/paisatrack/backend/src/logger"
	"github.com/username/paisatrack/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("PaisaTrack backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	priceService := services.NewMarketPriceService(config.Cfg.PriceAPIBaseURL, database.DB)
	navService := services.NewNavService(config.Cfg.NavAPIBaseURL, config.Cfg.NavCacheTTL)
	bankService := services.NewStubBankService()

	portfolioService := services.NewPortfolioService(priceService, navService)
	netWorthService := services.NewNetWorthService(portfolioService, bankService)

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	netWorthHandler := handlers.NewNetWorthHandler(netWorthService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "PaisaTrack Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/holdings/stocks", portfolioHandler.HandleAddStockHolding)
		r.Post("/holdings/funds", portfolioHandler.HandleAddFundHolding)
		r.Get("/portfolio/stocks", portfolioHandler.HandleGetStockPortfolio)
		r.Get("/portfolio/funds", portfolioHandler.HandleGetFundPortfolio)
		r.Get("/sip/simulate", portfolioHandler.HandleSimulateSIP)
		r.Get("/schemes/search", portfolioHandler.HandleSearchSchemes)
		r.Get("/networth", netWorthHandler.HandleGetNetWorth)
		r.Get("/performance", netWorthHandler.HandleGetPerformance)
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
