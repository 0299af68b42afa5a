package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportplus/backend/internal/auth"
	"github.com/sportplus/backend/internal/bootstrap"
	"github.com/sportplus/backend/internal/config"
	"github.com/sportplus/backend/internal/database"
	"github.com/sportplus/backend/internal/handler"
	"github.com/sportplus/backend/internal/middleware"
	"github.com/sportplus/backend/internal/queue"
	"github.com/sportplus/backend/internal/repository"
	"github.com/sportplus/backend/internal/router"
	"github.com/sportplus/backend/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config (.env merged in when present)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	activities := repository.NewActivityRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	// Redis drives single-use reset tokens, auth rate limiting and the
	// ranking cache. Without it all three degrade gracefully: reset
	// tokens become pure stateless capabilities and the middleware
	// passes requests through.
	rdb := config.NewRedisClient()
	var consumed auth.ConsumedTokenStore
	if rdb != nil {
		consumed = auth.NewRedisConsumedStore(rdb)
	} else {
		log.Printf("redis unavailable; reset tokens will not be single-use")
	}

	signer := auth.NewSigner(cfg.JWTSecret)
	creds := auth.NewService(users, signer, consumed, cfg.BcryptCost,
		time.Duration(cfg.SessionTTLDays)*24*time.Hour,
		time.Duration(cfg.ResetTTLMin)*time.Minute)

	statsSvc := service.NewStatsService(activities, statsRepo, users, nil)

	mailer := service.Mailer{
		Host: cfg.SMTPHost, Port: cfg.SMTPPort,
		User: cfg.SMTPUser, Pass: cfg.SMTPPass, From: cfg.SMTPFrom,
	}

	// Ensure exactly one administrative account exists before serving.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bootstrap.EnsureAdmin(ctx, users, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("bootstrap: %v", err)
	}
	cancel()

	// Background recompute consumer; reconnects on its own.
	go func() {
		if err := queue.StartRecomputeConsumer(statsSvc); err != nil {
			log.Printf("recompute consumer stopped: %v", err)
		}
	}()

	authLimit := middleware.RateLimit(rdb, cfg.AuthRateLimit,
		time.Duration(cfg.AuthRateWinSec)*time.Second)
	rankingCache := middleware.CacheJSON(rdb,
		time.Duration(cfg.RankingTTLSec)*time.Second)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(creds, mailer), authLimit)
	router.RegisterActivities(e,
		handler.NewActivityHandler(activities, statsSvc),
		handler.NewProfileHandler(users),
		handler.NewAdminHandler(users, activities, statsSvc),
		cfg.JWTSecret, rankingCache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
