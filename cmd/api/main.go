package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"
	mongolib "go.mongodb.org/mongo-driver/mongo"

	"github.com/buildlink/directory-system/internal/api"
	"github.com/buildlink/directory-system/internal/core/ports"
	"github.com/buildlink/directory-system/internal/core/service"
	"github.com/buildlink/directory-system/internal/infrastructure/config"
	"github.com/buildlink/directory-system/internal/infrastructure/db/memory"
	mongodb "github.com/buildlink/directory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/buildlink/directory-system/internal/infrastructure/db/redis"
	"github.com/buildlink/directory-system/internal/infrastructure/queue"
	"github.com/buildlink/directory-system/pkg/logger"
)

const tokenTTL = 24 * time.Hour

// @title        Directory System API
// @version      1.0
// @description  Server-driven navigation and CRM services for the business directory.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "directory-api",
		Env:     cfg.Env,
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		authRepo  ports.AuthRepository
		otpStore  ports.OTPStore
		likes     ports.LikeRegistry
		products  ports.ProductRepository
		enquiries ports.EnquiryRepository
		feedbacks ports.FeedbackRepository
		offers    ports.OfferRepository
		works     ports.WorkRepository
		events    ports.EventRepository
		gallery   ports.GalleryRepository
		notes     ports.NoteRepository
		loyalty   ports.LoyaltyRepository

		db  *mongolib.Database
		rdb *redislib.Client
	)

	if cfg.MockMode {
		log.Info().Dur("latency", cfg.MockLatency).Msg("running in mock mode with in-memory repositories")
		repos := memory.NewRepositories(cfg.MockLatency)
		repos.Seed()

		authRepo = repos.Auth
		otpStore = repos.OTP
		likes = repos.Likes
		products = repos.Products
		enquiries = repos.Enquiries
		feedbacks = repos.Feedbacks
		offers = repos.Offers
		works = repos.Works
		events = repos.Events
		gallery = repos.Gallery
		notes = repos.Notes
		loyalty = repos.Loyalty
	} else {
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}()
		db = database

		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close failed")
			}
		}()

		mongoAuth := mongodb.NewAuthRepository(db)
		mongoProducts := mongodb.NewProductRepository(db)
		mongoEnquiries := mongodb.NewEnquiryRepository(db)
		mongoOffers := mongodb.NewOfferRepository(db)

		for name, ensure := range map[string]func(context.Context) error{
			"users":     mongoAuth.EnsureIndexes,
			"products":  mongoProducts.EnsureIndexes,
			"enquiries": mongoEnquiries.EnsureIndexes,
			"offers":    mongoOffers.EnsureIndexes,
			"business": func(ctx context.Context) error {
				return mongodb.EnsureBusinessIndexes(ctx, db)
			},
		} {
			if err := ensure(ctx); err != nil {
				log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
			}
		}

		authRepo = mongoAuth
		otpStore = redisdb.NewOTPStore(rdb, cfg.OTPTTL)
		likes = redisdb.NewLikeRegistry(rdb)
		products = mongoProducts
		enquiries = mongoEnquiries
		feedbacks = mongodb.NewFeedbackRepository(db)
		offers = mongoOffers
		works = mongodb.NewWorkRepository(db)
		events = mongodb.NewEventRepository(db)
		gallery = mongodb.NewGalleryRepository(db)
		notes = mongodb.NewNoteRepository(db)
		loyalty = mongodb.NewLoyaltyRepository(db)
	}

	escalations := service.NewEscalationService(enquiries, logger.Named("escalation"))
	dispatcher := queue.NewDispatcher(cfg.EscalationWorkers, escalations, logger.Named("dispatcher"))
	dispatcher.Start(ctx)

	authService := service.NewAuthService(authRepo, otpStore, cfg.JWTSecret, tokenTTL)
	dealerService := service.NewDealerService(products, enquiries, feedbacks, offers, likes, loyalty, dispatcher, logger.Named("dealer"))
	businessService := service.NewBusinessService(works, events, gallery, offers, notes, loyalty, logger.Named("business"))
	navigationService := service.NewNavigationService(logger.Named("navigation"))

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Dealer:     dealerService,
		Business:   businessService,
		Navigation: navigationService,
		DB:         db,
		RDB:        rdb,
		JWTSecret:  cfg.JWTSecret,
		EchoOTP:    cfg.MockMode,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Bool("mock", cfg.MockMode).Msg("directory api listening")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
