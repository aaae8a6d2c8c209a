package main

import (
	"context"
	"log"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	postgres "github.com/sgruwertal/dienst-service/repos/postgres"
	resend "github.com/sgruwertal/dienst-service/repos/resend"

	auth "github.com/sgruwertal/dienst-service/pkg/auth"
	config "github.com/sgruwertal/dienst-service/pkg/config"

	leaderboard "github.com/sgruwertal/dienst-service/services/leaderboard"
	matches "github.com/sgruwertal/dienst-service/services/matches"
	notify "github.com/sgruwertal/dienst-service/services/notify"
	reminders "github.com/sgruwertal/dienst-service/services/reminders"
	servicetypes "github.com/sgruwertal/dienst-service/services/servicetypes"
	slots "github.com/sgruwertal/dienst-service/services/slots"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer store.Close()

	if err := store.RunMigrations(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	var firebaseApp *firebase.App
	if cfg.FirebaseCredentialsJSON != "" {
		credentialsOption := option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))
		firebaseApp, err = firebase.NewApp(ctx, nil, credentialsOption)
		if err != nil {
			logger.Fatal("error initializing firebase app", zap.Error(err))
		}
	}

	resendService := resend.NewService(cfg.ResendKey, cfg.MailFrom, cfg.AdminEmail, cfg.PublicURL)

	dispatcher := notify.NewDispatcher(resendService, logger, 64)
	dispatcher.Start()
	defer dispatcher.Stop()

	slotService := slots.NewSlotService(store, dispatcher, logger)
	matchService := matches.NewMatchService(store, logger)
	catalogService := servicetypes.NewCatalogService(store, logger)
	leaderboardService := leaderboard.NewLeaderboardService(store, logger)
	reminderService := reminders.NewReminderService(store, resendService, logger)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CorsHosts, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin", "x-admin-secret"}

	router := gin.Default()
	router.Use(cors.New(corsConfig))

	publicRouter := router.Group("/api/v1")

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AdminMiddleware(firebaseApp, cfg.AdminAPISecret))

	cronRouter := router.Group("/cron/v1")
	cronRouter.Use(auth.CronMiddleware(cfg.CronSecret))

	slots.NewHTTPHandler(slots.HTTPOptions{
		Service:     slotService,
		Router:      publicRouter,
		AdminRouter: adminRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service:     matchService,
		Router:      publicRouter,
		AdminRouter: adminRouter,
	})

	servicetypes.NewHTTPHandler(servicetypes.HTTPOptions{
		Service:     catalogService,
		Router:      publicRouter,
		AdminRouter: adminRouter,
	})

	leaderboard.NewHTTPHandler(leaderboard.HTTPOptions{
		Service: leaderboardService,
		Router:  publicRouter,
	})

	reminders.NewHTTPHandler(reminders.HTTPOptions{
		Service: reminderService,
		Router:  cronRouter,
	})

	logger.Fatal("server stopped", zap.Error(router.Run(":"+cfg.Port)))
}
