package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carencia/internal/config"
	"carencia/internal/database"
	"carencia/internal/jobs"
	"carencia/internal/middleware"
	"carencia/internal/modules/auth"
	"carencia/internal/modules/catalog"
	"carencia/internal/modules/dealership"
	"carencia/internal/modules/distribution"
	"carencia/internal/modules/feed"
	"carencia/internal/modules/lead"
	"carencia/internal/modules/tracking"
	"carencia/internal/pkg/cache"
	jwtsvc "carencia/internal/pkg/jwt"
	"carencia/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	var cacheClient *cache.Client
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, catalog cache disabled: %v", err)
		}
	}

	leadRepo := repository.NewLeadRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	dealershipRepo := repository.NewDealershipRepository(db)
	eventRepo := repository.NewEventRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := feed.NewHub()
	feedHandler := feed.NewHandler(hub)

	calculator := tracking.NewCalculator(tracking.DefaultCostTable())

	distOpts := []distribution.Option{distribution.WithPublisher(hub)}
	if cfg.SendGridAPIKey != "" {
		distOpts = append(distOpts, distribution.WithEmailSender(
			distribution.NewSendGridSender(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFrom),
		))
	}
	distributor := distribution.NewService(
		leadRepo,
		dealershipRepo,
		eventRepo,
		interactionRepo,
		distribution.NewWebhookClient(cfg.WebhookTimeout),
		distOpts...,
	)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(vehicleRepo, cacheClient)
	catalogHandler := catalog.NewHandler(catalogService)

	trackingService := tracking.NewService(eventRepo)
	trackingHandler := tracking.NewHandler(trackingService)

	leadService := lead.NewService(
		leadRepo, vehicleRepo, eventRepo, interactionRepo,
		calculator, distributor, hub,
	)
	leadHandler := lead.NewHandler(leadService)

	dealershipService := dealership.NewService(dealershipRepo)
	dealershipHandler := dealership.NewHandler(dealershipService)

	cronManager := jobs.NewCronManager(jobs.NewScorer(leadRepo, eventRepo))
	if err := cronManager.Setup(cfg.ScoringCron); err != nil {
		log.Fatal("invalid scoring cron expression: ", err)
	}
	cronManager.Start()
	defer cronManager.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		auth.RegisterRoutes(v1, authHandler)
		catalog.RegisterRoutes(v1, catalogHandler)
		tracking.RegisterRoutes(v1, trackingHandler)
		lead.RegisterPublicRoutes(v1, leadHandler)

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuth(j))
		{
			lead.RegisterAdminRoutes(admin, leadHandler)
			dealership.RegisterAdminRoutes(admin, dealershipHandler)
			feed.RegisterAdminRoutes(admin, feedHandler)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
