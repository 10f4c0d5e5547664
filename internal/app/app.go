package app

import (
	"ferro-backend/internal/bids"
	"ferro-backend/internal/breakdown"
	"ferro-backend/internal/config"
	"ferro-backend/internal/costlines"
	"ferro-backend/internal/database"
	"ferro-backend/internal/health"
	"ferro-backend/internal/middleware"
	"ferro-backend/internal/opexconfig"
	"ferro-backend/internal/orgs"
	"ferro-backend/internal/overhead"
	"ferro-backend/internal/recalc"
	"ferro-backend/internal/sequence"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services bundles the wired service layer so main can run background jobs
// (expiration sweep) against the same instances the routes use.
type Services struct {
	Bids   *bids.Service
	Recalc *recalc.Orchestrator
}

// CreateApp builds the Fiber app with global middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, *Services, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	var services *Services
	if db != nil {
		var defaults overhead.DefaultsSource = &orgs.Service{DB: db}
		orchestrator := &recalc.Orchestrator{DB: db, Defaults: defaults}
		generator := &sequence.Generator{DB: db, Rdb: rdb, Prefix: cfg.SequencePrefix}

		bidService := &bids.Service{DB: db, Seq: generator, Directory: &orgs.Service{DB: db}}
		bidHandlers := &bids.Handlers{Service: bidService, Recalc: orchestrator}
		bidGroup := app.Group("/api/v1/bids")
		bidGroup.Post("/create-bid", bidHandlers.CreateBid)
		bidGroup.Get("/get-bid/:bid_id", bidHandlers.GetBid)
		bidGroup.Get("/get-org-bids", bidHandlers.GetOrgBids)
		bidGroup.Patch("/update-bid/:bid_id", bidHandlers.UpdateBid)
		bidGroup.Patch("/update-status/:bid_id", bidHandlers.UpdateStatus)
		bidGroup.Delete("/delete-bid/:bid_id", bidHandlers.DeleteBid)
		bidGroup.Post("/recalculate/:bid_id", bidHandlers.Recalculate)
		bidGroup.Get("/get-timeline/:bid_id", bidHandlers.GetTimeline)
		bidGroup.Get("/get-history/:bid_id", bidHandlers.GetHistory)
		bidGroup.Post("/sweep-expirations", bidHandlers.SweepExpirations)

		lineService := &costlines.Service{DB: db}
		lineHandlers := &costlines.Handlers{Service: lineService, Recalc: orchestrator}
		lineGroup := app.Group("/api/v1/cost-lines")
		lineGroup.Post("/create-material/:bid_id", lineHandlers.CreateMaterial)
		lineGroup.Post("/create-labor/:bid_id", lineHandlers.CreateLabor)
		lineGroup.Post("/create-travel/:bid_id", lineHandlers.CreateTravel)
		lineGroup.Post("/create-labor-with-travel/:bid_id", lineHandlers.CreateLaborWithTravel)
		lineGroup.Patch("/update-material/:line_id", lineHandlers.UpdateMaterial)
		lineGroup.Patch("/update-labor/:line_id", lineHandlers.UpdateLabor)
		lineGroup.Patch("/update-travel/:line_id", lineHandlers.UpdateTravel)
		lineGroup.Get("/get-materials/:bid_id", lineHandlers.GetMaterials)
		lineGroup.Get("/get-labor/:bid_id", lineHandlers.GetLabor)
		lineGroup.Get("/get-travel/:bid_id", lineHandlers.GetTravel)
		lineGroup.Delete("/delete-material/:line_id", lineHandlers.DeleteMaterial)
		lineGroup.Delete("/delete-labor/:line_id", lineHandlers.DeleteLabor)
		lineGroup.Delete("/delete-travel/:line_id", lineHandlers.DeleteTravel)

		breakdownService := &breakdown.Service{DB: db}
		breakdownHandlers := &breakdown.Handlers{Service: breakdownService, Recalc: orchestrator}
		breakdownGroup := app.Group("/api/v1/breakdowns")
		breakdownGroup.Get("/get-breakdown/:bid_id", breakdownHandlers.GetBreakdown)
		breakdownGroup.Patch("/update-breakdown/:bid_id", breakdownHandlers.UpdateBreakdown)

		opexStore := &opexconfig.Store{DB: db}
		opexHandlers := &opexconfig.Handlers{Store: opexStore, Recalc: orchestrator}
		opexGroup := app.Group("/api/v1/operating-expense")
		opexGroup.Get("/get-config/:bid_id", opexHandlers.GetConfig)
		opexGroup.Patch("/update-config/:bid_id", opexHandlers.UpdateConfig)

		services = &Services{Bids: bidService, Recalc: orchestrator}
	}

	return app, db, rdb, services, nil
}
