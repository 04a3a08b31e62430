package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/jkorir/maziwa/internal/anomaly"
	"github.com/jkorir/maziwa/internal/approval"
	"github.com/jkorir/maziwa/internal/audit"
	"github.com/jkorir/maziwa/internal/collection"
	"github.com/jkorir/maziwa/internal/config"
	"github.com/jkorir/maziwa/internal/database"
	"github.com/jkorir/maziwa/internal/farmer"
	"github.com/jkorir/maziwa/internal/notification"
	"github.com/jkorir/maziwa/internal/payment"
	"github.com/jkorir/maziwa/internal/penalty"
	"github.com/jkorir/maziwa/internal/rate"
	"github.com/jkorir/maziwa/internal/staff"
	"github.com/jkorir/maziwa/internal/variance"
	"github.com/jkorir/maziwa/pkg/logger"
	mw "github.com/jkorir/maziwa/pkg/middleware"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("connected to database")

	// Farmer feature
	farmerRepo := farmer.NewRepository(db)
	farmerService := farmer.NewService(farmerRepo)
	farmerHandler := farmer.NewHandler(farmerService)

	// Staff feature
	staffRepo := staff.NewRepository(db)
	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(staffService)

	// Notification feature (staff repo supplies the admin fan-out list)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, staffRepo, log.Named("notification"))
	notificationHandler := notification.NewHandler(notificationService)

	// Audit feature (alerts admins on suspicious activity)
	auditRepo := audit.NewRepository(db)
	auditService := audit.NewService(auditRepo, notificationService, log.Named("audit"))
	auditHandler := audit.NewHandler(auditService)

	// Milk rate feature
	rateRepo := rate.NewRepository(db)
	rateService := rate.NewService(rateRepo)
	rateHandler := rate.NewHandler(rateService)

	// Collection feature
	collectionRepo := collection.NewRepository(db)
	collectionService := collection.NewService(collectionRepo, farmerService, staffService, auditService,
		cfg.MaxCollectionAgeHours, cfg.CreationLagMinutes)
	collectionHandler := collection.NewHandler(collectionService)

	// Anomaly checks (advisory, feed the audit trail)
	anomalyService := anomaly.NewService(collectionService, farmerService, auditService, log.Named("anomaly"),
		cfg.MaxDistanceKm, cfg.MaxTravelSpeedKmh, cfg.ApprovalLagHours)

	// Penalty ledger feature
	penaltyRepo := penalty.NewRepository(db)
	penaltyService := penalty.NewService(penaltyRepo)
	penaltyHandler := penalty.NewHandler(penaltyService)

	// Variance feature
	varianceRepo := variance.NewRepository(db)
	varianceService := variance.NewService(varianceRepo)
	varianceHandler := variance.NewHandler(varianceService)

	// Approval feature (orchestrates variance, penalties and anomaly checks)
	approvalRepo := approval.NewRepository(db)
	approvalService := approval.NewService(approvalRepo, collectionRepo, anomalyService, varianceService,
		penaltyService, auditService, log.Named("approval"), cfg.WeighingWindowHours, cfg.MaxDistanceKm)
	approvalHandler := approval.NewHandler(approvalService)

	// Payment feature (reconciles earnings against pending penalties)
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, collectionService, approvalRepo, rateService,
		penaltyService, notificationService, auditService, log.Named("payment"))
	paymentHandler := payment.NewHandler(paymentService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.TestStaffMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/farmers", farmerHandler.Routes())
		r.Mount("/staff", staffHandler.Routes())
		r.Mount("/collections", collectionHandler.Routes())
		r.Mount("/approvals", approvalHandler.Routes())
		r.Mount("/variance", varianceHandler.Routes())
		r.Mount("/penalties", penaltyHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/rates", rateHandler.Routes())
		r.Mount("/audit", auditHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal("server failed to start", zap.Error(err))
	}
}
