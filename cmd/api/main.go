package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/guardsys/guardsys/internal/audit"
	"github.com/guardsys/guardsys/internal/config"
	"github.com/guardsys/guardsys/internal/db"
	"github.com/guardsys/guardsys/internal/handlers"
	"github.com/guardsys/guardsys/internal/maintenance"
	"github.com/guardsys/guardsys/internal/middleware"
	"github.com/guardsys/guardsys/internal/notify"
	"github.com/guardsys/guardsys/internal/repo"
	"github.com/guardsys/guardsys/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, handlers, and middleware into the API router.
// Split from main so integration tests can mount it on a mock database.
func newRouter(database *sql.DB, cfg config.Config) (*chi.Mux, *maintenance.Sweeper, *repo.SweepRunRepo) {
	recorder := audit.NewRecorder()
	assetRepo := repo.NewAssetRepo(database, recorder)
	orgRepo := repo.NewOrgRepo(database)
	eventRepo := repo.NewEventRepo(database)
	periodicityRepo := repo.NewPeriodicityRepo(database)
	userRepo := repo.NewUserRepo(database)
	auditRepo := repo.NewAuditRepo(database)
	documentRepo := repo.NewDocumentRepo(database)
	sweepRunRepo := repo.NewSweepRunRepo(database)

	mailer := notify.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	sweeper := maintenance.NewSweeper(eventRepo, mailer, cfg.AdminEmail)
	sweeper.ThresholdDays = cfg.EscalationDays

	authH := &handlers.AuthHandler{Users: userRepo, Secret: []byte(cfg.JWTSecret), ExpireHours: cfg.JWTExpireHours}
	assetH := &handlers.AssetHandler{Assets: assetRepo, Events: eventRepo, Periodicities: periodicityRepo, Users: userRepo, Documents: documentRepo}
	orgH := &handlers.OrgHandler{Repo: orgRepo}
	maintH := &handlers.MaintenanceHandler{Events: eventRepo, Assets: assetRepo, Periodicities: periodicityRepo, Users: userRepo}
	periodicityH := &handlers.PeriodicityHandler{Repo: periodicityRepo}
	userH := &handlers.UserHandler{Users: userRepo}
	auditH := &handlers.AuditHandler{Repo: auditRepo}
	documentH := &handlers.DocumentHandler{Documents: documentRepo, Assets: assetRepo}
	reportH := &handlers.ReportHandler{Events: eventRepo}
	jobH := &handlers.JobHandler{Sweeper: sweeper, Runs: sweepRunRepo, Users: userRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWT([]byte(cfg.JWTSecret)))

		r.Get("/orgs", orgH.ListOrgs)
		r.Post("/orgs", orgH.CreateOrg)
		r.Get("/orgs/{id}", orgH.GetOrg)
		r.Put("/orgs/{id}", orgH.UpdateOrg)
		r.Delete("/orgs/{id}", orgH.DeleteOrg)

		r.Get("/assets", assetH.ListAssets)
		r.Post("/assets", assetH.CreateAsset)
		r.Get("/assets/{id}", assetH.GetAsset)
		r.Put("/assets/{id}", assetH.UpdateAsset)
		r.Post("/assets/{id}/archive", assetH.ArchiveAsset)
		r.Post("/assets/{id}/restore", assetH.RestoreAsset)
		r.Get("/assets/{id}/documents", documentH.ListDocuments)
		r.Post("/assets/{id}/documents", documentH.AddDocument)
		r.Post("/assets/{id}/maintenance/done", maintH.MarkDone)

		r.Get("/maintenance", maintH.ListEvents)

		r.Get("/periodicities", periodicityH.ListPeriodicities)
		r.Post("/periodicities", periodicityH.CreatePeriodicity)
		r.Delete("/periodicities/{id}", periodicityH.DeletePeriodicity)

		r.Get("/audit", auditH.ListAudit)

		r.Get("/reports/maintenance.csv", reportH.MaintenanceCSV)

		r.Post("/jobs/sweep", jobH.RunSweep)
		r.Get("/jobs/sweeps", jobH.ListSweepRuns)

		r.Get("/users", userH.ListUsers)
		r.Post("/users", userH.CreateUser)
		r.Put("/users/{id}", userH.UpdateUser)
	})

	return r, sweeper, sweepRunRepo
}

func main() {
	cfg := config.Load()

	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	r, sweeper, sweepRunRepo := newRouter(database, cfg)

	if cfg.SweepCronEnabled {
		go scheduler.Run(sweeper, sweepRunRepo)
		slog.Info("in-process daily sweep enabled")
	}

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		log.Fatal(http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r))
	}
	slog.Info("starting server", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
