package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"opportunityrisks/internal/cache"
	"opportunityrisks/internal/config"
	"opportunityrisks/internal/crm"
	"opportunityrisks/internal/database"
	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/metrics"
	"opportunityrisks/internal/server"
	"opportunityrisks/internal/services"
	"opportunityrisks/internal/validator"
)

// @title           Opportunity Risk Register API
// @version         1.0
// @description     Tracks risks against sales opportunities read from SAP CRM.

// @host      localhost:4004
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key required by mutating endpoints when API_KEY is set.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	reg := metrics.NewRegistry()

	opportunityCache, err := cache.New(appConfig.Cache)
	if err != nil {
		return fmt.Errorf("failed to create opportunity cache: %w", err)
	}
	defer opportunityCache.Close()

	policy, err := crm.ParseEmptyPolicy(appConfig.CRM.EmptyPolicy)
	if err != nil {
		return err
	}
	crmClient := crm.NewClient(crm.ClientConfig{
		BaseURL:     appConfig.CRM.BaseURL,
		Endpoint:    appConfig.CRM.Endpoint,
		Token:       appConfig.CRM.Token,
		Username:    appConfig.CRM.Username,
		Password:    appConfig.CRM.Password,
		PackageName: appConfig.CRM.PackageName,
		APIName:     appConfig.CRM.APIName,
	}, &http.Client{Timeout: appConfig.CRM.Timeout}, crm.WithMetrics(reg))
	normalizerOpts := []crm.Option{crm.WithEmptyPolicy(policy)}
	if appConfig.CRM.FieldTableFile != "" {
		table, err := crm.LoadFieldTable(appConfig.CRM.FieldTableFile)
		if err != nil {
			return err
		}
		normalizerOpts = append(normalizerOpts, crm.WithFieldTable(table))
		log.Infof("Loaded CRM field overrides for %d field(s)", len(table))
	}
	normalizer := crm.NewNormalizer(normalizerOpts...)

	// Initialize services
	db := dbManager.DB()
	opportunityService := services.NewOpportunityService(crmClient, normalizer, opportunityCache, reg)

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	router := server.NewRouter(server.Deps{
		Opportunities: opportunityService,
		Resolver:      services.NewRiskResolver(db, reg),
		Risks:         services.NewRiskService(db, opportunityService),
		ValueHelp:     services.NewValueHelpService(),
		Audit:         services.NewAuditService(db),
		Metrics:       reg,
		APIKey:        appConfig.APIKey,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting opportunity risk register on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
