package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/service"
	"github.com/awahyudi/facility-portal/internal/config"
	"github.com/awahyudi/facility-portal/internal/infrastructure/export"
	"github.com/awahyudi/facility-portal/internal/infrastructure/external/openai"
	"github.com/awahyudi/facility-portal/internal/infrastructure/persistence/repository"
	"github.com/awahyudi/facility-portal/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/awahyudi/facility-portal/internal/interfaces/http"
	ws "github.com/awahyudi/facility-portal/internal/interfaces/websocket"
	"github.com/awahyudi/facility-portal/pkg/database"
	"github.com/awahyudi/facility-portal/pkg/utils"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting facility portal server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	kv := utils.NewKVLogger(logger)
	disp := dispatcher.New(dispatcher.WithLogger(kv))

	txManager := sqlite.NewDB(db.DB, logger)

	userRepo := repository.NewUserRepository(db.DB, logger)
	permitRepo := repository.NewPermitRepository(db.DB, logger)
	attendanceRepo := repository.NewAttendanceRepository(db.DB, logger)
	guestRepo := repository.NewGuestRepository(db.DB, logger)
	overtimeRepo := repository.NewOvertimeRepository(db.DB, logger)
	wasteRepo := repository.NewWasteRepository(db.DB, logger)
	sarprasRepo := repository.NewSarprasRepository(db.DB, logger)
	briefingRepo := repository.NewBriefingRepository(db.DB, logger)

	prompts, err := openai.LoadPrompts(cfg.OpenAI.PromptsPath)
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}
	reporter := openai.NewReporter(cfg.OpenAI.APIKey, cfg.OpenAI.Model, prompts, logger)

	wasteService := service.NewWasteService(wasteRepo, disp, kv)

	services := httpserver.Services{
		Users:      service.NewUserService(userRepo, txManager, disp, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, kv),
		Permits:    service.NewPermitService(permitRepo, attendanceRepo, disp, kv),
		Attendance: service.NewAttendanceService(attendanceRepo, disp, kv),
		Guests:     service.NewGuestService(guestRepo, disp, kv),
		Overtime:   service.NewOvertimeService(overtimeRepo, disp, kv),
		Waste:      wasteService,
		Sarpras:    service.NewSarprasService(sarprasRepo, disp, kv),
		Briefings:  service.NewBriefingService(briefingRepo, disp, kv),
		Reports:    service.NewReportService(attendanceRepo, wasteService, reporter, kv),
	}

	hub := ws.NewHub(disp, services.Permits, logger)
	exporter := export.NewExporter(logger)
	archive := export.NewArchive(cfg.Export.OutputDir, logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, services, exporter, archive, disp, hub, kv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()
		if err := <-errCh; err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	case serveErr = <-errCh:
	}

	hub.Close()
	if err := disp.Close(); err != nil {
		logger.Error("Dispatcher close error", zap.Error(err))
	}

	if serveErr != nil {
		return serveErr
	}

	logger.Info("Server stopped")
	return nil
}
