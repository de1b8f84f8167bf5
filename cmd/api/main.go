package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/config"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hrms-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/kafka"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/hrms-payroll-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	directory   employee.DirectoryReader
	attendance  attendance.Reader
	leave       leave.Reader
	adjustments adjustment.Reader
	snapshots   payroll.SnapshotRepository
	transactor  payroll.Transactor
	close       func()
}

type eventPublisher interface {
	payroll.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	var publisher eventPublisher = kafka.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("publishing payroll events", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", "error", err)
		}
	}()

	serviceOpts := []payrollService.Option{
		payrollService.WithPublisher(publisher),
		payrollService.WithLogger(logger),
		payrollService.WithCommitConcurrency(cfg.Payroll.CommitConcurrency),
	}
	if repos.transactor != nil {
		serviceOpts = append(serviceOpts, payrollService.WithTransactor(repos.transactor))
	}
	payrollSvc := payrollService.NewPayrollService(
		cfg.Payroll.Policy(),
		repos.directory,
		repos.attendance,
		repos.leave,
		repos.adjustments,
		repos.snapshots,
		serviceOpts...,
	)

	if cfg.Scheduler.AutoCommitEnabled {
		scheduler := cron.NewScheduler(logger)
		cron.NewPayrollJobs(payrollSvc, cfg.Scheduler.AutoCommitDay, logger).
			RegisterJobs(scheduler, cfg.Scheduler.Interval)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	router := appHTTP.NewRouter(JWTService, payrollHandler, logger, cfg.App.AllowedOrigins)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", server.Addr, "storage", cfg.App.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "grace", cfg.App.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	switch cfg.App.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		if cfg.App.SeedDemoData {
			now := time.Now().UTC()
			thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			if err := fixtures.SeedDemoPayroll(store, thisMonth.AddDate(0, -1, 0), thisMonth); err != nil {
				return nil, fmt.Errorf("seed demo payroll: %w", err)
			}
			logger.Info("seeded demo payroll data", "employees", len(fixtures.GetDemoEmployees()))
		}
		return &repositories{
			directory:   store,
			attendance:  store,
			leave:       store,
			adjustments: store.Adjustments(),
			snapshots:   store,
			close:       func() {},
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &repositories{
			directory:   postgresql.NewEmployeeRepository(db),
			attendance:  postgresql.NewAttendanceRepository(db),
			leave:       postgresql.NewLeaveRequestRepository(db),
			adjustments: postgresql.NewAdjustmentRepository(db),
			snapshots:   postgresql.NewPayrollRepository(db),
			transactor:  postgresql.NewSnapshotReadTransactor(db),
			close:       db.Close,
		}, nil
	}
}
