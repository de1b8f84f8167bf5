package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
	Payroll   PayrollConfig
	Scheduler SchedulerConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	StorageDriver  string
	SeedDemoData   bool
	AllowedOrigins []string
	ShutdownGrace  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration. Tokens are issued by the identity
// service; this service only verifies them.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PayrollConfig carries the business constants of the salary formula.
type PayrollConfig struct {
	StandardWorkingDays  decimal.Decimal
	DeductionRate        decimal.Decimal
	HoursPerDay          decimal.Decimal
	LateThresholdMinutes int
	LatePenaltyDays      decimal.Decimal
	PaidLeaveTypes       []string
	MoneyScale           int32
	CommitConcurrency    int
}

type SchedulerConfig struct {
	AutoCommitEnabled bool
	AutoCommitDay     int
	Interval          time.Duration
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	shutdownGrace, err := getEnvDuration("APP_SHUTDOWN_GRACE", 15*time.Second)
	if err != nil {
		return nil, err
	}
	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageDriver:  getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		SeedDemoData:   getEnv("MEMORY_SEED_DEMO", "false") == "true",
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ShutdownGrace:  shutdownGrace,
	}

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Kafka = KafkaConfig{
		Brokers: getEnvSlice("KAFKA_BROKERS", nil),
		Topic:   getEnv("PAYROLL_EVENTS_TOPIC", "payroll.snapshot.committed"),
	}

	if config.Payroll, err = loadPayroll(); err != nil {
		return nil, err
	}

	autoCommitDay, err := getEnvInt("PAYROLL_AUTO_COMMIT_DAY", 1)
	if err != nil {
		return nil, err
	}
	interval, err := getEnvDuration("PAYROLL_AUTO_COMMIT_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	config.Scheduler = SchedulerConfig{
		AutoCommitEnabled: getEnv("PAYROLL_AUTO_COMMIT", "false") == "true",
		AutoCommitDay:     autoCommitDay,
		Interval:          interval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayroll() (PayrollConfig, error) {
	var (
		p   PayrollConfig
		err error
	)
	if p.StandardWorkingDays, err = getEnvDecimal("PAYROLL_STANDARD_WORKING_DAYS", "26"); err != nil {
		return p, err
	}
	if p.DeductionRate, err = getEnvDecimal("PAYROLL_DEDUCTION_RATE", "0.105"); err != nil {
		return p, err
	}
	if p.HoursPerDay, err = getEnvDecimal("PAYROLL_HOURS_PER_DAY", "8"); err != nil {
		return p, err
	}
	if p.LatePenaltyDays, err = getEnvDecimal("PAYROLL_LATE_PENALTY_DAYS", "0.5"); err != nil {
		return p, err
	}
	if p.LateThresholdMinutes, err = getEnvInt("PAYROLL_LATE_THRESHOLD_MINUTES", 30); err != nil {
		return p, err
	}
	scale, err := getEnvInt("PAYROLL_MONEY_SCALE", 2)
	if err != nil {
		return p, err
	}
	p.MoneyScale = int32(scale)
	if p.CommitConcurrency, err = getEnvInt("PAYROLL_COMMIT_CONCURRENCY", 8); err != nil {
		return p, err
	}
	p.PaidLeaveTypes = getEnvSlice("PAYROLL_PAID_LEAVE_TYPES", []string{"annual_leave", "sick"})
	return p, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.App.StorageDriver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !c.Payroll.StandardWorkingDays.IsPositive() {
		return fmt.Errorf("PAYROLL_STANDARD_WORKING_DAYS must be positive")
	}
	if !c.Payroll.HoursPerDay.IsPositive() {
		return fmt.Errorf("PAYROLL_HOURS_PER_DAY must be positive")
	}
	if c.Payroll.DeductionRate.IsNegative() {
		return fmt.Errorf("PAYROLL_DEDUCTION_RATE must not be negative")
	}
	if c.Payroll.CommitConcurrency < 1 {
		return fmt.Errorf("PAYROLL_COMMIT_CONCURRENCY must be at least 1")
	}
	if c.Scheduler.AutoCommitEnabled && c.Scheduler.Interval <= 0 {
		return fmt.Errorf("PAYROLL_AUTO_COMMIT_INTERVAL must be positive")
	}
	if c.Scheduler.AutoCommitDay < 1 || c.Scheduler.AutoCommitDay > 28 {
		return fmt.Errorf("PAYROLL_AUTO_COMMIT_DAY must be between 1 and 28")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Policy converts the payroll settings into the engine's policy.
func (c PayrollConfig) Policy() payroll.Policy {
	return payroll.Policy{
		StandardWorkingDays:  c.StandardWorkingDays,
		DeductionRate:        c.DeductionRate,
		HoursPerDay:          c.HoursPerDay,
		LateThresholdMinutes: c.LateThresholdMinutes,
		LatePenaltyDays:      c.LatePenaltyDays,
		PaidLeaveTypes:       c.PaidLeaveTypes,
		MoneyScale:           c.MoneyScale,
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
