package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	// DevelopmentJWTSecret is only accepted together with the memory backend.
	DevelopmentJWTSecret = "local-development-secret"

	MaxReminderDaysBefore = 365
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	StorageBackend   string
	MigrateOnStart   bool

	Port            string
	JWTSecret       string
	Timezone        string
	LogLevel        string
	OperatorWorkers int

	ReminderDaysBefore   int
	MaxOccurrences       int
	ReminderPollInterval time.Duration

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:      "localhost",
		PostgresPort:         "5433",
		PostgresDB:           "postgres",
		PostgresUsername:     "postgres",
		PostgresPassword:     "testpassword",
		StorageBackend:       StorageBackendPostgres,
		Port:                 "9446",
		JWTSecret:            DevelopmentJWTSecret,
		Timezone:             "UTC",
		LogLevel:             "info",
		OperatorWorkers:      4,
		ReminderDaysBefore:   1,
		MaxOccurrences:       1000,
		ReminderPollInterval: time.Minute,
		AMQPExchange:         "budget",
		AMQPQueue:            "reminders.due",
	}

	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.StorageBackend, "STORAGE_BACKEND")
	setString(&env.Port, "PORT")
	setString(&env.JWTSecret, "JWT_SECRET")
	setString(&env.Timezone, "TIMEZONE")
	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.AMQPURL, "AMQP_URL")
	setString(&env.AMQPExchange, "AMQP_EXCHANGE")
	setString(&env.AMQPQueue, "AMQP_QUEUE")

	var errs []error
	errs = append(errs,
		setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"),
		setInt(&env.ReminderDaysBefore, "REMINDER_DAYS_BEFORE"),
		setInt(&env.MaxOccurrences, "MAX_OCCURRENCES"),
		setBool(&env.MigrateOnStart, "MIGRATE_ON_START"),
		setDuration(&env.ReminderPollInterval, "REMINDER_POLL_INTERVAL"),
	)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q",
			StorageBackendPostgres, StorageBackendMemory, c.StorageBackend))
	}
	switch {
	case strings.TrimSpace(c.JWTSecret) == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case c.JWTSecret == DevelopmentJWTSecret && c.StorageBackend != StorageBackendMemory:
		errs = append(errs, errors.New("JWT_SECRET must be set when STORAGE_BACKEND is not memory"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("OPERATOR_WORKERS must be at least 1"))
	}
	if c.ReminderDaysBefore < 0 || c.ReminderDaysBefore > MaxReminderDaysBefore {
		errs = append(errs, fmt.Errorf("REMINDER_DAYS_BEFORE must be between 0 and %d", MaxReminderDaysBefore))
	}
	if c.MaxOccurrences < 1 {
		errs = append(errs, errors.New("MAX_OCCURRENCES must be at least 1"))
	}
	if c.ReminderPollInterval <= 0 {
		errs = append(errs, errors.New("REMINDER_POLL_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func setString(target *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*target = value
	}
}

func setInt(target *int, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = parsed
	return nil
}

func setBool(target *bool, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = parsed
	return nil
}

func setDuration(target *time.Duration, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = parsed
	return nil
}
