package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
)

const (
	EnvironmentProduction = "production"

	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	MailerSES  = "ses"
	MailerSMTP = "smtp"
	MailerLog  = "log"

	MinBcryptHasherCost = 10
)

type Config struct {
	Environment           string `env:"ENVIRONMENT" envDefault:"development"`
	Port                  int    `env:"PORT" envDefault:"4000"`
	FrontendURL           string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	ProductionFrontendURL string `env:"PRODUCTION_FRONTEND_URL" envDefault:"https://passwordresetfloww.netlify.app"`
	IsTestMode            bool   `env:"TEST_MODE" envDefault:"false"`

	Secret           string `env:"SECRET"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	Storage       string `env:"STORAGE" envDefault:"sqlite"`
	SqlitePath    string `env:"SQLITE_PATH" envDefault:"db/users.sqlite"`
	PostgresqlURL string `env:"POSTGRESQL_URL"`

	Mailer       string `env:"MAILER" envDefault:"ses"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"Support <no-reply@localhost>"`
	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT" envDefault:"5s"`
	AllowedOrigins   []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SentryDsn        *url.URL      `env:"SENTRY_DSN"`

	SeedUserEmail    string `env:"SEED_USER_EMAIL"`
	SeedUserPassword string `env:"SEED_USER_PASSWORD"`
}

// HasherConfig is the subset of Config needed to hash passwords offline.
type HasherConfig struct {
	Secret           string `env:"SECRET"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`
}

// Load reads the process environment. Variables from a .env file in the
// working directory are added unless already set.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return load(env.Options{})
}

// LoadHasher reads only the hasher settings, so it works without any
// storage or mailer configuration.
func LoadHasher() (*HasherConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return loadHasher(env.Options{})
}

func LoadHasherFrom(environment map[string]string) (*HasherConfig, error) {
	return loadHasher(env.Options{Environment: environment})
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not read .env file: %w", err)
	}
	return nil
}

func loadHasher(opts env.Options) (*HasherConfig, error) {
	config := &HasherConfig{}
	if err := env.Parse(config, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	err := validation.ValidateStruct(config,
		validation.Field(&config.BcryptHasherCost, validation.Required, validation.Min(MinBcryptHasherCost)),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// LoadFrom reads the configuration from environment instead of the process
// environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return load(env.Options{Environment: environment})
}

func load(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.FrontendURL, validation.Required),
		validation.Field(&c.ProductionFrontendURL, validation.Required),
		validation.Field(&c.BcryptHasherCost, validation.Required, validation.Min(MinBcryptHasherCost)),
		validation.Field(&c.Storage, validation.Required, validation.In(StorageSQLite, StoragePostgres)),
		validation.Field(&c.SqlitePath, requiredIf(c.Storage == StorageSQLite)...),
		validation.Field(&c.PostgresqlURL, requiredIf(c.Storage == StoragePostgres)...),
		validation.Field(&c.Mailer, mailerRules(c.IsProduction())...),
		validation.Field(&c.EmailFrom, validation.Required),
		validation.Field(&c.AwsRegion, requiredIf(c.Mailer == MailerSES)...),
		validation.Field(&c.SMTPHost, requiredIf(c.Mailer == MailerSMTP)...),
		validation.Field(&c.SMTPPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.OperationTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.SeedUserPassword, requiredIf(c.SeedUserEmail != "")...),
		validation.Field(&c.SeedUserEmail, requiredIf(c.SeedUserPassword != "")...),
	)
}

// The log mailer writes live reset links into the logs.
func mailerRules(production bool) []validation.Rule {
	rules := []validation.Rule{validation.Required, validation.In(MailerSES, MailerSMTP, MailerLog)}
	if production {
		rules = append(rules, validation.NotIn(MailerLog))
	}
	return rules
}

func requiredIf(condition bool) []validation.Rule {
	if condition {
		return []validation.Rule{validation.Required}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// ResetLinkBaseURL is the frontend that serves the reset-password page.
func (c *Config) ResetLinkBaseURL() string {
	if c.IsProduction() {
		return c.ProductionFrontendURL
	}
	return c.FrontendURL
}
