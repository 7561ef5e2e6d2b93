package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
)

type KafkaConfig struct {
	Brokers           []string
	ConsumerGroup     string
	EventsTopic       string
	BankPartnersTopic string
	TLS               bool
	SASLEnabled       bool
	SASLMechanism     string
	SASLUsername      string
	SASLPassword      string
}

type JWTConfig struct {
	Secret         string
	PublicKeyFile  string
	PrivateKeyFile string
	Issuer         string
	Expiration     time.Duration
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both a certificate and a key were configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

type SimulationConfig struct {
	DefaultTopN int
}

type Config struct {
	GRPCPort      int
	HTTPPort      int
	DB            postgres.Config
	MigrationsDir string
	Kafka         KafkaConfig
	JWT           JWTConfig
	TLS           TLSConfig
	Simulation    SimulationConfig
	RateLimitRPS  int
	LogLevel      string
	LogFormat     string
	OTLPEndpoint  string
	ServiceName   string
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyFile == "" && c.JWT.PrivateKeyFile == "" {
		errs = append(errs, errors.New("one of JWT_SECRET, JWT_PUBLIC_KEY_FILE or JWT_PRIVATE_KEY_FILE is required"))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS must list at least one broker"))
	}
	if c.Simulation.DefaultTopN <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_TOP_N must be positive, got %d", c.Simulation.DefaultTopN))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimitRPS))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "cliquealo"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "cliquealo_credit"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "services/credit-service/internal/infrastructure/postgres/migrations"),
		Kafka: KafkaConfig{
			Brokers:           getEnvList("KAFKA_BROKERS", "localhost:9092"),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "credit-service"),
			EventsTopic:       getEnv("KAFKA_EVENTS_TOPIC", "cliquealo.credit-events"),
			BankPartnersTopic: getEnv("KAFKA_BANK_PARTNERS_TOPIC", "cliquealo.bank-partners"),
			TLS:               getEnvBool("KAFKA_TLS", false),
			SASLEnabled:       getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism:     getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:      getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:      getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PublicKeyFile:  getEnv("JWT_PUBLIC_KEY_FILE", ""),
			PrivateKeyFile: getEnv("JWT_PRIVATE_KEY_FILE", ""),
			Issuer:         getEnv("JWT_ISSUER", "cliquealo"),
			Expiration:     getEnvDuration("JWT_EXPIRATION", time.Hour),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Simulation: SimulationConfig{
			DefaultTopN: getEnvInt("DEFAULT_TOP_N", 3),
		},
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 20),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  "credit-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
