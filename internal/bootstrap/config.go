package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sage-x-project/sage-did-go/pkg/did"
	"github.com/sage-x-project/sage-did-go/pkg/events"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendLog      = "log"
	BackendKafka    = "kafka"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	LedgerBackend string
	LockBackend   string
	EventsBackend string

	DatabaseURL string
	MaxDBConns  int
	RedisURL    string
	LockTTL     time.Duration

	KafkaBrokers      []string
	KafkaTopicCreated string
	KafkaTopicUpdated string
	KafkaTopicDeleted string

	DIDMethods  []string
	DIDNetworks []string

	DispatchQueue   int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Backends struct {
		Ledger string `yaml:"ledger"`
		Lock   string `yaml:"lock"`
		Events string `yaml:"events"`
	} `yaml:"backends"`
	Dependencies struct {
		PostgresURL       string   `yaml:"postgres_url"`
		MaxDBConns        int      `yaml:"max_db_conns"`
		RedisURL          string   `yaml:"redis_url"`
		LockTTLSeconds    int      `yaml:"lock_ttl_seconds"`
		KafkaBrokers      []string `yaml:"kafka_brokers"`
		KafkaTopicCreated string   `yaml:"kafka_topic_did_created"`
		KafkaTopicUpdated string   `yaml:"kafka_topic_did_updated"`
		KafkaTopicDeleted string   `yaml:"kafka_topic_did_deleted"`
	} `yaml:"dependencies"`
	Identifiers struct {
		Methods  []string `yaml:"methods"`
		Networks []string `yaml:"networks"`
	} `yaml:"identifiers"`
	Limits struct {
		DispatchQueue          int   `yaml:"dispatch_queue"`
		MaxBodyBytes           int64 `yaml:"max_body_bytes"`
		ShutdownTimeoutSeconds int   `yaml:"shutdown_timeout_seconds"`
	} `yaml:"limits"`
}

// DefaultConfig runs everything in process
func DefaultConfig() Config {
	return Config{
		ServiceID:         "sage-did-registry",
		HTTPPort:          8080,
		GRPCPort:          9090,
		LedgerBackend:     BackendMemory,
		LockBackend:       BackendMemory,
		EventsBackend:     BackendLog,
		MaxDBConns:        20,
		LockTTL:           30 * time.Second,
		KafkaTopicCreated: events.TypeCreated,
		KafkaTopicUpdated: events.TypeUpdated,
		KafkaTopicDeleted: events.TypeDeleted,
		DIDMethods:        append([]string(nil), did.DefaultPolicy.Methods...),
		DIDNetworks:       append([]string(nil), did.DefaultPolicy.Networks...),
		DispatchQueue:     64,
		MaxBodyBytes:      1 << 20,
		ShutdownTimeout:   10 * time.Second,
	}
}

// LoadConfig applies the YAML file at path, when it exists, and then the
// environment over DefaultConfig
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		applyFile(&cfg, f)
	}

	cfg.ServiceID = envOrDefault("SERVICE_ID", cfg.ServiceID)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.LedgerBackend = strings.ToLower(envOrDefault("LEDGER_BACKEND", cfg.LedgerBackend))
	cfg.LockBackend = strings.ToLower(envOrDefault("LOCK_BACKEND", cfg.LockBackend))
	cfg.EventsBackend = strings.ToLower(envOrDefault("EVENTS_BACKEND", cfg.EventsBackend))
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.MaxDBConns = envInt("DB_MAX_CONNS", cfg.MaxDBConns)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.LockTTL = time.Duration(envInt("LOCK_TTL_SECONDS", int(cfg.LockTTL.Seconds()))) * time.Second
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicCreated = envOrDefault("KAFKA_TOPIC_DID_CREATED", cfg.KafkaTopicCreated)
	cfg.KafkaTopicUpdated = envOrDefault("KAFKA_TOPIC_DID_UPDATED", cfg.KafkaTopicUpdated)
	cfg.KafkaTopicDeleted = envOrDefault("KAFKA_TOPIC_DID_DELETED", cfg.KafkaTopicDeleted)
	cfg.DIDMethods = envCSV("DID_METHODS", cfg.DIDMethods)
	cfg.DIDNetworks = envCSV("DID_NETWORKS", cfg.DIDNetworks)
	cfg.DispatchQueue = envInt("DISPATCH_QUEUE", cfg.DispatchQueue)
	cfg.MaxBodyBytes = int64(envInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.ShutdownTimeout = time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", int(cfg.ShutdownTimeout.Seconds()))) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, f configFile) {
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Backends.Ledger != "" {
		cfg.LedgerBackend = strings.ToLower(f.Backends.Ledger)
	}
	if f.Backends.Lock != "" {
		cfg.LockBackend = strings.ToLower(f.Backends.Lock)
	}
	if f.Backends.Events != "" {
		cfg.EventsBackend = strings.ToLower(f.Backends.Events)
	}
	if f.Dependencies.PostgresURL != "" {
		cfg.DatabaseURL = f.Dependencies.PostgresURL
	}
	if f.Dependencies.MaxDBConns > 0 {
		cfg.MaxDBConns = f.Dependencies.MaxDBConns
	}
	if f.Dependencies.RedisURL != "" {
		cfg.RedisURL = f.Dependencies.RedisURL
	}
	if f.Dependencies.LockTTLSeconds > 0 {
		cfg.LockTTL = time.Duration(f.Dependencies.LockTTLSeconds) * time.Second
	}
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
	}
	if f.Dependencies.KafkaTopicCreated != "" {
		cfg.KafkaTopicCreated = f.Dependencies.KafkaTopicCreated
	}
	if f.Dependencies.KafkaTopicUpdated != "" {
		cfg.KafkaTopicUpdated = f.Dependencies.KafkaTopicUpdated
	}
	if f.Dependencies.KafkaTopicDeleted != "" {
		cfg.KafkaTopicDeleted = f.Dependencies.KafkaTopicDeleted
	}
	if len(f.Identifiers.Methods) > 0 {
		cfg.DIDMethods = trimNonEmpty(f.Identifiers.Methods)
	}
	if len(f.Identifiers.Networks) > 0 {
		cfg.DIDNetworks = trimNonEmpty(f.Identifiers.Networks)
	}
	if f.Limits.DispatchQueue > 0 {
		cfg.DispatchQueue = f.Limits.DispatchQueue
	}
	if f.Limits.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = f.Limits.MaxBodyBytes
	}
	if f.Limits.ShutdownTimeoutSeconds > 0 {
		cfg.ShutdownTimeout = time.Duration(f.Limits.ShutdownTimeoutSeconds) * time.Second
	}
}

// Validate checks that every selected backend has what it needs
func (c Config) Validate() error {
	switch c.LedgerBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing DB_URL/POSTGRES_URL for ledger backend %q", c.LedgerBackend)
		}
	default:
		return fmt.Errorf("unknown ledger backend %q", c.LedgerBackend)
	}

	switch c.LockBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("missing REDIS_URL for lock backend %q", c.LockBackend)
		}
	default:
		return fmt.Errorf("unknown lock backend %q", c.LockBackend)
	}

	switch c.EventsBackend {
	case BackendLog:
	case BackendKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("missing KAFKA_BROKERS for events backend %q", c.EventsBackend)
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.EventsBackend)
	}

	if len(c.DIDMethods) == 0 || len(c.DIDNetworks) == 0 {
		return fmt.Errorf("at least one DID method and network must be accepted")
	}
	return nil
}

// Policy is the identifier policy described by the config
func (c Config) Policy() did.Policy {
	return did.Policy{
		Methods:  append([]string(nil), c.DIDMethods...),
		Networks: append([]string(nil), c.DIDNetworks...),
	}
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	items := strings.Split(raw, ",")
	return trimNonEmpty(items)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
