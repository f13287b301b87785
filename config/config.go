package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath = "."

	defaultSQLitePath      = "pawsync.db"
	defaultProbeTimeout    = 2 * time.Second
	defaultPollInterval    = 15 * time.Second
	defaultSyncWorkers     = 4
	defaultSyncInterval    = 5 * time.Minute
	defaultTaskRetention   = 256
	defaultHTTPPort        = 8787
	defaultMaxRequestBody  = "1M"
	defaultTokenTTLMinutes = 60
)

// Local store drivers.
const (
	LocalDriverSQLite   = "sqlite"
	LocalDriverPostgres = "postgres"
)

// Remote store providers.
const (
	RemoteProviderFirestore = "firestore"
	RemoteProviderMemory    = "memory"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Local configures the local cache database
	Local *LocalConfig `json:"local" yaml:"local"`

	// Postgres is used when the local driver is postgres
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Remote selects the remote document store
	Remote *RemoteConfig `json:"remote" yaml:"remote"`

	// Firebase configuration for the Firestore remote store
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Network configures reachability probing
	Network *NetworkConfig `json:"network" yaml:"network"`

	// Sync configures background synchronization
	Sync *SyncConfig `json:"sync" yaml:"sync"`

	// PubSub configuration for sync event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	SecretKey struct {
		Access          string `json:"access" yaml:"access"`
		TokenTTLMinutes int    `json:"tokenTtlMinutes" yaml:"tokenTtlMinutes"`
	} `json:"secretKey" yaml:"secretKey"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LocalConfig defines the local cache database
type LocalConfig struct {
	// Driver is "sqlite" (embedded, default) or "postgres"
	Driver string `json:"driver" yaml:"driver"`

	// SQLitePath is the database file, ":memory:" keeps everything in memory
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath"`
}

// RemoteConfig defines the remote document store
type RemoteConfig struct {
	// Provider is "firestore" or "memory"
	Provider string `json:"provider" yaml:"provider"`
}

// FirebaseConfig defines Firebase configuration for Firestore access
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// NetworkConfig defines how connectivity to the remote store is probed
type NetworkConfig struct {
	// ProbeAddress is a host:port dialed to test reachability; empty means always online
	ProbeAddress string `json:"probeAddress" yaml:"probeAddress"`

	// ProbeTimeout bounds a single probe
	ProbeTimeout time.Duration `json:"probeTimeout" yaml:"probeTimeout"`

	// PollInterval is the delay between probes while watching connectivity
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
}

// SyncConfig defines background synchronization behaviour
type SyncConfig struct {
	// Workers bounds concurrent per-record retries in a sync pass
	Workers int `json:"workers" yaml:"workers"`

	// Interval between periodic sync passes; zero disables the periodic pass
	Interval time.Duration `json:"interval" yaml:"interval"`

	// TaskRetention is how many finished tasks stay available for lookup
	TaskRetention int `json:"taskRetention" yaml:"taskRetention"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Kinds limits publishing to these entity kinds. Empty publishes every kind.
	Kinds []string `json:"kinds" yaml:"kinds"`

	// PublishTimeout bounds a single publish so a slow broker cannot stall a sync pass
	PublishTimeout time.Duration `json:"publishTimeout" yaml:"publishTimeout"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section so consumers never see nil pointers.
func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBody
	}
	if cfg.SecretKey.TokenTTLMinutes <= 0 {
		cfg.SecretKey.TokenTTLMinutes = defaultTokenTTLMinutes
	}

	if cfg.Local == nil {
		cfg.Local = &LocalConfig{}
	}
	if strings.TrimSpace(cfg.Local.Driver) == "" {
		cfg.Local.Driver = LocalDriverSQLite
	}
	if strings.TrimSpace(cfg.Local.SQLitePath) == "" {
		cfg.Local.SQLitePath = defaultSQLitePath
	}

	if cfg.Remote == nil {
		cfg.Remote = &RemoteConfig{}
	}
	if strings.TrimSpace(cfg.Remote.Provider) == "" {
		cfg.Remote.Provider = RemoteProviderFirestore
	}

	if cfg.Network == nil {
		cfg.Network = &NetworkConfig{}
	}
	if cfg.Network.ProbeTimeout <= 0 {
		cfg.Network.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.Network.PollInterval <= 0 {
		cfg.Network.PollInterval = defaultPollInterval
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{Interval: defaultSyncInterval}
	}
	if cfg.Sync.Workers <= 0 {
		cfg.Sync.Workers = defaultSyncWorkers
	}
	if cfg.Sync.Interval < 0 {
		cfg.Sync.Interval = 0
	}
	if cfg.Sync.TaskRetention <= 0 {
		cfg.Sync.TaskRetention = defaultTaskRetention
	}

	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{Enabled: true}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
