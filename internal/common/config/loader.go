// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DB_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config with all scoring tunables at their canonical
// values, without touching files or the environment. Used by tests and by
// callers embedding the engine as a library.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 {
		if val := os.Getenv("ELASTICSEARCH_URL"); val != "" {
			cfg.Database.Elasticsearch.Addresses = []string{val}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "rfq-matcher"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "supplier_products"
	}

	// Price scoring
	if cfg.Matching.Price.Floor == 0 {
		cfg.Matching.Price.Floor = 40
	}
	if cfg.Matching.Price.SingleCandidateScore == 0 {
		cfg.Matching.Price.SingleCandidateScore = 75
	}
	if cfg.Matching.Price.SensitiveWeight == 0 {
		cfg.Matching.Price.SensitiveWeight = 40
	}
	if cfg.Matching.Price.InsensitiveWeight == 0 {
		cfg.Matching.Price.InsensitiveWeight = 15
	}
	if cfg.Matching.Price.SensitiveSpread == 0 {
		cfg.Matching.Price.SensitiveSpread = 1.2
	}
	if cfg.Matching.Price.InsensitiveSpread == 0 {
		cfg.Matching.Price.InsensitiveSpread = 0.7
	}

	if cfg.Matching.Delivery.DefaultLeadTimeDays == 0 {
		cfg.Matching.Delivery.DefaultLeadTimeDays = 30
	}

	// Export-control sensitivity thresholds
	if cfg.Matching.Compliance.MemoryCapacityGB == 0 {
		cfg.Matching.Compliance.MemoryCapacityGB = 32
	}
	if cfg.Matching.Compliance.MemoryBandwidthGBs == 0 {
		cfg.Matching.Compliance.MemoryBandwidthGBs = 800
	}
	if cfg.Matching.Compliance.FP32TFLOPS == 0 {
		cfg.Matching.Compliance.FP32TFLOPS = 50
	}
	if cfg.Matching.Compliance.Int8TOPS == 0 {
		cfg.Matching.Compliance.Int8TOPS = 400
	}

	if cfg.Matching.Alternatives.TopK == 0 {
		cfg.Matching.Alternatives.TopK = 5
	}
	if cfg.Matching.Alternatives.MaxPerKind == 0 {
		cfg.Matching.Alternatives.MaxPerKind = 3
	}
	if cfg.Matching.Alternatives.PerformanceTolerance == 0 {
		cfg.Matching.Alternatives.PerformanceTolerance = 0.2
	}
	if cfg.Matching.Alternatives.MinSaving == 0 {
		cfg.Matching.Alternatives.MinSaving = 0.1
	}
	if cfg.Matching.Alternatives.MinRetention == 0 {
		cfg.Matching.Alternatives.MinRetention = 0.7
	}

	if cfg.Matching.Engine.MaxConcurrency == 0 {
		cfg.Matching.Engine.MaxConcurrency = 8
	}
	if cfg.Matching.Engine.CatalogTimeoutMS == 0 {
		cfg.Matching.Engine.CatalogTimeoutMS = 5000
	}

	if cfg.Semantic.TimeoutMS == 0 {
		cfg.Semantic.TimeoutMS = 2000
	}
	if cfg.Semantic.HeuristicWeight == 0 {
		cfg.Semantic.HeuristicWeight = 0.7
	}
	if cfg.Semantic.SemanticWeight == 0 {
		cfg.Semantic.SemanticWeight = 0.3
	}
	if cfg.Semantic.Limit == 0 {
		cfg.Semantic.Limit = 20
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Matching.Price.Floor < 0 || cfg.Matching.Price.Floor > 100 {
		return fmt.Errorf("matching.price.floor must be in [0,100], got %v", cfg.Matching.Price.Floor)
	}
	if cfg.Matching.Price.SingleCandidateScore < 0 || cfg.Matching.Price.SingleCandidateScore > 100 {
		return fmt.Errorf("matching.price.single_candidate_score must be in [0,100], got %v", cfg.Matching.Price.SingleCandidateScore)
	}
	blend := cfg.Semantic.HeuristicWeight + cfg.Semantic.SemanticWeight
	if blend < 0.999 || blend > 1.001 {
		return fmt.Errorf("semantic blend weights must sum to 1, got %v", blend)
	}
	if cfg.Matching.Engine.MaxConcurrency < 1 {
		return fmt.Errorf("matching.engine.max_concurrency must be positive")
	}
	return nil
}
