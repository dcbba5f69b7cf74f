// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Matching MatchingConfig `mapstructure:"matching"`
	Semantic SemanticConfig `mapstructure:"semantic"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MatchingConfig collects the scoring tunables. Threshold constants are
// configuration, not invariants; defaults mirror the canonical scoring draft.
type MatchingConfig struct {
	Price        PriceConfig        `mapstructure:"price"`
	Delivery     DeliveryConfig     `mapstructure:"delivery"`
	Compliance   ComplianceConfig   `mapstructure:"compliance"`
	Alternatives AlternativesConfig `mapstructure:"alternatives"`
	Engine       EngineConfig       `mapstructure:"engine"`
}

type PriceConfig struct {
	Floor                float64 `mapstructure:"floor"`                  // lowest possible price score
	SingleCandidateScore float64 `mapstructure:"single_candidate_score"` // neutral score when no siblings
	SensitiveWeight      int     `mapstructure:"sensitive_weight"`       // price weight >= this stretches the spread
	InsensitiveWeight    int     `mapstructure:"insensitive_weight"`     // price weight <= this compresses it
	SensitiveSpread      float64 `mapstructure:"sensitive_spread"`
	InsensitiveSpread    float64 `mapstructure:"insensitive_spread"`
}

type DeliveryConfig struct {
	DefaultLeadTimeDays float64 `mapstructure:"default_lead_time_days"`
}

type ComplianceConfig struct {
	MemoryCapacityGB   float64 `mapstructure:"memory_capacity_gb"`
	MemoryBandwidthGBs float64 `mapstructure:"memory_bandwidth_gbs"`
	FP32TFLOPS         float64 `mapstructure:"fp32_tflops"`
	Int8TOPS           float64 `mapstructure:"int8_tops"`
}

type AlternativesConfig struct {
	TopK                 int     `mapstructure:"top_k"`
	MaxPerKind           int     `mapstructure:"max_per_kind"`
	PerformanceTolerance float64 `mapstructure:"performance_tolerance"` // similar-performance window
	MinSaving            float64 `mapstructure:"min_saving"`            // lower-cost price cut
	MinRetention         float64 `mapstructure:"min_retention"`         // lower-cost performance floor
}

type EngineConfig struct {
	MaxConcurrency   int `mapstructure:"max_concurrency"`
	CatalogTimeoutMS int `mapstructure:"catalog_timeout"` // milliseconds
	CacheTTLSeconds  int `mapstructure:"cache_ttl"`       // 0 disables result memoization
}

type SemanticConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	TimeoutMS       int     `mapstructure:"timeout"` // milliseconds
	HeuristicWeight float64 `mapstructure:"heuristic_weight"`
	SemanticWeight  float64 `mapstructure:"semantic_weight"`
	Limit           int     `mapstructure:"limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}
