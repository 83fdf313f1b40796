package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "extractor"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8074
	defaultConcurrency     = 10
	defaultMaxBatchItems   = 100
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultTaxonomyPath    = "offense_list.json"
	defaultReviewThreshold = 0.5
	defaultOCRServiceURL   = "http://ocr:8090"
	defaultOCRTimeoutSec   = 30
	defaultRateLimitRPS    = 25
	defaultRateLimitBurst  = 50
)

// Config holds all configuration for the extractor service.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Logging    LoggingConfig    `yaml:"logging"`
	Extraction ExtractionConfig `yaml:"extraction"`
	OCR        OCRConfig        `yaml:"ocr"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	Port          int    `env:"EXTRACTOR_PORT"        yaml:"port"`
	Debug         bool   `env:"APP_DEBUG"             yaml:"debug"`
	Concurrency   int    `env:"EXTRACTOR_CONCURRENCY" yaml:"concurrency"`
	MaxBatchItems int    `yaml:"max_batch_items"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// ExtractionConfig holds extraction engine settings.
type ExtractionConfig struct {
	TaxonomyPath    string  `env:"EXTRACTOR_TAXONOMY_PATH" yaml:"taxonomy_path"`
	ReviewThreshold float64 `yaml:"review_threshold"`
}

// OCRConfig holds the external OCR collaborator settings.
type OCRConfig struct {
	ServiceURL string        `env:"OCR_SERVICE_URL" yaml:"service_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// AuthConfig holds authentication configuration. An empty JWT secret
// disables bearer auth on the API group.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// RateLimitConfig holds API rate limiting settings.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setExtractionDefaults(&cfg.Extraction)
	setOCRDefaults(&cfg.OCR)
	setRateLimitDefaults(&cfg.RateLimit)
	// Auth has no defaults: no secret means auth is off.
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.MaxBatchItems == 0 {
		s.MaxBatchItems = defaultMaxBatchItems
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setExtractionDefaults(e *ExtractionConfig) {
	if e.TaxonomyPath == "" {
		e.TaxonomyPath = defaultTaxonomyPath
	}
	if e.ReviewThreshold == 0 {
		e.ReviewThreshold = defaultReviewThreshold
	}
}

func setOCRDefaults(o *OCRConfig) {
	if o.ServiceURL == "" {
		o.ServiceURL = defaultOCRServiceURL
	}
	if o.Timeout == 0 {
		o.Timeout = defaultOCRTimeoutSec * time.Second
	}
}

func setRateLimitDefaults(r *RateLimitConfig) {
	if r.RPS == 0 {
		r.RPS = defaultRateLimitRPS
	}
	if r.Burst == 0 {
		r.Burst = defaultRateLimitBurst
	}
}
