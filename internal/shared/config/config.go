package config

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"heightmap-generator/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Generation GenerationConfig
	Random     RandomConfig
	Output     OutputConfig
	Server     ServerConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
}

// GenerationConfig holds the parameters shared by every map of a batch.
type GenerationConfig struct {
	Count          int
	GridSize       int
	SmoothingSigma float64
	SpectralIndex  float64
	// BoxLength of 0 means "same as GridSize".
	BoxLength float64
	Smooth    bool
}

// RandomConfig controls reproducibility. SeedMode is "stream" for one shared
// sequence across the batch or "instance" for one independent source per map.
type RandomConfig struct {
	Seed     uint64
	SeedMode string
}

type OutputConfig struct {
	Dir      string
	Colormap string
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return err
	}

	GlobalConfig = config
	return nil
}

// Load reads and validates the configuration from the environment without
// touching GlobalConfig.
func Load() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func load() (*Config, error) {
	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}

	random, err := loadRandomConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	rateLimit, err := loadRateLimitConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Generation: generation,
		Random:     random,
		Output:     loadOutputConfig(),
		Server:     server,
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  rateLimit,
	}

	return config, nil
}

func loadGenerationConfig() (GenerationConfig, error) {
	count, err := utils.GetEnvInt("HMAP_COUNT", 10)
	if err != nil {
		return GenerationConfig{}, err
	}
	gridSize, err := utils.GetEnvInt("HMAP_GRID_SIZE", 1000)
	if err != nil {
		return GenerationConfig{}, err
	}
	sigma, err := utils.GetEnvFloat("HMAP_SIGMA", 5.0)
	if err != nil {
		return GenerationConfig{}, err
	}
	index, err := utils.GetEnvFloat("HMAP_SPECTRAL_INDEX", -3.0)
	if err != nil {
		return GenerationConfig{}, err
	}
	boxLength, err := utils.GetEnvFloat("HMAP_BOX_LENGTH", 0)
	if err != nil {
		return GenerationConfig{}, err
	}

	return GenerationConfig{
		Count:          count,
		GridSize:       gridSize,
		SmoothingSigma: sigma,
		SpectralIndex:  index,
		BoxLength:      boxLength,
		Smooth:         utils.GetEnvBool("HMAP_SMOOTH", false),
	}, nil
}

func loadRandomConfig() (RandomConfig, error) {
	seed, err := utils.GetEnvUint64("HMAP_SEED", 1234)
	if err != nil {
		return RandomConfig{}, err
	}

	return RandomConfig{
		Seed:     seed,
		SeedMode: utils.GetEnv("HMAP_SEED_MODE", "stream"),
	}, nil
}

func loadOutputConfig() OutputConfig {
	return OutputConfig{
		Dir:      utils.GetEnv("HMAP_OUTPUT_DIR", "hmaps"),
		Colormap: utils.GetEnv("HMAP_COLORMAP", "greys"),
	}
}

func loadServerConfig() (ServerConfig, error) {
	readTimeout, err := utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)
	if err != nil {
		return ServerConfig{}, err
	}
	writeTimeout, err := utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	if err != nil {
		return ServerConfig{}, err
	}
	idleTimeout, err := utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}, nil
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnvBool("CORS_DEBUG", false),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	format := utils.GetEnv("LOG_FORMAT", "text")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "info"),
		Format:     format,
		JSONFormat: environment == "production" || format == "json",
	}
}

func loadRateLimitConfig() (RateLimitConfig, error) {
	requestsPerSecond, err := utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10)
	if err != nil {
		return RateLimitConfig{}, err
	}
	burstSize, err := utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20)
	if err != nil {
		return RateLimitConfig{}, err
	}

	return RateLimitConfig{
		Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}, nil
}

func (c *Config) validate() error {
	g := c.Generation
	if g.Count < 1 {
		return fmt.Errorf("HMAP_COUNT must be at least 1, got %d", g.Count)
	}

	if g.GridSize < 1 {
		return fmt.Errorf("HMAP_GRID_SIZE must be at least 1, got %d", g.GridSize)
	}

	if g.SmoothingSigma < 0 || math.IsNaN(g.SmoothingSigma) || math.IsInf(g.SmoothingSigma, 0) {
		return fmt.Errorf("HMAP_SIGMA must be a finite non-negative number, got %v", g.SmoothingSigma)
	}

	if math.IsNaN(g.SpectralIndex) || math.IsInf(g.SpectralIndex, 0) {
		return fmt.Errorf("HMAP_SPECTRAL_INDEX must be finite, got %v", g.SpectralIndex)
	}

	if g.BoxLength < 0 {
		return fmt.Errorf("HMAP_BOX_LENGTH must not be negative, got %v", g.BoxLength)
	}

	switch c.Random.SeedMode {
	case "stream", "instance":
	default:
		return fmt.Errorf("HMAP_SEED_MODE must be \"stream\" or \"instance\", got %q", c.Random.SeedMode)
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("HMAP_OUTPUT_DIR is required")
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", c.Server.Port)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstSize < 1) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS_PER_SECOND and RATE_LIMIT_BURST_SIZE")
	}

	return nil
}

// Addr is the listen address for the gallery server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
