package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/route-history-backend/internal/models"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string // empty disables bearer auth

	LogLevel string
	LogFile  string // empty disables file output

	NATSURL string // empty disables analysis events

	RateLimit  int
	RateWindow time.Duration

	// Analysis defaults, overridable per request
	StopSpeedThresholdKmh float64
	MinStopDurationSec    float64
	DeviationToleranceKm  float64
	CorridorMode          models.CorridorMode

	// Traces with more points than this run their analyzers concurrently
	ParallelThreshold int
}

// Load 加载配置
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getenvDefault("PORT", ":8080"),
		DBPath:    getenvDefault("DB_PATH", "./data/routes/routes.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogFile:   os.Getenv("LOG_FILE"),
		NATSURL:   os.Getenv("NATS_URL"),
	}

	var err error
	if cfg.RateLimit, err = getenvInt("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	windowSec, err := getenvInt("RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.RateWindow = time.Duration(windowSec) * time.Second

	if cfg.StopSpeedThresholdKmh, err = getenvFloat("STOP_SPEED_THRESHOLD_KMH", 3); err != nil {
		return nil, err
	}
	if cfg.MinStopDurationSec, err = getenvFloat("MIN_STOP_DURATION_SEC", 120); err != nil {
		return nil, err
	}
	if cfg.DeviationToleranceKm, err = getenvFloat("DEVIATION_TOLERANCE_KM", 0.5); err != nil {
		return nil, err
	}
	if cfg.ParallelThreshold, err = getenvInt("ANALYSIS_PARALLEL_THRESHOLD", 5000); err != nil {
		return nil, err
	}

	mode, ok := models.ParseCorridorMode(os.Getenv("CORRIDOR_MODE"))
	if !ok {
		return nil, fmt.Errorf("invalid CORRIDOR_MODE: %q", os.Getenv("CORRIDOR_MODE"))
	}
	cfg.CorridorMode = mode

	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT and RATE_WINDOW_SECONDS must be positive")
	}
	if cfg.StopSpeedThresholdKmh < 0 || cfg.MinStopDurationSec < 0 || cfg.DeviationToleranceKm <= 0 {
		return nil, fmt.Errorf("analysis thresholds must be non-negative and the deviation tolerance positive")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, nil
}
