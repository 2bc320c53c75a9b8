// Loader konfigurasi dari environment variables
// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	CORSAllowOrigin string
	UpstreamTimeout time.Duration

	Weather struct {
		APIKey  string
		BaseURL string
		Days    int
		Lang    string
		RPS     float64
		Burst   int
	}

	LLM struct {
		APIKey  string
		BaseURL string
		Model   string
		RPS     float64
		Burst   int
	}

	History struct {
		DSN        string // mysql; takes precedence over SQLitePath
		SQLitePath string
	}

	Session struct {
		JWTSecret string
		TTL       time.Duration
		PassHash  string // bcrypt; empty means sessions are issued without a password
	}
}

// ClientConfig is what the terminal client needs: where the proxy lives and
// where local history is kept.
type ClientConfig struct {
	APIBase       string
	HistoryDir    string
	HistoryDriver string // file | sqlite
	Timeout       time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	loadDotEnv()

	c := &Config{}
	c.AppName = getEnv("APP_NAME", "weather-outfit")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.CORSAllowOrigin = getEnv("CORS_ALLOW_ORIGIN", "*")
	c.UpstreamTimeout = time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SEC", 15)) * time.Second

	c.Weather.APIKey = getEnv("WEATHER_API_KEY", "")
	c.Weather.BaseURL = getEnv("WEATHER_BASE_URL", "https://api.weatherapi.com/v1")
	c.Weather.Days = getEnvInt("WEATHER_DAYS", 3)
	c.Weather.Lang = getEnv("WEATHER_LANG", "ko")
	c.Weather.RPS = getEnvFloat("WEATHER_RPS", 2)
	c.Weather.Burst = getEnvInt("WEATHER_BURST", 5)

	// Gemini lewat endpoint OpenAI-compatible
	c.LLM.APIKey = getEnv("GOOGLE_API_KEY", "")
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai")
	c.LLM.Model = getEnv("LLM_MODEL", "gemini-2.0-flash-lite")
	c.LLM.RPS = getEnvFloat("LLM_RPS", 2)
	c.LLM.Burst = getEnvInt("LLM_BURST", 5)

	c.History.DSN = getEnv("DB_DSN", "")
	c.History.SQLitePath = getEnv("HISTORY_SQLITE_PATH", "")

	c.Session.JWTSecret = getEnv("SESSION_JWT_SECRET", "")
	c.Session.TTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*30)) * time.Hour
	c.Session.PassHash = getEnv("SESSION_PASS_HASH", "")

	if c.Weather.Days < 3 {
		log.Printf("[WARN] WEATHER_DAYS=%d is below 3, using 3", c.Weather.Days)
		c.Weather.Days = 3
	}
	if c.Weather.APIKey == "" {
		log.Println("[WARN] WEATHER_API_KEY is not set, /api/weather will fail upstream")
	}
	if c.LLM.APIKey == "" {
		log.Println("[WARN] GOOGLE_API_KEY is not set, translation and outfit calls will fail")
	}

	return c
}

// LoadClient reads the terminal client's settings.
func LoadClient() *ClientConfig {
	loadDotEnv()

	c := &ClientConfig{}
	c.APIBase = getEnv("WEATHER_API_BASE", "http://localhost:8080")
	c.HistoryDir = getEnv("HISTORY_DIR", defaultHistoryDir())
	c.HistoryDriver = getEnv("HISTORY_DRIVER", "file")
	c.Timeout = time.Duration(getEnvInt("CLIENT_TIMEOUT_SEC", 30)) * time.Second
	return c
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}
}

func defaultHistoryDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "weather-outfit"
	}
	return ".weather-outfit"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		_, err := fmt.Sscanf(v, "%d", &i)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
