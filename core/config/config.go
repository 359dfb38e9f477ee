package config

import (
	"path/filepath"
	"strings"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App        AppConfig
	Paths      PathsConfig
	Database   DatabaseConfig
	Valkey     ValkeyConfig
	AI         AIConfig
	WorkerPool WorkerPoolConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasicAuth          []string
	BasePath           string
	TrustedProxies     []string
	BaseUrl            string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	Storages string
	Uploads  string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB Name for Postgres
}

type ValkeyConfig struct {
	Enabled   bool
	Address   string
	Password  string
	DB        int
	KeyPrefix string
}

// AIConfig configures the external inference providers.
// Provider selects the generation backend ("huggingface" or "gemini");
// OCR always goes through Gemini since it needs a multimodal model.
type AIConfig struct {
	Provider         string
	HuggingFaceToken string
	HuggingFaceModel string
	GeminiAPIKey     string
	GeminiModel      string
	OCRModel         string
	TimeoutSeconds   int
	MaxImageBytes    int64
	MaxTextLength    int
}

type WorkerPoolConfig struct {
	Size      int
	QueueSize int
}

// Global provides access to the loaded configuration globally (Migration Helper)
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	initViper()

	appCfg := AppConfig{
		Version:            "v1.2.0",
		Port:               getEnv("APP_PORT", "3000"),
		Debug:              getEnvBool("APP_DEBUG", false),
		Environment:        getEnv("APP_ENV", "development"),
		BasePath:           getEnv("APP_BASE_PATH", ""),
		BaseUrl:            getEnv("APP_BASE_URL", "http://localhost:3000"),
		CorsAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		ServerID:           getEnv("SERVER_ID", ""),
	}
	if v := getEnv("APP_BASIC_AUTH", ""); v != "" {
		appCfg.BasicAuth = strings.Split(v, ",")
	}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		appCfg.CorsAllowedOrigins = strings.Split(v, ",")
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	pathsCfg := PathsConfig{
		Storages: getEnv("APP_BASE_DIR", "storages"),
	}
	pathsCfg.Uploads = getEnv("PATH_UPLOADS", filepath.Join(pathsCfg.Storages, "uploads"))

	dbCfg := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "sqlite"),
		Name:     getEnv("DB_NAME", filepath.Join(pathsCfg.Storages, "estudia.db")),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
	}

	valkeyCfg := ValkeyConfig{
		Enabled:   getEnvBool("VALKEY_ENABLED", false),
		Address:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		Password:  getEnv("VALKEY_PASSWORD", ""),
		DB:        getEnvInt("VALKEY_DB", 0),
		KeyPrefix: getEnv("VALKEY_KEY_PREFIX", "estudia:"),
	}

	aiCfg := AIConfig{
		Provider:         getEnv("AI_PROVIDER", "huggingface"),
		HuggingFaceToken: getEnv("HUGGING_FACE_TOKEN", ""),
		HuggingFaceModel: getEnv("HUGGING_FACE_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OCRModel:         getEnv("AI_OCR_MODEL", "gemini-2.0-flash"),
		TimeoutSeconds:   getEnvInt("AI_TIMEOUT_SECONDS", 30),
		MaxImageBytes:    getEnvInt64("AI_MAX_IMAGE_BYTES", 4*1024*1024),
		MaxTextLength:    getEnvInt("AI_MAX_TEXT_LENGTH", 5000),
	}

	cfg := &Config{
		App:        appCfg,
		Paths:      pathsCfg,
		Database:   dbCfg,
		Valkey:     valkeyCfg,
		AI:         aiCfg,
		WorkerPool: WorkerPoolConfig{Size: getEnvInt("NOTE_WORKER_POOL_SIZE", 10), QueueSize: getEnvInt("NOTE_WORKER_QUEUE_SIZE", 100)},
	}

	Global = cfg
	return cfg, nil
}
