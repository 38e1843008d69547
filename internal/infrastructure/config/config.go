package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Primary     PrimaryConfig   `mapstructure:"primary"`
	MealDB      MealDBConfig    `mapstructure:"mealdb"`
	Cocktail    CocktailConfig  `mapstructure:"cocktail"`
	Kids        KidsConfig      `mapstructure:"kids"`
	Favorites   FavoritesConfig `mapstructure:"favorites"`
	Random      RandomConfig    `mapstructure:"random"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// PrimaryConfig 主要食譜後端設定
type PrimaryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MealDBConfig TheMealDB 隨機食譜來源設定
type MealDBConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CocktailConfig TheCocktailDB 來源設定
type CocktailConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// KidsConfig 兒童食譜來源設定（API Ninjas）
type KidsConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Query    string        `mapstructure:"query"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// FavoritesConfig 收藏持久化設定
type FavoritesConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	Key           string `mapstructure:"key"`
}

// RandomConfig 隨機推薦批次設定
type RandomConfig struct {
	Count int `mapstructure:"count"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("primary.base_url", "PRIMARY_BASE_URL")
	viper.BindEnv("mealdb.base_url", "MEALDB_BASE_URL")
	viper.BindEnv("cocktail.base_url", "COCKTAIL_BASE_URL")
	viper.BindEnv("kids.base_url", "KIDS_BASE_URL")
	viper.BindEnv("kids.api_key", "KIDS_API_KEY")
	viper.BindEnv("favorites.redis_addr", "FAVORITES_REDIS_ADDR")
	viper.BindEnv("favorites.redis_password", "FAVORITES_REDIS_PASSWORD")
	viper.BindEnv("favorites.key", "FAVORITES_KEY")
	viper.BindEnv("random.count", "RANDOM_COUNT")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"primary_base_url:", viper.GetString("primary.base_url"),
		"kids_api_key:", maskAPIKey(viper.GetString("kids.api_key")))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-aggregator")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	// 主要食譜後端設定
	viper.SetDefault("primary.base_url", "http://localhost:8081")
	viper.SetDefault("primary.timeout", "15s")

	// TheMealDB 設定
	viper.SetDefault("mealdb.base_url", "https://www.themealdb.com/api/json/v1/1")
	viper.SetDefault("mealdb.timeout", "15s")

	// TheCocktailDB 設定
	viper.SetDefault("cocktail.base_url", "https://www.thecocktaildb.com/api/json/v1/1")
	viper.SetDefault("cocktail.timeout", "15s")

	// 兒童食譜來源設定
	viper.SetDefault("kids.base_url", "https://api.api-ninjas.com/v1")
	viper.SetDefault("kids.query", "kids")
	viper.SetDefault("kids.timeout", "15s")
	viper.SetDefault("kids.cache_ttl", "10m")

	// 收藏設定
	viper.SetDefault("favorites.redis_addr", "localhost:6379")
	viper.SetDefault("favorites.redis_db", 0)
	viper.SetDefault("favorites.key", "favorites:recipes")

	// 隨機推薦批次設定
	viper.SetDefault("random.count", 5)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 去重視窗預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證來源設定
	if config.Primary.BaseURL == "" {
		return fmt.Errorf("primary base url is required")
	}
	if config.MealDB.BaseURL == "" {
		return fmt.Errorf("mealdb base url is required")
	}
	if config.Cocktail.BaseURL == "" {
		return fmt.Errorf("cocktail base url is required")
	}
	if config.Kids.BaseURL == "" {
		return fmt.Errorf("kids base url is required")
	}

	// 驗證收藏設定
	if config.Favorites.RedisAddr == "" {
		return fmt.Errorf("favorites redis addr is required")
	}
	if config.Favorites.Key == "" {
		return fmt.Errorf("favorites key is required")
	}

	// 驗證隨機批次設定
	if config.Random.Count <= 0 {
		return fmt.Errorf("invalid random count")
	}

	return nil
}
