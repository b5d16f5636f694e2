package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"anket.link/configs/configslog"

	"github.com/joho/godotenv"
)

// Desteklenen veritabanı türleri.
const (
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// AppConfig uygulamanın ortamdan okunan ayarlarıdır.
type AppConfig struct {
	Env      string
	Port     string
	ViewsDir string

	DBType     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	SessionExpiration time.Duration
	SigninRateLimit   int
	AutoMigrate       bool
	DemoUserPassword  string
}

// LoadEnv .env dosyası varsa yükler. Yoksa sistem ortam değişkenleri kullanılır.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, sistem ortam değişkenleri kullanılıyor")
		return
	}
	configslog.SLog.Info(".env dosyası yüklendi")
}

// GetEnv ortam değişkenini döndürür; tanımlı değilse varsa varsayılan değeri.
func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	raw := GetEnv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		configslog.SLog.Warnf("Geçersiz %s değeri (%q), varsayılan kullanılıyor: %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(GetEnv(key, "false"))
	return err == nil && v
}

// Load ortam değişkenlerinden AppConfig üretir ve doğrular.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Env:      GetEnv("APP_ENV", "development"),
		Port:     GetEnv("APP_PORT", "3000"),
		ViewsDir: GetEnv("VIEWS_DIR", "./views"),

		DBType:     strings.ToLower(GetEnv("DB_TYPE", DBTypePostgres)),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBName:     GetEnv("DB_NAME", "surveys"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "disable"),
		DBPath:     GetEnv("DB_PATH", "surveys.db"),

		SessionExpiration: time.Duration(getEnvInt("SESSION_EXPIRATION_HOURS", 24)) * time.Hour,
		SigninRateLimit:   getEnvInt("SIGNIN_RATE_LIMIT", 10),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE"),
		DemoUserPassword:  GetEnv("DEMO_USER_PASSWORD", "demopass"),
	}

	if cfg.DBType != DBTypePostgres && cfg.DBType != DBTypeSQLite {
		return AppConfig{}, fmt.Errorf("desteklenmeyen DB_TYPE: %q (postgres veya sqlite olmalı)", cfg.DBType)
	}
	return cfg, nil
}

// IsProduction üretim ortamında çalışılıp çalışılmadığını söyler.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN seçilen veritabanı türü için bağlantı dizesini üretir.
func (c AppConfig) DSN() string {
	if c.DBType == DBTypeSQLite {
		return c.DBPath
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
