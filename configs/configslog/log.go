package configslog

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış alanlarla (zap.Field) loglama için kullanılır.
// SLog printf tarzı loglama içindir. InitLogger çağrılana kadar ikisi de no-op'tur.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger APP_ENV ve LOG_LEVEL ortam değişkenlerine göre global logger'ı kurar.
func InitLogger() {
	var cfg zap.Config
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := zapcore.ParseLevel(lvl)
		if err != nil {
			log.Printf("Geçersiz LOG_LEVEL %q, varsayılan seviye kullanılıyor", lvl)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		log.Fatalf("zap logger oluşturulamadı: %v", err)
	}
	Log = logger
	SLog = logger.Sugar()
	zap.ReplaceGlobals(logger)
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır. main içinde defer ile çağrılır.
func SyncLogger() {
	_ = Log.Sync()
}
