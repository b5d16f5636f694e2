package configsdatabase

import (
	"fmt"
	"time"

	"anket.link/configs"
	"anket.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// Open verilen türde bir GORM bağlantısı açar. Hatalar gorm.ErrDuplicatedKey gibi
// sürücüden bağımsız hatalara çevrilir (TranslateError).
func Open(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbType {
	case configs.DBTypePostgres:
		dialector = postgres.Open(dsn)
	case configs.DBTypeSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("desteklenmeyen veritabanı türü: %s", dbType)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, err
	}

	if dbType == configs.DBTypeSQLite {
		// SQLite tek yazıcı ile çalışır; bellek içi veritabanı da tek bağlantıda yaşar.
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return conn, nil
}

// InitDB global bağlantıyı kurar. Başarısız olursa uygulama sonlanır.
func InitDB(cfg configs.AppConfig) {
	conn, err := Open(cfg.DBType, cfg.DSN())
	if err != nil {
		configslog.Log.Fatal("Veritabanına bağlanılamadı", zap.String("db_type", cfg.DBType), zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB alınamadı", zap.Error(err))
	}
	if cfg.DBType == configs.DBTypePostgres {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := sqlDB.Ping(); err != nil {
		configslog.Log.Fatal("Veritabanı ping başarısız", zap.Error(err))
	}

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu (%s)", cfg.DBType)
}

// GetDB InitDB ile kurulan bağlantıyı döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("Veritabanı başlatılmadı, önce InitDB çağrılmalı")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı")
}

// newGormLogger GORM loglarını zap'e yönlendirir.
func newGormLogger() gormLogger.Interface {
	return gormLogger.New(zap.NewStdLog(configslog.Log), gormLogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
