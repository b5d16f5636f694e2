package migrations

import (
	"anket.link/configs/configslog"
	"anket.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateResponsesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating responses & taken_records tables...")
	err := db.AutoMigrate(&models.Response{}, &models.TakenRecord{})
	if err != nil {
		configslog.Log.Error("Failed to migrate responses & taken_records tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Responses & taken_records tables migrated successfully")
	return nil
}
