package migrations

import (
	"anket.link/configs/configslog"
	"anket.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateSurveysTables surveys, questions ve choices tablolarını bu sırayla oluşturur.
func MigrateSurveysTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating surveys, questions & choices tables...")
	err := db.AutoMigrate(&models.Survey{}, &models.Question{}, &models.Choice{})
	if err != nil {
		configslog.Log.Error("Failed to migrate surveys, questions & choices tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Surveys, questions & choices tables migrated successfully")
	return nil
}
