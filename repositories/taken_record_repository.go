package repositories

import (
	"context"
	"errors"

	"anket.link/configs/configslog"
	"anket.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ITakenRecordRepository "anketi çözdü" kayıtları için arayüz.
type ITakenRecordRepository interface {
	Create(ctx context.Context, record *models.TakenRecord) error
	Exists(ctx context.Context, userID, surveyID uint) (bool, error)
	CountBySurvey(ctx context.Context, surveyID uint) (int64, error)
}

// TakenRecordRepository ITakenRecordRepository arayüzünü uygular.
type TakenRecordRepository struct {
	db *gorm.DB
}

// NewTakenRecordRepository yeni bir TakenRecordRepository örneği oluşturur.
func NewTakenRecordRepository(db *gorm.DB) ITakenRecordRepository {
	return &TakenRecordRepository{db: db}
}

func (r *TakenRecordRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni bir kayıt ekler. Aynı kullanıcı/anket için ikinci kayıt veritabanınca engellenmez.
func (r *TakenRecordRepository) Create(ctx context.Context, record *models.TakenRecord) error {
	if record == nil || record.UserID == 0 || record.SurveyID == 0 {
		return errors.New("kullanıcı ve anket olmadan çözüm kaydı oluşturulamaz")
	}
	if err := r.getDB(ctx).Create(record).Error; err != nil {
		configslog.Log.Error("TakenRecordRepository.Create: DB error",
			zap.Uint("user_id", record.UserID), zap.Uint("survey_id", record.SurveyID), zap.Error(err))
		return err
	}
	return nil
}

// Exists kullanıcının anketi daha önce çözüp çözmediğini söyler.
func (r *TakenRecordRepository) Exists(ctx context.Context, userID, surveyID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.TakenRecord{}).
		Where("user_id = ? AND survey_id = ?", userID, surveyID).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("TakenRecordRepository.Exists: DB error",
			zap.Uint("user_id", userID), zap.Uint("survey_id", surveyID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// CountBySurvey anketi çözen kayıt sayısını döndürür.
func (r *TakenRecordRepository) CountBySurvey(ctx context.Context, surveyID uint) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&models.TakenRecord{}).Where("survey_id = ?", surveyID).Count(&count).Error; err != nil {
		configslog.Log.Error("TakenRecordRepository.CountBySurvey: DB error", zap.Uint("survey_id", surveyID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ ITakenRecordRepository = (*TakenRecordRepository)(nil)
