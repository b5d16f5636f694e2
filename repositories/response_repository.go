package repositories

import (
	"context"
	"errors"

	"anket.link/configs/configslog"
	"anket.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IResponseRepository cevap veritabanı işlemleri için arayüz.
type IResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	CountByChoiceForSurvey(ctx context.Context, surveyID uint) (map[uint]int64, error)
	CountBySurvey(ctx context.Context, surveyID uint) (int64, error)
}

// ResponseRepository IResponseRepository arayüzünü uygular.
type ResponseRepository struct {
	db *gorm.DB
}

// NewResponseRepository yeni bir ResponseRepository örneği oluşturur.
func NewResponseRepository(db *gorm.DB) IResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create tek bir cevap satırı ekler.
func (r *ResponseRepository) Create(ctx context.Context, response *models.Response) error {
	if response == nil || response.ChoiceID == 0 {
		return errors.New("seçeneksiz cevap kaydedilemez")
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(response).Error; err != nil {
		configslog.Log.Error("ResponseRepository.Create: DB error", zap.Uint("choice_id", response.ChoiceID), zap.Error(err))
		return err
	}
	return nil
}

// surveyResponses anketin seçeneklerine verilmiş cevaplarla sınırlı sorguyu kurar.
func (r *ResponseRepository) surveyResponses(ctx context.Context, surveyID uint) *gorm.DB {
	return r.getDB(ctx).Model(&models.Response{}).
		Joins("JOIN choices ON choices.id = responses.choice_id").
		Joins("JOIN questions ON questions.id = choices.question_id").
		Where("questions.survey_id = ?", surveyID)
}

// CountByChoiceForSurvey anketteki her seçeneğin cevap sayısını döndürür.
// Hiç cevap almamış seçenekler haritada yer almaz.
func (r *ResponseRepository) CountByChoiceForSurvey(ctx context.Context, surveyID uint) (map[uint]int64, error) {
	var rows []struct {
		ChoiceID uint
		Total    int64
	}
	err := r.surveyResponses(ctx, surveyID).
		Select("responses.choice_id AS choice_id, COUNT(*) AS total").
		Group("responses.choice_id").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("ResponseRepository.CountByChoiceForSurvey: DB error", zap.Uint("survey_id", surveyID), zap.Error(err))
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ChoiceID] = row.Total
	}
	return counts, nil
}

// CountBySurvey anketin toplam cevap satırı sayısını döndürür.
func (r *ResponseRepository) CountBySurvey(ctx context.Context, surveyID uint) (int64, error) {
	var count int64
	if err := r.surveyResponses(ctx, surveyID).Count(&count).Error; err != nil {
		configslog.Log.Error("ResponseRepository.CountBySurvey: DB error", zap.Uint("survey_id", surveyID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

var _ IResponseRepository = (*ResponseRepository)(nil)
