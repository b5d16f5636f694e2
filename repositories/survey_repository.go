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

// ISurveyRepository anket veritabanı işlemleri için arayüz.
type ISurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	FindByID(ctx context.Context, id uint) (*models.Survey, error)
	FindByTitle(ctx context.Context, title string) (*models.Survey, error)
	FindAll(ctx context.Context) ([]models.Survey, error)
	FindAllByOwnerID(ctx context.Context, userID uint) ([]models.Survey, error)
	CountQuestions(ctx context.Context, surveyID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// SurveyRepository ISurveyRepository arayüzünü uygular.
type SurveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository yeni bir SurveyRepository örneği oluşturur.
func NewSurveyRepository(db *gorm.DB) ISurveyRepository {
	return &SurveyRepository{db: db}
}

func (r *SurveyRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create sadece anket satırını ekler; sorular ayrıca kaydedilir.
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	if survey == nil || survey.UserID == 0 {
		return errors.New("sahibi olmayan anket oluşturulamaz")
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(survey).Error; err != nil {
		if !IsDuplicateKey(err) {
			configslog.Log.Error("SurveyRepository.Create: DB error", zap.String("title", survey.Title), zap.Error(err))
		}
		return err
	}
	return nil
}

// FindByID anketi sahibiyle birlikte bulur.
func (r *SurveyRepository) FindByID(ctx context.Context, id uint) (*models.Survey, error) {
	var survey models.Survey
	if err := r.getDB(ctx).Preload("User").First(&survey, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SurveyRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &survey, nil
}

// FindByTitle başlığa göre anketi bulur (tam eşleşme).
func (r *SurveyRepository) FindByTitle(ctx context.Context, title string) (*models.Survey, error) {
	var survey models.Survey
	if err := r.getDB(ctx).Preload("User").Where("title = ?", title).First(&survey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SurveyRepository.FindByTitle: DB error", zap.String("title", title), zap.Error(err))
		return nil, err
	}
	return &survey, nil
}

// FindAll tüm anketleri en yeniden eskiye döndürür.
func (r *SurveyRepository) FindAll(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	db := r.getDB(ctx)
	if err := db.Preload("User").Order("created_at DESC, id DESC").Find(&surveys).Error; err != nil {
		configslog.Log.Error("SurveyRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	if err := r.attachQuestionCounts(db, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// FindAllByOwnerID kullanıcının anketlerini en yeniden eskiye döndürür.
func (r *SurveyRepository) FindAllByOwnerID(ctx context.Context, userID uint) ([]models.Survey, error) {
	var surveys []models.Survey
	db := r.getDB(ctx)
	err := db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&surveys).Error
	if err != nil {
		configslog.Log.Error("SurveyRepository.FindAllByOwnerID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	if err := r.attachQuestionCounts(db, surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

// attachQuestionCounts anketlerin soru sayılarını tek sorguda doldurur.
func (r *SurveyRepository) attachQuestionCounts(db *gorm.DB, surveys []models.Survey) error {
	if len(surveys) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(surveys))
	for _, s := range surveys {
		ids = append(ids, s.ID)
	}

	var rows []struct {
		SurveyID uint
		Total    int64
	}
	err := db.Model(&models.Question{}).
		Select("survey_id, COUNT(*) AS total").
		Where("survey_id IN ?", ids).
		Group("survey_id").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("SurveyRepository.attachQuestionCounts: DB error", zap.Error(err))
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SurveyID] = row.Total
	}
	for i := range surveys {
		surveys[i].QuestionCount = counts[surveys[i].ID]
	}
	return nil
}

// CountQuestions anketin soru sayısını döndürür.
func (r *SurveyRepository) CountQuestions(ctx context.Context, surveyID uint) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&models.Question{}).Where("survey_id = ?", surveyID).Count(&count).Error; err != nil {
		configslog.Log.Error("SurveyRepository.CountQuestions: DB error", zap.Uint("survey_id", surveyID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Delete anketi ve ona bağlı cevap, çözüm kaydı, seçenek ve soruları tek transaction'da siler.
// Sıra yabancı anahtarlara göredir: responses -> choices -> questions -> taken_records -> surveys.
func (r *SurveyRepository) Delete(ctx context.Context, id uint) error {
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", id)
		choiceIDs := tx.Model(&models.Choice{}).Select("id").Where("question_id IN (?)", questionIDs)

		if err := tx.Where("choice_id IN (?)", choiceIDs).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.TakenRecord{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Survey{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		configslog.Log.Error("SurveyRepository.Delete: DB error", zap.Uint("id", id), zap.Error(err))
	}
	return err
}

var _ ISurveyRepository = (*SurveyRepository)(nil)
