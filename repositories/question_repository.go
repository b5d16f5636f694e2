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

// IQuestionRepository soru ve seçenek veritabanı işlemleri için arayüz.
type IQuestionRepository interface {
	CreateQuestion(ctx context.Context, question *models.Question) error
	CreateChoice(ctx context.Context, choice *models.Choice) error
	FindQuestionsBySurveyID(ctx context.Context, surveyID uint) ([]models.Question, error)
}

// QuestionRepository IQuestionRepository arayüzünü uygular.
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository yeni bir QuestionRepository örneği oluşturur.
func NewQuestionRepository(db *gorm.DB) IQuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// CreateQuestion soruyu ekler; ID veritabanının ürettiği değerle doldurulur.
func (r *QuestionRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	if question == nil || question.SurveyID == 0 {
		return errors.New("ankete bağlı olmayan soru oluşturulamaz")
	}
	if err := r.getDB(ctx).Omit(clause.Associations).Create(question).Error; err != nil {
		configslog.Log.Error("QuestionRepository.CreateQuestion: DB error", zap.Uint("survey_id", question.SurveyID), zap.Error(err))
		return err
	}
	return nil
}

// CreateChoice seçeneği ekler.
func (r *QuestionRepository) CreateChoice(ctx context.Context, choice *models.Choice) error {
	if choice == nil || choice.QuestionID == 0 {
		return errors.New("soruya bağlı olmayan seçenek oluşturulamaz")
	}
	if err := r.getDB(ctx).Create(choice).Error; err != nil {
		configslog.Log.Error("QuestionRepository.CreateChoice: DB error", zap.Uint("question_id", choice.QuestionID), zap.Error(err))
		return err
	}
	return nil
}

// FindQuestionsBySurveyID anketin sorularını ve seçeneklerini ID sırasıyla döndürür.
func (r *QuestionRepository) FindQuestionsBySurveyID(ctx context.Context, surveyID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.getDB(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB { return db.Order("choices.id ASC") }).
		Where("survey_id = ?", surveyID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		configslog.Log.Error("QuestionRepository.FindQuestionsBySurveyID: DB error", zap.Uint("survey_id", surveyID), zap.Error(err))
		return nil, err
	}
	return questions, nil
}

var _ IQuestionRepository = (*QuestionRepository)(nil)
