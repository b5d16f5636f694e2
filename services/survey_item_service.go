package services

import (
	"context"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/pkg/surveyitems"
	"anket.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISurveyItemService anket sorularının kaydedilmesi ve geri okunması için arayüz.
type ISurveyItemService interface {
	Persist(ctx context.Context, surveyID uint, items []surveyitems.Item) error
	Reconstruct(ctx context.Context, surveyID uint) ([]models.Question, error)
}

// SurveyItemService ISurveyItemService arayüzünü uygular.
type SurveyItemService struct {
	repo repositories.IQuestionRepository
}

// NewSurveyItemService yeni bir SurveyItemService örneği oluşturur.
func NewSurveyItemService(db *gorm.DB) ISurveyItemService {
	return &SurveyItemService{repo: repositories.NewQuestionRepository(db)}
}

// Persist normalize edilmiş soruları sırayla kaydeder. Her sorunun ID'si ekleme sırasında
// veritabanından alınır ve seçenekleri o ID'ye bağlanır. ctx'te transaction varsa onun içinde çalışır.
func (s *SurveyItemService) Persist(ctx context.Context, surveyID uint, items []surveyitems.Item) error {
	for _, item := range items {
		question := &models.Question{SurveyID: surveyID, Text: item.Question}
		if err := s.repo.CreateQuestion(ctx, question); err != nil {
			return storageErr(err)
		}
		for _, text := range item.Choices {
			if err := s.repo.CreateChoice(ctx, &models.Choice{QuestionID: question.ID, Text: text}); err != nil {
				return storageErr(err)
			}
		}
	}
	configslog.Log.Debug("Anket soruları kaydedildi", zap.Uint("survey_id", surveyID), zap.Int("questions", len(items)))
	return nil
}

// Reconstruct anketin sorularını ve seçeneklerini ekleme sırasıyla döndürür.
func (s *SurveyItemService) Reconstruct(ctx context.Context, surveyID uint) ([]models.Question, error) {
	questions, err := s.repo.FindQuestionsBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}
	return questions, nil
}

var _ ISurveyItemService = (*SurveyItemService)(nil)
