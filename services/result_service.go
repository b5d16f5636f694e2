package services

import (
	"context"
	"errors"
	"math"

	"anket.link/models"
	"anket.link/repositories"

	"gorm.io/gorm"
)

// ChoiceTally bir seçeneğin sonuç satırıdır.
type ChoiceTally struct {
	ChoiceID   uint   `json:"choice_id"`
	Text       string `json:"text"`
	Count      int64  `json:"count"`
	Percentage int    `json:"percentage"`
}

// QuestionTally bir sorunun seçenek sonuçlarıdır; sıra Reconstruct ile aynıdır.
type QuestionTally struct {
	QuestionID uint          `json:"question_id"`
	Text       string        `json:"text"`
	Choices    []ChoiceTally `json:"choices"`
}

// SurveyTally anketin toplu sonuçlarıdır. Yüzdeler anketteki tüm cevap satırlarına göre hesaplanır.
type SurveyTally struct {
	SurveyID       uint                 `json:"survey_id"`
	TotalResponses int64                `json:"total_responses"`
	Respondents    int64                `json:"respondents"`
	PerChoice      map[uint]ChoiceTally `json:"-"`
	Questions      []QuestionTally      `json:"questions"`
}

// IResultService sonuç hesaplama için arayüz.
type IResultService interface {
	Tally(ctx context.Context, surveyID uint) (*SurveyTally, error)
}

// ResultService IResultService arayüzünü uygular.
type ResultService struct {
	responseRepo repositories.IResponseRepository
	takenRepo    repositories.ITakenRecordRepository
	surveyRepo   repositories.ISurveyRepository
	itemService  ISurveyItemService
}

// NewResultService yeni bir ResultService örneği oluşturur.
func NewResultService(db *gorm.DB) IResultService {
	return &ResultService{
		responseRepo: repositories.NewResponseRepository(db),
		takenRepo:    repositories.NewTakenRecordRepository(db),
		surveyRepo:   repositories.NewSurveyRepository(db),
		itemService:  NewSurveyItemService(db),
	}
}

// Percentage count/total oranını en yakın tam sayı yüzdeye yuvarlar. total 0 ise 0 döner.
func Percentage(count, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// buildTally seçenek sayılarından sonuç yapısını kurar.
func buildTally(surveyID uint, questions []models.Question, counts map[uint]int64, total int64) *SurveyTally {
	tally := &SurveyTally{
		SurveyID:       surveyID,
		TotalResponses: total,
		PerChoice:      make(map[uint]ChoiceTally),
		Questions:      make([]QuestionTally, 0, len(questions)),
	}
	for _, q := range questions {
		qt := QuestionTally{QuestionID: q.ID, Text: q.Text, Choices: make([]ChoiceTally, 0, len(q.Choices))}
		for _, c := range q.Choices {
			ct := ChoiceTally{
				ChoiceID:   c.ID,
				Text:       c.Text,
				Count:      counts[c.ID],
				Percentage: Percentage(counts[c.ID], total),
			}
			qt.Choices = append(qt.Choices, ct)
			tally.PerChoice[c.ID] = ct
		}
		tally.Questions = append(tally.Questions, qt)
	}
	return tally
}

// Tally anketin seçenek bazında cevap sayılarını ve yüzdelerini hesaplar.
func (s *ResultService) Tally(ctx context.Context, surveyID uint) (*SurveyTally, error) {
	if _, err := s.surveyRepo.FindByID(ctx, surveyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, storageErr(err)
	}

	questions, err := s.itemService.Reconstruct(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	counts, err := s.responseRepo.CountByChoiceForSurvey(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}
	total, err := s.responseRepo.CountBySurvey(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}
	respondents, err := s.takenRepo.CountBySurvey(ctx, surveyID)
	if err != nil {
		return nil, storageErr(err)
	}

	tally := buildTally(surveyID, questions, counts, total)
	tally.Respondents = respondents
	return tally, nil
}

var _ IResultService = (*ResultService)(nil)
