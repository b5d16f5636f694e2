package services

import (
	"context"
	"errors"
	"maps"
	"slices"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResponseServiceError cevap kaydı hataları.
type ResponseServiceError string

func (e ResponseServiceError) Error() string { return string(e) }

const (
	ErrAlreadyTaken      ResponseServiceError = "Sorry, you've already taken this survey."
	ErrIncompleteAnswers ResponseServiceError = "Please answer every question."
	ErrInvalidChoice     ResponseServiceError = "One of the selected choices does not belong to this survey."
)

// IResponseService cevapların kaydı için arayüz. answers soru ID'sinden seçilen seçenek ID'sine eşlemedir.
type IResponseService interface {
	RecordChoices(ctx context.Context, userID uint, answers map[uint]uint) error
	MarkTaken(ctx context.Context, userID, surveyID uint) error
	HasTaken(ctx context.Context, userID, surveyID uint) (bool, error)
	SubmitSurvey(ctx context.Context, surveyID, userID uint, answers map[uint]uint) error
}

// ResponseService IResponseService arayüzünü uygular.
type ResponseService struct {
	repo        repositories.IResponseRepository
	takenRepo   repositories.ITakenRecordRepository
	surveyRepo  repositories.ISurveyRepository
	itemService ISurveyItemService
	db          *gorm.DB
}

// NewResponseService yeni bir ResponseService örneği oluşturur.
func NewResponseService(db *gorm.DB) IResponseService {
	return &ResponseService{
		repo:        repositories.NewResponseRepository(db),
		takenRepo:   repositories.NewTakenRecordRepository(db),
		surveyRepo:  repositories.NewSurveyRepository(db),
		itemService: NewSurveyItemService(db),
		db:          db,
	}
}

// RecordChoices her cevap için bir Response satırı ekler. Satırlar soru ID sırasıyla yazılır.
func (s *ResponseService) RecordChoices(ctx context.Context, userID uint, answers map[uint]uint) error {
	for _, questionID := range slices.Sorted(maps.Keys(answers)) {
		response := &models.Response{ChoiceID: answers[questionID]}
		if userID != 0 {
			uid := userID
			response.UserID = &uid
		}
		if err := s.repo.Create(ctx, response); err != nil {
			return storageErr(err)
		}
	}
	return nil
}

// MarkTaken kullanıcının anketi çözdüğünü kaydeder.
func (s *ResponseService) MarkTaken(ctx context.Context, userID, surveyID uint) error {
	if err := s.takenRepo.Create(ctx, &models.TakenRecord{UserID: userID, SurveyID: surveyID}); err != nil {
		return storageErr(err)
	}
	return nil
}

// HasTaken kullanıcının anketi daha önce çözüp çözmediğini söyler.
func (s *ResponseService) HasTaken(ctx context.Context, userID, surveyID uint) (bool, error) {
	taken, err := s.takenRepo.Exists(ctx, userID, surveyID)
	if err != nil {
		return false, storageErr(err)
	}
	return taken, nil
}

// validateAnswers her sorunun tam bir cevabı olduğunu ve seçeneklerin o soruya ait olduğunu denetler.
func validateAnswers(questions []models.Question, answers map[uint]uint) error {
	for _, q := range questions {
		choiceID, ok := answers[q.ID]
		if !ok {
			return ErrIncompleteAnswers
		}
		if !slices.ContainsFunc(q.Choices, func(c models.Choice) bool { return c.ID == choiceID }) {
			return ErrInvalidChoice
		}
	}
	// Ankette olmayan bir soruya verilmiş cevap.
	if len(answers) > len(questions) {
		return ErrInvalidChoice
	}
	return nil
}

// SubmitSurvey anket formunu işler: cevapları yazar ve anketi çözüldü olarak işaretler.
func (s *ResponseService) SubmitSurvey(ctx context.Context, surveyID, userID uint, answers map[uint]uint) error {
	if _, err := s.surveyRepo.FindByID(ctx, surveyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return storageErr(err)
	}

	taken, err := s.HasTaken(ctx, userID, surveyID)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyTaken
	}

	questions, err := s.itemService.Reconstruct(ctx, surveyID)
	if err != nil {
		return err
	}
	if err := validateAnswers(questions, answers); err != nil {
		return err
	}

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(ctx, tx)
		if err := s.RecordChoices(txCtx, userID, answers); err != nil {
			return err
		}
		return s.MarkTaken(txCtx, userID, surveyID)
	})
	if txErr != nil {
		configslog.Log.Error("SubmitSurvey transaction failed", zap.Uint("survey_id", surveyID), zap.Uint("user_id", userID), zap.Error(txErr))
		return txErr
	}

	configslog.SLog.Infof("Anket cevaplandı: SurveyID %d, UserID %d, Cevap: %d", surveyID, userID, len(answers))
	return nil
}

var _ IResponseService = (*ResponseService)(nil)
