package services

import (
	"context"
	"errors"
	"strings"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/pkg/surveyitems"
	"anket.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SurveyServiceError anket işlemlerine özgü hatalar.
type SurveyServiceError string

func (e SurveyServiceError) Error() string { return string(e) }

const (
	ErrSurveyNotFound      SurveyServiceError = "Survey not found."
	ErrDuplicateTitle      SurveyServiceError = "Sorry, a survey with that title already exists."
	ErrSurveyTitleRequired SurveyServiceError = "Title must be between 1 and 25 characters."
	ErrSurveyTitleTooLong  SurveyServiceError = "Title is too long, use at most 25 characters."
	ErrNoValidQuestions    SurveyServiceError = "Add at least one question with two or more choices."
	ErrSurveyForbidden     SurveyServiceError = "You can only delete your own surveys."
)

// ISurveyService anket işlemleri için arayüz.
type ISurveyService interface {
	CreateSurvey(ctx context.Context, title, ownerUsername string, fields map[string]string) (*models.Survey, error)
	GetSurveyByID(ctx context.Context, id uint) (*models.Survey, error)
	GetSurveyByTitle(ctx context.Context, title string) (*models.Survey, error)
	GetSurveysForOwner(ctx context.Context, userID uint) ([]models.Survey, error)
	GetAllSurveys(ctx context.Context) ([]models.Survey, error)
	DeleteSurvey(ctx context.Context, id, requestingUserID uint) error
}

// SurveyService ISurveyService arayüzünü uygular.
type SurveyService struct {
	repo        repositories.ISurveyRepository
	userRepo    repositories.IUserRepository
	itemService ISurveyItemService
	db          *gorm.DB
}

// NewSurveyService yeni bir SurveyService örneği oluşturur.
func NewSurveyService(db *gorm.DB) ISurveyService {
	return &SurveyService{
		repo:        repositories.NewSurveyRepository(db),
		userRepo:    repositories.NewUserRepository(db),
		itemService: NewSurveyItemService(db),
		db:          db,
	}
}

// ValidateSurveyTitle başlığı kırpar ve uzunluk kurallarını uygular.
func ValidateSurveyTitle(title string) (string, error) {
	input := surveyTitleInput{Title: strings.TrimSpace(title)}
	if err := validate.Struct(&input); err != nil {
		if _, tag, ok := firstFieldError(err); ok && tag == "max" {
			return "", ErrSurveyTitleTooLong
		}
		return "", ErrSurveyTitleRequired
	}
	return input.Title, nil
}

// CreateSurvey anketi ve sorularını tek transaction'da oluşturur.
func (s *SurveyService) CreateSurvey(ctx context.Context, title, ownerUsername string, fields map[string]string) (*models.Survey, error) {
	title, err := ValidateSurveyTitle(title)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByTitle(ctx, title); err == nil {
		return nil, ErrDuplicateTitle
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageErr(err)
	}

	owner, err := s.userRepo.FindByUsername(ctx, ownerUsername)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, storageErr(err)
	}

	items := surveyitems.Normalize(fields)
	if len(items) == 0 {
		return nil, ErrNoValidQuestions
	}

	survey := &models.Survey{Title: title, UserID: owner.ID}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.WithTx(ctx, tx)
		if err := s.repo.Create(txCtx, survey); err != nil {
			if repositories.IsDuplicateKey(err) {
				return ErrDuplicateTitle
			}
			return storageErr(err)
		}
		return s.itemService.Persist(txCtx, survey.ID, items)
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrDuplicateTitle) {
			configslog.Log.Error("CreateSurvey transaction failed", zap.String("title", title), zap.Error(txErr))
		}
		return nil, txErr
	}

	survey.User = *owner
	survey.QuestionCount = int64(len(items))
	configslog.SLog.Infof("Anket oluşturuldu: ID %d, Başlık: %s (Sahibi: %s, Soru: %d)", survey.ID, survey.Title, owner.Username, len(items))
	return survey, nil
}

// GetSurveyByID anketi soru sayısıyla birlikte getirir.
func (s *SurveyService) GetSurveyByID(ctx context.Context, id uint) (*models.Survey, error) {
	survey, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, storageErr(err)
	}
	count, err := s.repo.CountQuestions(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	survey.QuestionCount = count
	return survey, nil
}

// GetSurveyByTitle başlığa göre anketi getirir.
func (s *SurveyService) GetSurveyByTitle(ctx context.Context, title string) (*models.Survey, error) {
	survey, err := s.repo.FindByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, storageErr(err)
	}
	return survey, nil
}

// GetSurveysForOwner kullanıcının anketlerini getirir.
func (s *SurveyService) GetSurveysForOwner(ctx context.Context, userID uint) ([]models.Survey, error) {
	surveys, err := s.repo.FindAllByOwnerID(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return surveys, nil
}

// GetAllSurveys tüm anketleri getirir.
func (s *SurveyService) GetAllSurveys(ctx context.Context) ([]models.Survey, error) {
	surveys, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return surveys, nil
}

// DeleteSurvey anketi bağlı tüm kayıtlarıyla siler. Sadece sahibi silebilir.
func (s *SurveyService) DeleteSurvey(ctx context.Context, id, requestingUserID uint) error {
	survey, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return storageErr(err)
	}
	if survey.UserID != requestingUserID {
		configslog.Log.Warn("Yetkisiz anket silme denemesi", zap.Uint("survey_id", id), zap.Uint("user_id", requestingUserID))
		return ErrSurveyForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return storageErr(err)
	}
	configslog.SLog.Infof("Anket silindi: ID %d, Başlık: %s (Silen: %d)", id, survey.Title, requestingUserID)
	return nil
}

var _ ISurveyService = (*SurveyService)(nil)
