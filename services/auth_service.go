package services

import (
	"context"
	"errors"
	"strings"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError kimlik doğrulama hataları.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrDuplicateUser      AuthServiceError = "Sorry, that username is already taken."
	ErrUnknownUser        AuthServiceError = "No user with that username exists."
	ErrInvalidCredentials AuthServiceError = "Invalid credentials."
	ErrInvalidUsername    AuthServiceError = "Username must be 3 to 50 letters or digits."
	ErrPasswordTooShort   AuthServiceError = "Password must be between 6 and 72 characters."
	ErrPasswordTooLong    AuthServiceError = "Password is too long, use at most 72 bytes."
	ErrPasswordMismatch   AuthServiceError = "Passwords do not match."
)

// IAuthService kullanıcı hesapları ve kimlik doğrulama için arayüz.
type IAuthService interface {
	UserExists(ctx context.Context, username string) (bool, error)
	Verify(ctx context.Context, username, password string) (bool, error)
	Authenticate(ctx context.Context, input SigninInput) (*models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ValidateSignup(input SignupInput) error
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	repo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService(db *gorm.DB) IAuthService {
	return &AuthService{repo: repositories.NewUserRepository(db)}
}

// UserExists kullanıcı adının alınıp alınmadığını söyler.
func (s *AuthService) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.repo.ExistsByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, storageErr(err)
	}
	return exists, nil
}

// Verify şifreyi saklanan hash ile karşılaştırır. Bilinmeyen kullanıcı için false döner, hata değil.
func (s *AuthService) Verify(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, storageErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			configslog.Log.Warn("Şifre karşılaştırması başarısız", zap.String("username", user.Username), zap.Error(err))
		}
		return false, nil
	}
	return true, nil
}

// Authenticate giriş formunu doğrular ve başarılıysa kullanıcıyı döndürür.
func (s *AuthService) Authenticate(ctx context.Context, input SigninInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validate.Struct(&input); err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.Verify(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		configslog.Log.Info("Başarısız giriş denemesi", zap.String("username", input.Username))
		return nil, ErrInvalidCredentials
	}
	return s.GetUserByUsername(ctx, input.Username)
}

// CreateUser şifreyi hash'leyerek yeni kullanıcı oluşturur.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	exists, err := s.UserExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		configslog.Log.Error("Şifre hash'lenemedi", zap.Error(err))
		return nil, storageErr(err)
	}

	user := &models.User{Username: username, Password: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		return nil, storageErr(err)
	}
	configslog.SLog.Infof("Kullanıcı oluşturuldu: ID %d, Username: %s", user.ID, user.Username)
	return user, nil
}

// GetUserByUsername kullanıcı adına göre kullanıcıyı getirir.
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, storageErr(err)
	}
	return user, nil
}

// GetUserByID ID ile kullanıcıyı getirir.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, storageErr(err)
	}
	return user, nil
}

// ValidateSignup kayıt formunu kurallara göre denetler ve ilk hatayı kullanıcı mesajı olarak döndürür.
func (s *AuthService) ValidateSignup(input SignupInput) error {
	input.Username = strings.TrimSpace(input.Username)
	err := validate.Struct(&input)
	if err == nil {
		return nil
	}

	field, tag, ok := firstFieldError(err)
	if !ok {
		return err
	}
	switch {
	case field == "Username":
		return ErrInvalidUsername
	case field == "Password1" && tag == "bcryptlen":
		return ErrPasswordTooLong
	case field == "Password1":
		return ErrPasswordTooShort
	default:
		return ErrPasswordMismatch
	}
}

var _ IAuthService = (*AuthService)(nil)
