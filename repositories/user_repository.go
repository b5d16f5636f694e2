package repositories

import (
	"context"
	"errors"

	"anket.link/configs/configslog"
	"anket.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create yeni kullanıcıyı ekler ve ID'sini doldurur.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Username == "" {
		return errors.New("kullanıcı adı olmadan kullanıcı oluşturulamaz")
	}
	if err := r.getDB(ctx).Create(user).Error; err != nil {
		if !IsDuplicateKey(err) {
			configslog.Log.Error("UserRepository.Create: DB error", zap.String("username", user.Username), zap.Error(err))
		}
		return err
	}
	return nil
}

// FindByID ID ile kullanıcıyı bulur.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.getDB(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByUsername kullanıcı adı ile kullanıcıyı bulur.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.getDB(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByUsername: DB error", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername kullanıcı adının kayıtlı olup olmadığını söyler.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		configslog.Log.Error("UserRepository.ExistsByUsername: DB error", zap.String("username", username), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

var _ IUserRepository = (*UserRepository)(nil)
