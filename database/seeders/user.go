package seeders

import (
	"context"
	"errors"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoUsername seed edilen demo kullanıcısının adıdır.
const DemoUsername = "demo"

// SeedDemoUser demo kullanıcısını oluşturur. Kullanıcı zaten varsa mevcut kayıt döner, şifresi değiştirilmez.
func SeedDemoUser(db *gorm.DB, password string) (*models.User, error) {
	ctx := context.Background()
	authService := services.NewAuthService(db)

	existing, err := authService.GetUserByUsername(ctx, DemoUsername)
	if err == nil {
		configslog.SLog.Debugf("Demo kullanıcısı '%s' zaten mevcut, oluşturma atlanıyor.", DemoUsername)
		return existing, nil
	}
	if !errors.Is(err, services.ErrUnknownUser) {
		configslog.Log.Error("Demo kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(err))
		return nil, err
	}

	user, err := authService.CreateUser(ctx, DemoUsername, password)
	if err != nil {
		configslog.Log.Error("Demo kullanıcısı oluşturulamadı", zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Demo kullanıcısı '%s' oluşturuldu (ID: %d).", user.Username, user.ID)
	return user, nil
}
