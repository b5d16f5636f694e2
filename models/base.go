package models

import "time"

// BaseModel tüm tabloların ortak alanlarını içerir.
// Kayıtlar kalıcı olarak silinir; anket silme işlemi bağlı satırları da temizler.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
