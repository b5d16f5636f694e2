package models

// User kayıtlı bir kullanıcıdır. Password her zaman bcrypt hash'i tutar.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}
