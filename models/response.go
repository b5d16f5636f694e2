package models

import "time"

// Response bir soruya verilen tek bir cevaptır (seçilen seçenek).
type Response struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	ChoiceID  uint      `gorm:"index;not null"`
	UserID    *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Choice Choice `gorm:"foreignKey:ChoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TakenRecord kullanıcının anketi tamamladığını işaretler.
// Tekrar çözmeyi uygulama engeller; veritabanında unique kısıt yoktur.
type TakenRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"index:idx_taken_user_survey;not null"`
	SurveyID  uint      `gorm:"index:idx_taken_user_survey;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
