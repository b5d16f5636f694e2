package models

// Question bir anketin tek seçimli sorusudur.
type Question struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	SurveyID uint   `gorm:"index;not null"`
	Text     string `gorm:"type:text;not null"`

	Choices []Choice `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Choice bir sorunun seçeneğidir.
type Choice struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	QuestionID uint   `gorm:"index;not null"`
	Text       string `gorm:"type:text;not null"`
}
