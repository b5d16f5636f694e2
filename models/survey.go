package models

// Survey bir kullanıcının oluşturduğu ankettir. Başlık tüm anketler arasında benzersizdir.
type Survey struct {
	BaseModel
	Title  string `gorm:"type:varchar(25);uniqueIndex;not null"`
	UserID uint   `gorm:"index;not null"`

	// GORM İlişkileri
	User      User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// QuestionCount listelemelerde doldurulur, tabloda saklanmaz.
	QuestionCount int64 `gorm:"-"`
}
