package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// bcryptMaxBytes bcrypt'in kabul ettiği en uzun şifredir (bayt cinsinden, rune değil).
const bcryptMaxBytes = 72

var validate = newValidator()

// newValidator "bcryptlen" etiketini kaydeder: max etiketi rune saydığı için çok baytlı
// şifreler bcrypt sınırını aşabilir.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= bcryptMaxBytes
	})
	return v
}

// SignupInput kayıt formunun alanlarıdır.
type SignupInput struct {
	Username  string `validate:"required,min=3,max=50,alphanum"`
	Password1 string `validate:"required,min=6,bcryptlen"`
	Password2 string `validate:"eqfield=Password1"`
}

// SigninInput giriş formunun alanlarıdır.
type SigninInput struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,bcryptlen"`
}

type surveyTitleInput struct {
	Title string `validate:"required,max=25"`
}

// firstFieldError ilk doğrulama hatasının alan adını ve etiketini döndürür.
func firstFieldError(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	return verrs[0].Field(), verrs[0].Tag(), true
}
