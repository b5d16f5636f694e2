package handlers

import (
	"errors"
	"net/http"

	"anket.link/configs/configslog"
	"anket.link/pkg/flashmessages"
	"anket.link/pkg/renderer"
	"anket.link/services"
	"anket.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthHandler giriş, kayıt ve çıkış işlemleri için handler.
type AuthHandler struct {
	authService services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService(db)}
}

// ShowSignin giriş formunu gösterir.
func (h *AuthHandler) ShowSignin(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/signin", "layouts/main", fiber.Map{"Title": "Sign In"}, http.StatusOK)
}

// Signin kullanıcıyı doğrular ve oturum açar.
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	input := services.SigninInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	user, err := h.authService.Authenticate(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, services.ErrStorage) {
			configslog.Log.Error("Signin: kimlik doğrulama hatası", zap.Error(err))
			return renderer.RenderError(c, http.StatusInternalServerError)
		}
		return renderer.Render(c, "auth/signin", "layouts/main", fiber.Map{
			"Title":                    "Sign In",
			"Username":                 input.Username,
			renderer.FlashErrorKeyView: services.ErrInvalidCredentials.Error(),
		}, http.StatusUnprocessableEntity)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Signin: oturum başlatılamadı", zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	if err := utils.SignIn(sess, user.ID, user.Username); err != nil {
		configslog.Log.Error("Signin: oturum yazılamadı", zap.Uint("user_id", user.ID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}

	configslog.SLog.Infof("Kullanıcı giriş yaptı: %s", user.Username)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Welcome!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowSignup kayıt formunu gösterir.
func (h *AuthHandler) ShowSignup(c *fiber.Ctx) error {
	return renderer.Render(c, "auth/signup", "layouts/main", fiber.Map{"Title": "Sign Up"}, http.StatusOK)
}

// Signup yeni kullanıcı oluşturur. Kullanıcı adı kontrolü şifre kontrollerinden önce yapılır.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	input := services.SignupInput{
		Username:  c.FormValue("username"),
		Password1: c.FormValue("password1"),
		Password2: c.FormValue("password2"),
	}
	ctx := c.UserContext()

	formError := func(msg string) error {
		return renderer.Render(c, "auth/signup", "layouts/main", fiber.Map{
			"Title":                    "Sign Up",
			"Username":                 input.Username,
			renderer.FlashErrorKeyView: msg,
		}, http.StatusUnprocessableEntity)
	}

	exists, err := h.authService.UserExists(ctx, input.Username)
	if err != nil {
		configslog.Log.Error("Signup: kullanıcı kontrolü başarısız", zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	if exists {
		return formError(services.ErrDuplicateUser.Error())
	}
	if err := h.authService.ValidateSignup(input); err != nil {
		return formError(err.Error())
	}

	user, err := h.authService.CreateUser(ctx, input.Username, input.Password1)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) || errors.Is(err, services.ErrPasswordTooLong) {
			return formError(err.Error())
		}
		configslog.Log.Error("Signup: kullanıcı oluşturulamadı", zap.String("username", input.Username), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: %s", user.Username)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Welcome! Please sign in to your account.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Signout oturumu kapatır.
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Signout: oturum alınamadı", zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	if err := utils.SignOut(sess); err != nil {
		configslog.Log.Error("Signout: oturum yenilenemedi", zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	c.Locals("userID", nil)
	c.Locals("userName", nil)

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "You have been signed out.")
	return c.Redirect("/", fiber.StatusSeeOther)
}
