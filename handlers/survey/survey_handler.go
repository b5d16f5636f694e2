package handlers

import (
	"errors"
	"net/http"

	"anket.link/configs/configslog"
	"anket.link/pkg/flashmessages"
	"anket.link/pkg/renderer"
	"anket.link/pkg/surveyitems"
	"anket.link/services"
	"anket.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SurveyHandler anket listeleme, görüntüleme, oluşturma ve silme işlemleri için handler.
type SurveyHandler struct {
	surveyService   services.ISurveyService
	responseService services.IResponseService
}

// NewSurveyHandler yeni bir SurveyHandler örneği oluşturur.
func NewSurveyHandler(db *gorm.DB) *SurveyHandler {
	return &SurveyHandler{
		surveyService:   services.NewSurveyService(db),
		responseService: services.NewResponseService(db),
	}
}

// surveyIDParam :id parametresini okur. Geçersiz değerler için ok false döner.
func surveyIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// currentUser AuthMiddleware'den geçmiş isteğin kullanıcısını döndürür.
func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals("userID").(uint)
	userName, _ := c.Locals("userName").(string)
	return userID, userName
}

// ListSurveys kullanıcının kendi anketlerini listeler.
func (h *SurveyHandler) ListSurveys(c *fiber.Ctx) error {
	userID, _ := currentUser(c)
	surveys, err := h.surveyService.GetSurveysForOwner(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("ListSurveys: anketler alınamadı", zap.Uint("user_id", userID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	return renderer.Render(c, "surveys/list", "layouts/main", fiber.Map{
		"Title":   "My Surveys",
		"Surveys": surveys,
	}, http.StatusOK)
}

// ShowSurvey anket özetini gösterir.
func (h *SurveyHandler) ShowSurvey(c *fiber.Ctx) error {
	id, ok := surveyIDParam(c)
	if !ok {
		return renderer.RenderError(c, http.StatusNotFound)
	}
	userID, _ := currentUser(c)
	ctx := c.UserContext()

	survey, err := h.surveyService.GetSurveyByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return renderer.RenderError(c, http.StatusNotFound)
		}
		configslog.Log.Error("ShowSurvey: anket alınamadı", zap.Uint("survey_id", id), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	taken, err := h.responseService.HasTaken(ctx, userID, id)
	if err != nil {
		configslog.Log.Error("ShowSurvey: çözüm kontrolü başarısız", zap.Uint("survey_id", id), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}

	return renderer.Render(c, "surveys/show", "layouts/main", fiber.Map{
		"Title":    survey.Title,
		"Survey":   survey,
		"IsOwner":  survey.UserID == userID,
		"HasTaken": taken,
	}, http.StatusOK)
}

// ShowCreateSurvey boş anket oluşturma formunu gösterir.
func (h *SurveyHandler) ShowCreateSurvey(c *fiber.Ctx) error {
	return renderer.Render(c, "surveys/create", "layouts/main", fiber.Map{
		"Title": "Make a Survey",
		"Slots": surveyitems.Slots(nil),
	}, http.StatusOK)
}

// CreateSurvey formdaki anketi oluşturur. Kullanıcı hatalarında form girilen değerlerle tekrar gösterilir.
func (h *SurveyHandler) CreateSurvey(c *fiber.Ctx) error {
	fields := utils.FormValues(c)
	_, userName := currentUser(c)

	survey, err := h.surveyService.CreateSurvey(c.UserContext(), fields["title"], userName, fields)
	if err != nil {
		if errors.Is(err, services.ErrStorage) {
			configslog.Log.Error("CreateSurvey: anket oluşturulamadı", zap.String("user", userName), zap.Error(err))
			return renderer.RenderError(c, http.StatusInternalServerError)
		}
		return renderer.Render(c, "surveys/create", "layouts/main", fiber.Map{
			"Title":                    "Make a Survey",
			"SurveyTitle":              fields["title"],
			"Slots":                    surveyitems.Slots(fields),
			renderer.FlashErrorKeyView: err.Error(),
		}, http.StatusUnprocessableEntity)
	}

	configslog.Log.Info("Anket oluşturuldu", zap.Uint("survey_id", survey.ID), zap.String("user", userName))
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Survey successfully created.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// DeleteSurvey anketi siler. Sadece sahibi silebilir.
func (h *SurveyHandler) DeleteSurvey(c *fiber.Ctx) error {
	id, ok := surveyIDParam(c)
	if !ok {
		return renderer.RenderError(c, http.StatusNotFound)
	}
	userID, _ := currentUser(c)

	if err := h.surveyService.DeleteSurvey(c.UserContext(), id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrSurveyNotFound):
			return renderer.RenderError(c, http.StatusNotFound)
		case errors.Is(err, services.ErrSurveyForbidden):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
			return c.Redirect("/surveys", fiber.StatusSeeOther)
		default:
			configslog.Log.Error("DeleteSurvey: anket silinemedi", zap.Uint("survey_id", id), zap.Error(err))
			return renderer.RenderError(c, http.StatusInternalServerError)
		}
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Survey deleted.")
	return c.Redirect("/surveys", fiber.StatusSeeOther)
}
