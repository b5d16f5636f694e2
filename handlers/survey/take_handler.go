package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/pkg/flashmessages"
	"anket.link/pkg/renderer"
	"anket.link/services"
	"anket.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AnswerFieldPrefix anket çözme formundaki alanların önekidir: question_<soruID>=<seçenekID>.
const AnswerFieldPrefix = "question_"

// TakeHandler anket çözme işlemleri için handler.
type TakeHandler struct {
	surveyService   services.ISurveyService
	itemService     services.ISurveyItemService
	responseService services.IResponseService
}

// NewTakeHandler yeni bir TakeHandler örneği oluşturur.
func NewTakeHandler(db *gorm.DB) *TakeHandler {
	return &TakeHandler{
		surveyService:   services.NewSurveyService(db),
		itemService:     services.NewSurveyItemService(db),
		responseService: services.NewResponseService(db),
	}
}

// parseAnswers formdaki question_<id> alanlarını soru ID -> seçenek ID haritasına çevirir.
// Sayısal olmayan seçenek değerleri 0'a çevrilir ve servis tarafından geçersiz sayılır.
func parseAnswers(fields map[string]string) map[uint]uint {
	answers := make(map[uint]uint)
	for key, value := range fields {
		rest, ok := strings.CutPrefix(key, AnswerFieldPrefix)
		if !ok {
			continue
		}
		questionID, err := strconv.ParseUint(rest, 10, 64)
		if err != nil || questionID == 0 {
			continue
		}
		choiceID, _ := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		answers[uint(questionID)] = uint(choiceID)
	}
	return answers
}

func (h *TakeHandler) renderTakeForm(c *fiber.Ctx, survey *models.Survey, errMsg string, status int) error {
	questions, err := h.itemService.Reconstruct(c.UserContext(), survey.ID)
	if err != nil {
		configslog.Log.Error("TakeSurvey: sorular alınamadı", zap.Uint("survey_id", survey.ID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	data := fiber.Map{
		"Title":       survey.Title,
		"Survey":      survey,
		"Questions":   questions,
		"FieldPrefix": AnswerFieldPrefix,
	}
	if errMsg != "" {
		data[renderer.FlashErrorKeyView] = errMsg
	}
	return renderer.Render(c, "surveys/take", "layouts/main", data, status)
}

// loadSurvey :id parametresindeki anketi getirir; hata durumunda yanıtı kendisi yazar.
func (h *TakeHandler) loadSurvey(c *fiber.Ctx) (*models.Survey, error) {
	id, ok := surveyIDParam(c)
	if !ok {
		return nil, renderer.RenderError(c, http.StatusNotFound)
	}
	survey, err := h.surveyService.GetSurveyByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return nil, renderer.RenderError(c, http.StatusNotFound)
		}
		configslog.Log.Error("TakeSurvey: anket alınamadı", zap.Uint("survey_id", id), zap.Error(err))
		return nil, renderer.RenderError(c, http.StatusInternalServerError)
	}
	return survey, nil
}

// ShowTakeSurvey anketin sorularını gösterir. Daha önce çözülmüşse özet sayfası uyarıyla gösterilir.
func (h *TakeHandler) ShowTakeSurvey(c *fiber.Ctx) error {
	survey, err := h.loadSurvey(c)
	if survey == nil {
		return err
	}
	userID, _ := currentUser(c)

	taken, err := h.responseService.HasTaken(c.UserContext(), userID, survey.ID)
	if err != nil {
		configslog.Log.Error("ShowTakeSurvey: çözüm kontrolü başarısız", zap.Uint("survey_id", survey.ID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	if taken {
		return renderer.Render(c, "surveys/show", "layouts/main", fiber.Map{
			"Title":                    survey.Title,
			"Survey":                   survey,
			"IsOwner":                  survey.UserID == userID,
			"HasTaken":                 true,
			renderer.FlashErrorKeyView: services.ErrAlreadyTaken.Error(),
		}, http.StatusOK)
	}
	return h.renderTakeForm(c, survey, "", http.StatusOK)
}

// SubmitSurvey formdaki cevapları kaydeder.
func (h *TakeHandler) SubmitSurvey(c *fiber.Ctx) error {
	survey, err := h.loadSurvey(c)
	if survey == nil {
		return err
	}
	userID, _ := currentUser(c)
	answers := parseAnswers(utils.FormValues(c))

	err = h.responseService.SubmitSurvey(c.UserContext(), survey.ID, userID, answers)
	switch {
	case err == nil:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Thanks for taking the survey!")
		return c.Redirect("/", fiber.StatusSeeOther)
	case errors.Is(err, services.ErrAlreadyTaken):
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/surveys/"+strconv.FormatUint(uint64(survey.ID), 10), fiber.StatusSeeOther)
	case errors.Is(err, services.ErrIncompleteAnswers), errors.Is(err, services.ErrInvalidChoice):
		return h.renderTakeForm(c, survey, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrSurveyNotFound):
		return renderer.RenderError(c, http.StatusNotFound)
	default:
		configslog.Log.Error("SubmitSurvey: cevaplar kaydedilemedi", zap.Uint("survey_id", survey.ID), zap.Uint("user_id", userID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
}
