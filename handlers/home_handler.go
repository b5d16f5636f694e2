package handlers

import (
	"net/http"

	"anket.link/configs/configslog"
	"anket.link/pkg/renderer"
	"anket.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HomeHandler ana sayfa handler'ı.
type HomeHandler struct {
	surveyService services.ISurveyService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler(db *gorm.DB) *HomeHandler {
	return &HomeHandler{surveyService: services.NewSurveyService(db)}
}

// HomePage tüm anketleri soru sayılarıyla listeler.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	surveys, err := h.surveyService.GetAllSurveys(c.UserContext())
	if err != nil {
		configslog.Log.Error("HomePage: anketler alınamadı", zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}
	return renderer.Render(c, "home", "layouts/main", fiber.Map{
		"Title":   "Surveys",
		"Surveys": surveys,
	}, http.StatusOK)
}
