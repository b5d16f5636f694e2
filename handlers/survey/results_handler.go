package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"anket.link/configs/configslog"
	"anket.link/models"
	"anket.link/pkg/renderer"
	"anket.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResultsHandler anket sonuçları için handler (HTML, CSV ve JSON).
type ResultsHandler struct {
	surveyService services.ISurveyService
	resultService services.IResultService
}

// NewResultsHandler yeni bir ResultsHandler örneği oluşturur.
func NewResultsHandler(db *gorm.DB) *ResultsHandler {
	return &ResultsHandler{
		surveyService: services.NewSurveyService(db),
		resultService: services.NewResultService(db),
	}
}

// load anketi ve sonuçlarını getirir. status 0 değilse istek o durumla sonlandırılmalıdır.
func (h *ResultsHandler) load(c *fiber.Ctx) (*models.Survey, *services.SurveyTally, int) {
	id, ok := surveyIDParam(c)
	if !ok {
		return nil, nil, http.StatusNotFound
	}
	ctx := c.UserContext()

	survey, err := h.surveyService.GetSurveyByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return nil, nil, http.StatusNotFound
		}
		configslog.Log.Error("Results: anket alınamadı", zap.Uint("survey_id", id), zap.Error(err))
		return nil, nil, http.StatusInternalServerError
	}
	tally, err := h.resultService.Tally(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSurveyNotFound) {
			return nil, nil, http.StatusNotFound
		}
		configslog.Log.Error("Results: sonuçlar hesaplanamadı", zap.Uint("survey_id", id), zap.Error(err))
		return nil, nil, http.StatusInternalServerError
	}
	return survey, tally, 0
}

// ShowResults sonuç sayfasını gösterir.
func (h *ResultsHandler) ShowResults(c *fiber.Ctx) error {
	survey, tally, status := h.load(c)
	if status != 0 {
		return renderer.RenderError(c, status)
	}
	return renderer.Render(c, "surveys/results", "layouts/main", fiber.Map{
		"Title":  "Results: " + survey.Title,
		"Survey": survey,
		"Tally":  tally,
	}, http.StatusOK)
}

// ExportResults sonuçları CSV olarak indirir.
func (h *ResultsHandler) ExportResults(c *fiber.Ctx) error {
	survey, tally, status := h.load(c)
	if status != 0 {
		return renderer.RenderError(c, status)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"question", "choice", "count", "percentage"})
	for _, q := range tally.Questions {
		for _, ch := range q.Choices {
			_ = w.Write([]string{q.Text, ch.Text, strconv.FormatInt(ch.Count, 10), strconv.Itoa(ch.Percentage)})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		configslog.Log.Error("ExportResults: CSV yazılamadı", zap.Uint("survey_id", survey.ID), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError)
	}

	c.Attachment(fmt.Sprintf("survey-%d-results.csv", survey.ID))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// ResultsJSON sonuçları JSON olarak döndürür.
func (h *ResultsHandler) ResultsJSON(c *fiber.Ctx) error {
	survey, tally, status := h.load(c)
	if status != 0 {
		return c.Status(status).JSON(fiber.Map{"error": http.StatusText(status)})
	}
	return c.JSON(fiber.Map{
		"survey": fiber.Map{
			"id":         survey.ID,
			"title":      survey.Title,
			"owner":      survey.User.Username,
			"created_at": survey.CreatedAt,
		},
		"total_responses": tally.TotalResponses,
		"respondents":     tally.Respondents,
		"questions":       tally.Questions,
	})
}
