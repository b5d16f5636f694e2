package routes

import (
	survey_handlers "anket.link/handlers/survey"
	"anket.link/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func registerSurveyRoutes(app *fiber.App, db *gorm.DB) {
	surveyHandler := survey_handlers.NewSurveyHandler(db)
	takeHandler := survey_handlers.NewTakeHandler(db)
	resultsHandler := survey_handlers.NewResultsHandler(db)

	surveyGroup := app.Group("/surveys", middlewares.AuthMiddleware)
	surveyGroup.Get("/", surveyHandler.ListSurveys)
	surveyGroup.Get("/create", surveyHandler.ShowCreateSurvey)
	surveyGroup.Post("/create", surveyHandler.CreateSurvey)
	surveyGroup.Post("/delete/:id", surveyHandler.DeleteSurvey)

	surveyGroup.Get("/take/:id", takeHandler.ShowTakeSurvey)
	surveyGroup.Post("/take/:id", takeHandler.SubmitSurvey)

	surveyGroup.Get("/results/:id", resultsHandler.ShowResults)
	surveyGroup.Get("/results/:id/export", resultsHandler.ExportResults)

	// /create'ten sonra gelmeli.
	surveyGroup.Get("/:id", surveyHandler.ShowSurvey)
}

func registerAPIRoutes(app *fiber.App, db *gorm.DB) {
	resultsHandler := survey_handlers.NewResultsHandler(db)

	apiGroup := app.Group("/api", middlewares.APIAuthMiddleware)
	apiGroup.Get("/surveys/:id/results", resultsHandler.ResultsJSON)
}
