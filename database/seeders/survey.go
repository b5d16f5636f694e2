package seeders

import (
	"context"
	"errors"
	"fmt"

	"anket.link/configs/configslog"
	"anket.link/pkg/surveyitems"
	"anket.link/services"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type demoSurvey struct {
	title string
	items []surveyitems.Item
}

var demoSurveys = []demoSurvey{
	{
		title: "Pets",
		items: []surveyitems.Item{
			{Question: "Cats or dogs?", Choices: []string{"Cats", "Dogs"}},
			{Question: "How many pets do you have?", Choices: []string{"None", "One", "Two or more"}},
		},
	},
	{
		title: "Breakfast",
		items: []surveyitems.Item{
			{Question: "Coffee or tea?", Choices: []string{"Coffee", "Tea", "Neither"}},
		},
	},
}

// SeedDemoSurveys örnek anketleri owner adına oluşturur. Aynı başlıkta anket varsa atlanır.
// Hatalar toplanır; bir anketin başarısız olması diğerlerini engellemez.
func SeedDemoSurveys(db *gorm.DB, owner string) error {
	ctx := context.Background()
	surveyService := services.NewSurveyService(db)

	var errs error
	created := 0
	for _, demo := range demoSurveys {
		_, err := surveyService.CreateSurvey(ctx, demo.title, owner, surveyitems.Fields(demo.items...))
		switch {
		case err == nil:
			created++
			configslog.SLog.Infof("Örnek anket '%s' oluşturuldu.", demo.title)
		case errors.Is(err, services.ErrDuplicateTitle):
			configslog.SLog.Debugf("Örnek anket '%s' zaten mevcut, atlanıyor.", demo.title)
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", demo.title, err))
		}
	}

	if created == 0 && errs == nil {
		configslog.SLog.Info("Tüm örnek anketler zaten mevcut, yeni ekleme yapılmadı.")
	}
	return errs
}
