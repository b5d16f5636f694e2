package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"anket.link/models"
	"anket.link/pkg/surveyitems"
	"anket.link/repositories"
	"anket.link/testutil"
)

var petItems = []surveyitems.Item{
	{Question: "Cat or dog?", Choices: []string{"Cat", "Dog"}},
	{Question: "How many pets?", Choices: []string{"0", "1", "2+"}},
}

func TestSurveyService_CreateSurvey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateTestUser(t, db, "alice", "secret123")
	svc := NewSurveyService(db)
	ctx := context.Background()

	survey, err := svc.CreateSurvey(ctx, "  Pets  ", "alice", testutil.SurveyFields(petItems...))
	if err != nil {
		t.Fatalf("CreateSurvey() error = %v", err)
	}
	if survey.ID == 0 || survey.Title != "Pets" || survey.UserID != alice.ID {
		t.Errorf("unexpected survey: %+v", survey)
	}
	if survey.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", survey.QuestionCount)
	}

	got, err := svc.GetSurveyByID(ctx, survey.ID)
	if err != nil {
		t.Fatalf("GetSurveyByID() error = %v", err)
	}
	if got.QuestionCount != 2 || got.User.Username != "alice" {
		t.Errorf("GetSurveyByID() = %+v", got)
	}

	if _, err := svc.GetSurveyByTitle(ctx, "Pets"); err != nil {
		t.Errorf("GetSurveyByTitle() error = %v", err)
	}
}

func TestSurveyService_CreateSurveyErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "alice", "secret123")
	svc := NewSurveyService(db)
	ctx := context.Background()

	if _, err := svc.CreateSurvey(ctx, "Pets", "alice", testutil.SurveyFields(petItems...)); err != nil {
		t.Fatalf("seed survey: %v", err)
	}

	tests := []struct {
		name    string
		title   string
		owner   string
		fields  map[string]string
		wantErr error
	}{
		{"duplicate title", "Pets", "alice", testutil.SurveyFields(petItems...), ErrDuplicateTitle},
		{"empty title", "   ", "alice", testutil.SurveyFields(petItems...), ErrSurveyTitleRequired},
		{"title too long", strings.Repeat("x", 26), "alice", testutil.SurveyFields(petItems...), ErrSurveyTitleTooLong},
		{"unknown owner", "Food", "mallory", testutil.SurveyFields(petItems...), ErrUnknownUser},
		{"no valid questions", "Food", "alice", map[string]string{"q1": "Only one?", "q1c1": "Yes"}, ErrNoValidQuestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSurvey(ctx, tt.title, tt.owner, tt.fields)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateSurvey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := testutil.CountRows(t, db, &models.Survey{}); n != 1 {
		t.Errorf("surveys = %d, want 1", n)
	}
	if n := testutil.CountRows(t, db, &models.Question{}); n != 2 {
		t.Errorf("questions = %d, want 2 (failed creates must not leave rows)", n)
	}
}

// racingSurveyRepo başlık ön kontrolünü her zaman "yok" diye yanıtlar; eşzamanlı iki
// oluşturmanın ikisinin de ön kontrolü geçtiği durumu taklit eder.
type racingSurveyRepo struct {
	repositories.ISurveyRepository
}

func (racingSurveyRepo) FindByTitle(context.Context, string) (*models.Survey, error) {
	return nil, repositories.ErrNotFound
}

func TestSurveyService_TitleUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "alice", "secret123")
	ctx := context.Background()

	svc := NewSurveyService(db).(*SurveyService)
	if _, err := svc.CreateSurvey(ctx, "Pets", "alice", testutil.SurveyFields(petItems...)); err != nil {
		t.Fatalf("seed survey: %v", err)
	}

	svc.repo = racingSurveyRepo{svc.repo}
	if _, err := svc.CreateSurvey(ctx, "Pets", "alice", testutil.SurveyFields(petItems...)); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("CreateSurvey() past the pre-check error = %v, want ErrDuplicateTitle", err)
	}
	if n := testutil.CountRows(t, db, &models.Question{}); n != 2 {
		t.Errorf("questions = %d, want 2 (rolled back insert must not leave rows)", n)
	}
}

func TestSurveyService_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateTestUser(t, db, "alice", "secret123")
	bob := testutil.CreateTestUser(t, db, "bob", "secret123")
	svc := NewSurveyService(db)
	ctx := context.Background()

	for _, c := range []struct{ title, owner string }{{"A", "alice"}, {"B", "bob"}, {"C", "alice"}} {
		if _, err := svc.CreateSurvey(ctx, c.title, c.owner, testutil.SurveyFields(petItems[:1]...)); err != nil {
			t.Fatalf("CreateSurvey(%s): %v", c.title, err)
		}
	}

	all, err := svc.GetAllSurveys(ctx)
	if err != nil {
		t.Fatalf("GetAllSurveys() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("GetAllSurveys() len = %d, want 3", len(all))
	}
	if all[0].Title != "C" {
		t.Errorf("expected newest survey first, got %q", all[0].Title)
	}
	for _, s := range all {
		if s.QuestionCount != 1 {
			t.Errorf("survey %q QuestionCount = %d, want 1", s.Title, s.QuestionCount)
		}
	}

	mine, err := svc.GetSurveysForOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetSurveysForOwner() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("alice has %d surveys, want 2", len(mine))
	}
	theirs, _ := svc.GetSurveysForOwner(ctx, bob.ID)
	if len(theirs) != 1 || theirs[0].Title != "B" {
		t.Errorf("bob's surveys = %+v", theirs)
	}
}

func TestSurveyService_DeleteSurveyCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	alice := testutil.CreateTestUser(t, db, "alice", "secret123")
	bob := testutil.CreateTestUser(t, db, "bob", "secret123")
	svc := NewSurveyService(db)
	responses := NewResponseService(db)
	items := NewSurveyItemService(db)
	ctx := context.Background()

	doomed, err := svc.CreateSurvey(ctx, "Pets", "alice", testutil.SurveyFields(petItems...))
	if err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}
	kept, err := svc.CreateSurvey(ctx, "Food", "alice", testutil.SurveyFields(petItems[:1]...))
	if err != nil {
		t.Fatalf("CreateSurvey: %v", err)
	}

	for _, survey := range []*models.Survey{doomed, kept} {
		questions, err := items.Reconstruct(ctx, survey.ID)
		if err != nil {
			t.Fatalf("Reconstruct: %v", err)
		}
		if err := responses.SubmitSurvey(ctx, survey.ID, bob.ID, firstChoices(questions)); err != nil {
			t.Fatalf("SubmitSurvey: %v", err)
		}
	}

	if err := svc.DeleteSurvey(ctx, doomed.ID, bob.ID); !errors.Is(err, ErrSurveyForbidden) {
		t.Fatalf("DeleteSurvey by non-owner error = %v, want ErrSurveyForbidden", err)
	}
	if err := svc.DeleteSurvey(ctx, doomed.ID, alice.ID); err != nil {
		t.Fatalf("DeleteSurvey() error = %v", err)
	}
	if err := svc.DeleteSurvey(ctx, doomed.ID, alice.ID); !errors.Is(err, ErrSurveyNotFound) {
		t.Errorf("second DeleteSurvey() error = %v, want ErrSurveyNotFound", err)
	}

	// Sadece "Food" anketinin satırları kalmalı: 1 soru, 2 seçenek, 1 cevap, 1 çözüm kaydı.
	want := map[string]struct {
		model any
		n     int64
	}{
		"surveys":       {&models.Survey{}, 1},
		"questions":     {&models.Question{}, 1},
		"choices":       {&models.Choice{}, 2},
		"responses":     {&models.Response{}, 1},
		"taken_records": {&models.TakenRecord{}, 1},
	}
	for table, w := range want {
		if got := testutil.CountRows(t, db, w.model); got != w.n {
			t.Errorf("%s = %d, want %d", table, got, w.n)
		}
	}
	if _, err := svc.GetSurveyByID(ctx, kept.ID); err != nil {
		t.Errorf("unrelated survey lost: %v", err)
	}
}

// firstChoices her soru için ilk seçeneği seçen cevap haritası üretir.
func firstChoices(questions []models.Question) map[uint]uint {
	answers := make(map[uint]uint, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.Choices[0].ID
	}
	return answers
}

// pad değerlere ara sıra boşluk ekler ya da değeri sadece boşluktan oluşan bir metinle değiştirir.
func pad(r *rand.Rand, s string) string {
	switch r.Intn(5) {
	case 0:
		return " " + s + "  "
	case 1:
		return " "
	default:
		return s
	}
}

func TestSurveyItems_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "alice", "secret123")
	svc := NewSurveyService(db)
	items := NewSurveyItemService(db)
	ctx := context.Background()
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 40; i++ {
		fields := map[string]string{}
		for n := 1; n <= surveyitems.MaxQuestions; n++ {
			if r.Intn(4) > 0 {
				fields[surveyitems.QuestionKey(n)] = pad(r, fmt.Sprintf("Question %d-%d", i, n))
			}
			for m := 1; m <= surveyitems.MaxChoices; m++ {
				if r.Intn(2) == 0 {
					fields[surveyitems.ChoiceKey(n, m)] = pad(r, fmt.Sprintf("Choice %d.%d", n, m))
				}
			}
		}

		want := surveyitems.Normalize(fields)
		survey, err := svc.CreateSurvey(ctx, fmt.Sprintf("Survey %d", i), "alice", fields)
		if len(want) == 0 {
			if !errors.Is(err, ErrNoValidQuestions) {
				t.Fatalf("iteration %d: error = %v, want ErrNoValidQuestions", i, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("iteration %d: CreateSurvey() error = %v", i, err)
		}

		questions, err := items.Reconstruct(ctx, survey.ID)
		if err != nil {
			t.Fatalf("iteration %d: Reconstruct() error = %v", i, err)
		}
		if len(questions) != len(want) {
			t.Fatalf("iteration %d: got %d questions, want %d", i, len(questions), len(want))
		}
		for qi, q := range questions {
			if q.Text != want[qi].Question {
				t.Errorf("iteration %d: question %d = %q, want %q", i, qi, q.Text, want[qi].Question)
			}
			if len(q.Choices) != len(want[qi].Choices) {
				t.Fatalf("iteration %d: question %d has %d choices, want %d", i, qi, len(q.Choices), len(want[qi].Choices))
			}
			for ci, c := range q.Choices {
				if c.Text != want[qi].Choices[ci] {
					t.Errorf("iteration %d: choice %d.%d = %q, want %q", i, qi, ci, c.Text, want[qi].Choices[ci])
				}
			}
		}
	}
}
