package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"anket.link/configs"
	"anket.link/middlewares"
	"anket.link/models"
	"anket.link/pkg/surveyitems"
	"anket.link/services"
	"anket.link/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// testClient oturum çerezini istekler arasında taşır.
type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func setupTestApp(t *testing.T) (*testClient, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	app := fiber.New(fiber.Config{Views: html.New("../views", ".html")})
	SetupRoutes(app, db, configs.AppConfig{
		Env:               "test",
		SessionExpiration: time.Hour,
		SigninRateLimit:   1000,
	})
	return &testClient{t: t, app: app, cookies: map[string]*http.Cookie{}}, db
}

func (c *testClient) request(method, path string, form url.Values, headers map[string]string) *http.Response {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.app.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return resp
}

func (c *testClient) get(path string) *http.Response {
	c.t.Helper()
	return c.request(http.MethodGet, path, nil, nil)
}

func (c *testClient) post(path string, form url.Values) *http.Response {
	c.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return c.request(http.MethodPost, path, form, nil)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	testutil.AssertStatus(t, resp, http.StatusSeeOther)
	if got := resp.Header.Get(fiber.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func formOf(fields map[string]string) url.Values {
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	return form
}

func signUpAndIn(t *testing.T, c *testClient, username, password string) {
	t.Helper()
	assertRedirect(t, c.post("/users/signup", url.Values{
		"username":  {username},
		"password1": {password},
		"password2": {password},
	}), "/")
	assertRedirect(t, c.post("/users/signin", url.Values{
		"username": {username},
		"password": {password},
	}), "/")
}

func surveyItem(question string, choices ...string) surveyitems.Item {
	return surveyitems.Item{Question: question, Choices: choices}
}

func createPetsSurvey(t *testing.T, c *testClient, db *gorm.DB) *models.Survey {
	t.Helper()
	form := formOf(testutil.SurveyFields(
		surveyItem("Cat or dog?", "Cat", "Dog"),
		surveyItem("How many pets?", "0", "1", "2+"),
	))
	form.Set("title", "Pets")
	assertRedirect(t, c.post("/surveys/create", form), "/")

	var survey models.Survey
	if err := db.Where("title = ?", "Pets").First(&survey).Error; err != nil {
		t.Fatalf("survey not stored: %v", err)
	}
	return &survey
}

func surveyPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func TestRouter_FullFlow(t *testing.T) {
	c, db := setupTestApp(t)

	testutil.AssertBodyContains(t, c.get("/"), "No surveys yet.")

	// Kayıt ve giriş
	assertRedirect(t, c.post("/users/signup", url.Values{
		"username":  {"alice"},
		"password1": {"secret123"},
		"password2": {"secret123"},
	}), "/")
	testutil.AssertBodyContains(t, c.get("/"), "Welcome! Please sign in to your account.")

	resp := c.post("/users/signin", url.Values{"username": {"alice"}, "password": {"wrong"}})
	testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertBodyContains(t, resp, "Invalid credentials.")

	assertRedirect(t, c.post("/users/signin", url.Values{"username": {"alice"}, "password": {"secret123"}}), "/")
	body := testutil.AssertBodyContains(t, c.get("/"), "Signed in as alice")
	if !strings.Contains(body, "Welcome!") {
		t.Errorf("home page missing sign-in flash:\n%s", body)
	}

	// Anket oluşturma
	survey := createPetsSurvey(t, c, db)
	body = testutil.AssertBodyContains(t, c.get("/"), "Survey successfully created.")
	if !strings.Contains(body, "Pets") || !strings.Contains(body, "2 question(s)") {
		t.Errorf("home page missing the new survey:\n%s", body)
	}
	testutil.AssertBodyContains(t, c.get(surveyPath("/surveys/", survey.ID)), "2 question(s)")
	testutil.AssertBodyContains(t, c.get("/surveys"), "Pets")

	// Anket çözme
	questions, err := services.NewSurveyItemService(db).Reconstruct(context.Background(), survey.ID)
	if err != nil || len(questions) != 2 {
		t.Fatalf("Reconstruct() = %d questions, %v", len(questions), err)
	}
	testutil.AssertBodyContains(t, c.get(surveyPath("/surveys/take/", survey.ID)), "Cat or dog?")

	answer := func(q models.Question, choice int) (string, string) {
		return fmt.Sprintf("question_%d", q.ID), strconv.FormatUint(uint64(q.Choices[choice].ID), 10)
	}
	k1, v1 := answer(questions[0], 0)
	k2, v2 := answer(questions[1], 2)

	resp = c.post(surveyPath("/surveys/take/", survey.ID), url.Values{k1: {v1}})
	testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertBodyContains(t, resp, "Please answer every question.")

	assertRedirect(t, c.post(surveyPath("/surveys/take/", survey.ID), url.Values{k1: {v1}, k2: {v2}}), "/")
	testutil.AssertBodyContains(t, c.get("/"), "Thanks for taking the survey!")

	assertRedirect(t, c.post(surveyPath("/surveys/take/", survey.ID), url.Values{k1: {v1}, k2: {v2}}),
		surveyPath("/surveys/", survey.ID))
	testutil.AssertBodyContains(t, c.get(surveyPath("/surveys/", survey.ID)), "already taken this survey")
	testutil.AssertBodyContains(t, c.get(surveyPath("/surveys/take/", survey.ID)), "already taken this survey")
	if n := testutil.CountRows(t, db, &models.Response{}); n != 2 {
		t.Errorf("responses = %d, want 2", n)
	}

	// Sonuçlar
	testutil.AssertBodyContains(t, c.get(surveyPath("/surveys/results/", survey.ID)), "50%")

	resp = c.get(surveyPath("/surveys/results/", survey.ID) + "/export")
	testutil.AssertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	body = testutil.AssertBodyContains(t, resp, "question,choice,count,percentage")
	if !strings.Contains(body, "Cat or dog?,Cat,1,50") || !strings.Contains(body, "How many pets?,2+,1,50") {
		t.Errorf("unexpected CSV:\n%s", body)
	}

	resp = c.get(fmt.Sprintf("/api/surveys/%d/results", survey.ID))
	testutil.AssertStatus(t, resp, http.StatusOK)
	var payload struct {
		Survey struct {
			Title string `json:"title"`
			Owner string `json:"owner"`
		} `json:"survey"`
		TotalResponses int64                    `json:"total_responses"`
		Respondents    int64                    `json:"respondents"`
		Questions      []services.QuestionTally `json:"questions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if payload.Survey.Title != "Pets" || payload.Survey.Owner != "alice" {
		t.Errorf("survey = %+v", payload.Survey)
	}
	if payload.TotalResponses != 2 || payload.Respondents != 1 || len(payload.Questions) != 2 {
		t.Errorf("unexpected results payload: %+v", payload)
	}

	// Silme
	assertRedirect(t, c.post(surveyPath("/surveys/delete/", survey.ID), nil), "/surveys")
	testutil.AssertBodyContains(t, c.get("/surveys"), "Survey deleted.")
	for _, model := range []any{&models.Survey{}, &models.Question{}, &models.Choice{}, &models.Response{}, &models.TakenRecord{}} {
		if n := testutil.CountRows(t, db, model); n != 0 {
			t.Errorf("%T rows after delete = %d, want 0", model, n)
		}
	}

	// Çıkış
	assertRedirect(t, c.post("/users/signout", nil), "/")
	testutil.AssertBodyContains(t, c.get("/"), "You have been signed out.")
	assertRedirect(t, c.get("/surveys"), "/")
	testutil.AssertBodyContains(t, c.get("/"), middlewares.SignInRequiredMessage)
}

func TestRouter_Guards(t *testing.T) {
	c, _ := setupTestApp(t)

	for _, path := range []string{"/surveys", "/surveys/create", "/surveys/1", "/surveys/take/1", "/surveys/results/1"} {
		t.Run(path, func(t *testing.T) {
			assertRedirect(t, c.get(path), "/")
		})
	}
	assertRedirect(t, c.post("/users/signout", nil), "/")

	resp := c.get("/api/surveys/1/results")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertBodyContains(t, resp, "signed in")

	signUpAndIn(t, c, "alice", "secret123")
	assertRedirect(t, c.get("/users/signin"), "/")
	assertRedirect(t, c.get("/users/signup"), "/")
}

func TestRouter_SignupErrors(t *testing.T) {
	c, db := setupTestApp(t)
	testutil.CreateTestUser(t, db, "alice", "secret123")

	tests := []struct {
		name     string
		form     url.Values
		wantBody string
	}{
		{"duplicate username", url.Values{"username": {"alice"}, "password1": {"secret123"}, "password2": {"secret123"}}, "that username is already taken"},
		{"password mismatch", url.Values{"username": {"bob"}, "password1": {"secret123"}, "password2": {"secret124"}}, "Passwords do not match."},
		{"short password", url.Values{"username": {"bob"}, "password1": {"abc"}, "password2": {"abc"}}, "Password must be between 6 and 72 characters."},
		{"invalid username", url.Values{"username": {"b!"}, "password1": {"secret123"}, "password2": {"secret123"}}, "Username must be 3 to 50 letters or digits."},
		{"multibyte password over 72 bytes", url.Values{"username": {"bob"}, "password1": {strings.Repeat("ş", 40)}, "password2": {strings.Repeat("ş", 40)}}, "Password is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := c.post("/users/signup", tt.form)
			testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
			testutil.AssertBodyContains(t, resp, tt.wantBody)
		})
	}
	if n := testutil.CountRows(t, db, &models.User{}); n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
}

func TestRouter_CreateSurveyErrors(t *testing.T) {
	c, db := setupTestApp(t)
	signUpAndIn(t, c, "alice", "secret123")
	createPetsSurvey(t, c, db)

	valid := testutil.SurveyFields(surveyItem("Cat or dog?", "Cat", "Dog"))
	tests := []struct {
		name     string
		title    string
		fields   map[string]string
		wantBody string
	}{
		{"empty title", "", valid, "Title must be between 1 and 25 characters."},
		{"long title", strings.Repeat("x", 26), valid, "Title is too long"},
		{"no valid questions", "Colors", testutil.SurveyFields(surveyItem("Color?", "Red")), "Add at least one question"},
		{"duplicate title", "Pets", valid, "a survey with that title already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := formOf(tt.fields)
			form.Set("title", tt.title)
			resp := c.post("/surveys/create", form)
			testutil.AssertStatus(t, resp, http.StatusUnprocessableEntity)
			testutil.AssertBodyContains(t, resp, tt.wantBody)
		})
	}
	if n := testutil.CountRows(t, db, &models.Survey{}); n != 1 {
		t.Errorf("surveys = %d, want 1", n)
	}
}

func TestRouter_DeleteOtherUsersSurvey(t *testing.T) {
	owner, db := setupTestApp(t)
	signUpAndIn(t, owner, "alice", "secret123")
	survey := createPetsSurvey(t, owner, db)

	other := &testClient{t: t, app: owner.app, cookies: map[string]*http.Cookie{}}
	signUpAndIn(t, other, "bob", "secret123")

	assertRedirect(t, other.post(surveyPath("/surveys/delete/", survey.ID), nil), "/surveys")
	testutil.AssertBodyContains(t, other.get("/surveys"), "You can only delete your own surveys.")
	if n := testutil.CountRows(t, db, &models.Survey{}); n != 1 {
		t.Errorf("surveys = %d, want 1", n)
	}

	testutil.AssertStatus(t, other.post("/surveys/delete/9999", nil), http.StatusNotFound)
}

func TestRouter_SignoutRegeneratesSession(t *testing.T) {
	c, _ := setupTestApp(t)
	signUpAndIn(t, c, "alice", "secret123")

	signedIn, ok := c.cookies[configs.SessionCookieName]
	if !ok {
		t.Fatal("no session cookie after sign in")
	}
	assertRedirect(t, c.post("/users/signout", nil), "/")

	if current, ok := c.cookies[configs.SessionCookieName]; ok && current.Value == signedIn.Value {
		t.Error("session id not changed on sign out")
	}

	stale := &testClient{t: t, app: c.app, cookies: map[string]*http.Cookie{signedIn.Name: signedIn}}
	assertRedirect(t, stale.get("/surveys"), "/")
}

func TestRouter_NotFound(t *testing.T) {
	c, _ := setupTestApp(t)

	resp := c.get("/no-such-page")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertBodyContains(t, resp, "Page not found")

	resp = c.request(http.MethodGet, "/no-such-page", nil, map[string]string{fiber.HeaderAccept: fiber.MIMEApplicationJSON})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertBodyContains(t, resp, `"error"`)

	signUpAndIn(t, c, "alice", "secret123")
	for _, path := range []string{"/surveys/9999", "/surveys/take/9999", "/surveys/results/9999", "/surveys/abc"} {
		t.Run(path, func(t *testing.T) {
			testutil.AssertStatus(t, c.get(path), http.StatusNotFound)
		})
	}
	testutil.AssertStatus(t, c.get("/api/surveys/9999/results"), http.StatusNotFound)
}

func TestRouter_RequestID(t *testing.T) {
	c, _ := setupTestApp(t)

	resp := c.get("/")
	if resp.Header.Get(middlewares.RequestIDHeader) == "" {
		t.Error("response has no request id")
	}

	const id = "0b5c8f7e-3f55-4d9a-8d6e-2a1f4c9b7e10"
	resp = c.request(http.MethodGet, "/", nil, map[string]string{middlewares.RequestIDHeader: id})
	if got := resp.Header.Get(middlewares.RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}
