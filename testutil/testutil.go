// Package testutil testlerde ortak kullanılan veritabanı ve HTTP yardımcılarıdır.
package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"anket.link/configs"
	"anket.link/configs/configsdatabase"
	"anket.link/database/migrations"
	"anket.link/models"
	"anket.link/pkg/surveyitems"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SetupTestDB yabancı anahtar denetimi açık, şeması kurulmuş bellek içi bir SQLite veritabanı döndürür.
// Her çağrı ayrı bir veritabanıdır; test bitince kapatılır.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := configsdatabase.Open(configs.DBTypeSQLite, "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	for _, migrate := range []func(*gorm.DB) error{
		migrations.MigrateUsersTable,
		migrations.MigrateSurveysTables,
		migrations.MigrateResponsesTables,
	} {
		if err := migrate(db); err != nil {
			t.Fatalf("failed to migrate test database: %v", err)
		}
	}
	return db
}

// CreateTestUser şifresi hash'lenmiş bir kullanıcı ekler.
func CreateTestUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Username: username, Password: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return user
}

// SurveyFields anket oluşturma formunun alanlarını üretir.
func SurveyFields(items ...surveyitems.Item) map[string]string {
	return surveyitems.Fields(items...)
}

// CountRows tablodaki satır sayısını döndürür.
func CountRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

// AssertStatus yanıt durum kodunu doğrular.
func AssertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

// AssertBodyContains yanıt gövdesinin verilen metni içerdiğini doğrular ve gövdeyi döndürür.
func AssertBodyContains(t *testing.T, resp *http.Response, want string) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), want) {
		t.Fatalf("expected body to contain %q, got:\n%s", want, body)
	}
	return string(body)
}
