package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında tüm repository'ler tarafından döndürülür.
var ErrNotFound = errors.New("kayıt bulunamadı")

type ctxKey string

// txContextKey aktif transaction'ı context içinde taşır.
const txContextKey ctxKey = "tx"

// WithTx tx'i context'e yerleştirir. Bu context ile çağrılan repository metotları
// kendi bağlantıları yerine tx'i kullanır.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// dbFromContext context'te bir transaction varsa onu, yoksa db'yi döndürür.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// IsDuplicateKey unique kısıt ihlallerini sürücüden bağımsız tanır.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
