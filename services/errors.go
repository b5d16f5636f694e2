package services

import "fmt"

// StorageError veritabanı katmanından gelen beklenmeyen hataları işaretler.
type StorageError string

func (e StorageError) Error() string { return string(e) }

// ErrStorage handler'ların "500" ile "kullanıcı hatası" ayrımını errors.Is ile yapabilmesi içindir.
const ErrStorage StorageError = "storage error"

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
