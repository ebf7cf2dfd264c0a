package params

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ecosire/fleet-billing/internal/models"
)

// Parameter keys
const (
	KeyUploadBaseURL = "upload_base_url"
)

// Store reads and writes runtime system parameters. Values are looked up at
// call time so an admin edit takes effect on the next use without a restart.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// Get returns the stored value for key, or def when the key is absent or
// empty.
func (s *Store) Get(key, def string) string {
	var p models.SystemParameter
	if err := s.DB.Where("key = ?", key).First(&p).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// lookup failures fall back to the default rather than surfacing
			return def
		}
		return def
	}
	if p.Value == "" {
		return def
	}
	return p.Value
}

// Set upserts the value for key.
func (s *Store) Set(key, value string) error {
	var p models.SystemParameter
	err := s.DB.Where("key = ?", key).First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.Create(&models.SystemParameter{Key: key, Value: value}).Error
	case err != nil:
		return err
	}
	return s.DB.Model(&p).Update("value", value).Error
}
