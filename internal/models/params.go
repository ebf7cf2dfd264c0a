package models

// SystemParameter is a runtime key/value setting read at call time, so
// changes take effect without a restart.
type SystemParameter struct {
	ID    uint   `gorm:"primaryKey"`
	Key   string `gorm:"uniqueIndex;not null"`
	Value string
}
