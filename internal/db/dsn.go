package db

import (
	"os"
	"strings"
)

// GetNormalizedDSN returns DATABASE_DSN with the scheme normalized for the
// postgres driver (postgresql:// works too, but keep one spelling).
func GetNormalizedDSN() string {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		return ""
	}
	if strings.HasPrefix(dsn, "postgresql://") {
		dsn = "postgres://" + strings.TrimPrefix(dsn, "postgresql://")
	}
	return dsn
}
