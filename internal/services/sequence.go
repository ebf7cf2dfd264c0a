package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecosire/fleet-billing/internal/models"
)

// nextByCode reserves and returns the next number for the sequence with the
// given code, creating the sequence on first use. Must run inside the
// caller's transaction so a rollback releases the number.
func nextByCode(tx *gorm.DB, code string) (string, error) {
	var seq models.Sequence
	q := tx
	// sqlite has no row locks; its writes serialize on the database anyway
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("code = ?", code).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.Sequence{Code: code, Prefix: defaultPrefix(code), Padding: 5, NextNumber: 1}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("create sequence %s: %w", code, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("load sequence %s: %w", code, err)
	}
	number := seq.Format(seq.NextNumber)
	if err := tx.Model(&seq).Update("next_number", seq.NextNumber+1).Error; err != nil {
		return "", fmt.Errorf("advance sequence %s: %w", code, err)
	}
	return number, nil
}

func defaultPrefix(code string) string {
	switch code {
	case models.SeqFleetOrder:
		return "FO"
	case models.SeqSaleOrder:
		return "SO"
	}
	return ""
}
