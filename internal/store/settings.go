package store

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// LoadSettings reads the finance settings row. When no row exists yet the
// defaults are returned.
func (s *Store) LoadSettings() (model.FinanceSettings, error) {
	row := s.db.QueryRow(`SELECT salary_payment_day, funding_target, monthly_allocation, already_funded
		FROM finance_settings WHERE id = 1`)

	var (
		fs                        model.FinanceSettings
		target, alloc, funded string
	)
	err := row.Scan(&fs.SalaryPaymentDay, &target, &alloc, &funded)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.FinanceSettings{}, err
	}

	if fs.FundingTarget, err = decimal.NewFromString(target); err != nil {
		return model.FinanceSettings{}, err
	}
	if fs.MonthlyAllocation, err = decimal.NewFromString(alloc); err != nil {
		return model.FinanceSettings{}, err
	}
	if fs.AlreadyFunded, err = decimal.NewFromString(funded); err != nil {
		return model.FinanceSettings{}, err
	}
	return fs, nil
}

// SaveSettings writes the single settings row.
func (s *Store) SaveSettings(fs model.FinanceSettings) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO finance_settings
		(id, salary_payment_day, funding_target, monthly_allocation, already_funded)
		VALUES (1, ?, ?, ?, ?)`,
		fs.SalaryPaymentDay,
		fs.FundingTarget.String(),
		fs.MonthlyAllocation.String(),
		fs.AlreadyFunded.String(),
	)
	return err
}
