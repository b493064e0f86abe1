package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

const monthLayout = "2006-01"

// UpsertValidation writes the whole validation record for its month,
// replacing any previous row. The month is normalized to its first day.
func (s *Store) UpsertValidation(v model.MonthlyValidation) error {
	month := model.NormalizeMonth(v.Month)

	var validatedAt any
	if v.ValidatedAt != nil {
		validatedAt = v.ValidatedAt.UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO monthly_validations
		(month, confirmed_expenses, confirmed_income,
		 unplanned_expenses, unplanned_income,
		 actual_total_income, actual_total_expenses, validated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		month.Format(monthLayout),
		boolInt(v.ConfirmedExpenses), boolInt(v.ConfirmedIncome),
		v.UnplannedExpenses.String(), v.UnplannedIncome.String(),
		v.ActualTotalIncome.String(), v.ActualTotalExpenses.String(),
		validatedAt,
	)
	return err
}

// GetValidation fetches the record for a month. A month never touched
// returns ErrNotFound; callers treat that as an open month.
func (s *Store) GetValidation(month time.Time) (model.MonthlyValidation, error) {
	row := s.db.QueryRow(`SELECT month, confirmed_expenses, confirmed_income,
		unplanned_expenses, unplanned_income,
		actual_total_income, actual_total_expenses, validated_at
		FROM monthly_validations WHERE month = ?`,
		model.NormalizeMonth(month).Format(monthLayout))
	v, err := scanValidation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MonthlyValidation{}, ErrNotFound
	}
	return v, err
}

// ListValidations reads all validation records, oldest month first.
func (s *Store) ListValidations() ([]model.MonthlyValidation, error) {
	rows, err := s.db.Query(`SELECT month, confirmed_expenses, confirmed_income,
		unplanned_expenses, unplanned_income,
		actual_total_income, actual_total_expenses, validated_at
		FROM monthly_validations ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var vals []model.MonthlyValidation
	for rows.Next() {
		v, err := scanValidation(rows.Scan)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, rows.Err()
}

func scanValidation(scan func(...any) error) (model.MonthlyValidation, error) {
	var (
		v                              model.MonthlyValidation
		month                          string
		confirmedExp, confirmedInc     int
		unplannedExp, unplannedInc     string
		actualInc, actualExp           string
		validatedAt                    sql.NullString
	)
	err := scan(&month, &confirmedExp, &confirmedInc,
		&unplannedExp, &unplannedInc, &actualInc, &actualExp, &validatedAt)
	if err != nil {
		return model.MonthlyValidation{}, err
	}

	if v.Month, err = time.Parse(monthLayout, month); err != nil {
		return model.MonthlyValidation{}, err
	}
	v.ConfirmedExpenses = confirmedExp != 0
	v.ConfirmedIncome = confirmedInc != 0
	if v.UnplannedExpenses, err = decimal.NewFromString(unplannedExp); err != nil {
		return model.MonthlyValidation{}, err
	}
	if v.UnplannedIncome, err = decimal.NewFromString(unplannedInc); err != nil {
		return model.MonthlyValidation{}, err
	}
	if v.ActualTotalIncome, err = decimal.NewFromString(actualInc); err != nil {
		return model.MonthlyValidation{}, err
	}
	if v.ActualTotalExpenses, err = decimal.NewFromString(actualExp); err != nil {
		return model.MonthlyValidation{}, err
	}
	if validatedAt.Valid {
		t, err := time.Parse(time.RFC3339, validatedAt.String)
		if err != nil {
			return model.MonthlyValidation{}, err
		}
		v.ValidatedAt = &t
	}
	return v, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
