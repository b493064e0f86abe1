package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finplan.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestItemRoundTrip(t *testing.T) {
	s := openTestStore(t)

	created := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	it := model.RecurringItem{
		ID:        uuid.New(),
		Name:      "Rent",
		Amount:    mustDec(t, "950.50"),
		Category:  model.CategoryHousing,
		Kind:      model.KindExpense,
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := s.SaveItem(it); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	got, err := s.GetItem(it.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Name != it.Name {
		t.Errorf("name = %q, want %q", got.Name, it.Name)
	}
	if !got.Amount.Equal(it.Amount) {
		t.Errorf("amount = %s, want %s", got.Amount, it.Amount)
	}
	if got.Category != model.CategoryHousing {
		t.Errorf("category = %q, want %q", got.Category, model.CategoryHousing)
	}
	if got.Kind != model.KindExpense {
		t.Errorf("kind = %q, want %q", got.Kind, model.KindExpense)
	}
	if !got.IsActive {
		t.Errorf("IsActive = false, want true")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestItemReplaceAndDelete(t *testing.T) {
	s := openTestStore(t)

	it := model.RecurringItem{
		ID:        uuid.New(),
		Name:      "Gym",
		Amount:    mustDec(t, "40"),
		Category:  model.CategoryHealth,
		Kind:      model.KindExpense,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.SaveItem(it); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	it.Amount = mustDec(t, "45")
	it.IsActive = false
	if err := s.SaveItem(it); err != nil {
		t.Fatalf("SaveItem (replace): %v", err)
	}

	items, err := s.ListItems()
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if !items[0].Amount.Equal(mustDec(t, "45")) || items[0].IsActive {
		t.Errorf("replace not applied: amount=%s active=%v", items[0].Amount, items[0].IsActive)
	}

	if err := s.DeleteItem(it.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := s.GetItem(it.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetItem after delete: err = %v, want ErrNotFound", err)
	}
}

func TestSettingsDefaultThenSave(t *testing.T) {
	s := openTestStore(t)

	fs, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if fs.SalaryPaymentDay != 1 {
		t.Errorf("default SalaryPaymentDay = %d, want 1", fs.SalaryPaymentDay)
	}
	if fs.CustomMode() {
		t.Errorf("default settings report custom mode")
	}

	fs.SalaryPaymentDay = 28
	fs.FundingTarget = mustDec(t, "12000")
	fs.MonthlyAllocation = mustDec(t, "400")
	if err := s.SaveSettings(fs); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := s.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings (after save): %v", err)
	}
	if got.SalaryPaymentDay != 28 {
		t.Errorf("SalaryPaymentDay = %d, want 28", got.SalaryPaymentDay)
	}
	if !got.FundingTarget.Equal(mustDec(t, "12000")) {
		t.Errorf("FundingTarget = %s, want 12000", got.FundingTarget)
	}
	if !got.CustomMode() {
		t.Errorf("CustomMode() = false after setting a target")
	}
}

func TestGoalRoundTrip(t *testing.T) {
	s := openTestStore(t)

	g := model.Goal{
		ID:        uuid.New(),
		Name:      "New laptop",
		Cost:      mustDec(t, "1800"),
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.SaveGoal(g); err != nil {
		t.Fatalf("SaveGoal: %v", err)
	}

	g.Completed = true
	if err := s.SaveGoal(g); err != nil {
		t.Fatalf("SaveGoal (replace): %v", err)
	}

	goals, err := s.ListGoals()
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	if !goals[0].Completed {
		t.Errorf("Completed = false, want true")
	}

	if err := s.DeleteGoal(g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	goals, err = s.ListGoals()
	if err != nil {
		t.Fatalf("ListGoals (after delete): %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("got %d goals after delete, want 0", len(goals))
	}
}

func TestValidationUpsertNormalizesMonth(t *testing.T) {
	s := openTestStore(t)

	validated := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	v := model.MonthlyValidation{
		Month:               time.Date(2026, 3, 17, 14, 45, 0, 0, time.UTC),
		ConfirmedExpenses:   true,
		ConfirmedIncome:     true,
		UnplannedExpenses:   mustDec(t, "75"),
		UnplannedIncome:     mustDec(t, "0"),
		ActualTotalIncome:   mustDec(t, "2500"),
		ActualTotalExpenses: mustDec(t, "1325"),
		ValidatedAt:         &validated,
	}
	if err := s.UpsertValidation(v); err != nil {
		t.Fatalf("UpsertValidation: %v", err)
	}

	got, err := s.GetValidation(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetValidation: %v", err)
	}
	if got.Month.Day() != 1 {
		t.Errorf("stored month day = %d, want 1", got.Month.Day())
	}
	if got.State() != model.StateLocked {
		t.Errorf("state = %q, want %q", got.State(), model.StateLocked)
	}
	if !got.ActualTotalExpenses.Equal(mustDec(t, "1325")) {
		t.Errorf("ActualTotalExpenses = %s, want 1325", got.ActualTotalExpenses)
	}
	if got.ValidatedAt == nil || !got.ValidatedAt.Equal(validated) {
		t.Errorf("ValidatedAt = %v, want %v", got.ValidatedAt, validated)
	}
}

func TestValidationLastWriteWins(t *testing.T) {
	s := openTestStore(t)

	month := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	first := model.MonthlyValidation{
		Month:             month,
		ConfirmedExpenses: true,
		UnplannedExpenses: mustDec(t, "30"),
	}
	if err := s.UpsertValidation(first); err != nil {
		t.Fatalf("UpsertValidation (first): %v", err)
	}

	second := model.MonthlyValidation{
		Month:           month,
		ConfirmedIncome: true,
		UnplannedIncome: mustDec(t, "120"),
	}
	if err := s.UpsertValidation(second); err != nil {
		t.Fatalf("UpsertValidation (second): %v", err)
	}

	got, err := s.GetValidation(month)
	if err != nil {
		t.Fatalf("GetValidation: %v", err)
	}
	if got.ConfirmedExpenses {
		t.Errorf("ConfirmedExpenses survived replace, want whole-record overwrite")
	}
	if !got.ConfirmedIncome {
		t.Errorf("ConfirmedIncome = false, want true")
	}
	if !got.UnplannedExpenses.IsZero() {
		t.Errorf("UnplannedExpenses = %s, want 0", got.UnplannedExpenses)
	}
}

func TestGetValidationMissingMonth(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetValidation(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListValidationsOrdered(t *testing.T) {
	s := openTestStore(t)

	for _, m := range []time.Time{
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		if err := s.UpsertValidation(model.MonthlyValidation{Month: m}); err != nil {
			t.Fatalf("UpsertValidation %v: %v", m, err)
		}
	}

	vals, err := s.ListValidations()
	if err != nil {
		t.Fatalf("ListValidations: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("got %d validations, want 3", len(vals))
	}
	for i, want := range []time.Month{time.February, time.April, time.June} {
		if vals[i].Month.Month() != want {
			t.Errorf("vals[%d].Month = %v, want %v", i, vals[i].Month.Month(), want)
		}
	}
}
