package daemon

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		ActiveItems:  3,
		NetBalance:   "1200",
		LockedMonths: 1,
		Trend:        "neutral",
	}
	curr := Snapshot{
		ActiveItems:  4,
		NetBalance:   "950",
		LockedMonths: 2,
		Trend:        "negative",
	}

	delta := diffSnapshots(prev, curr)
	if delta.ActiveItems != 1 {
		t.Fatalf("ActiveItems delta = %d, want 1", delta.ActiveItems)
	}
	if delta.NetBalance != "950" {
		t.Fatalf("NetBalance delta = %q, want %q", delta.NetBalance, "950")
	}
	if delta.LockedMonths != 1 {
		t.Fatalf("LockedMonths delta = %d, want 1", delta.LockedMonths)
	}
	if !delta.TrendChanged {
		t.Fatal("TrendChanged = false, want true")
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestDiffSnapshotsNoChange(t *testing.T) {
	snap := Snapshot{ActiveItems: 2, NetBalance: "500", LockedMonths: 1, Trend: "neutral"}
	if delta := diffSnapshots(snap, snap); !delta.isZero() {
		t.Fatalf("delta = %+v, want zero", delta)
	}
}

func TestSnapshotFromState(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	items := []model.RecurringItem{
		{ID: uuid.New(), Name: "Salary", Amount: decimal.NewFromInt(2500), Kind: model.KindIncome, Category: model.CategorySalary, IsActive: true},
		{ID: uuid.New(), Name: "Rent", Amount: decimal.NewFromInt(900), Kind: model.KindExpense, Category: model.CategoryHousing, IsActive: true},
		{ID: uuid.New(), Name: "Old sub", Amount: decimal.NewFromInt(15), Kind: model.KindExpense, Category: model.CategoryLeisure, IsActive: false},
	}
	validated := now
	validations := []model.MonthlyValidation{
		{
			Month:               time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			ConfirmedExpenses:   true,
			ConfirmedIncome:     true,
			ActualTotalIncome:   decimal.NewFromInt(2500),
			ActualTotalExpenses: decimal.NewFromInt(900),
			ValidatedAt:         &validated,
		},
		{Month: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	snap := snapshotFromState(items, model.DefaultSettings(), nil, validations, now)

	if snap.ActiveItems != 2 {
		t.Errorf("ActiveItems = %d, want 2", snap.ActiveItems)
	}
	if snap.MonthlyIncome != "2500" {
		t.Errorf("MonthlyIncome = %q, want %q", snap.MonthlyIncome, "2500")
	}
	if snap.MonthlyExpenses != "900" {
		t.Errorf("MonthlyExpenses = %q, want %q", snap.MonthlyExpenses, "900")
	}
	if snap.NetBalance != "1600" {
		t.Errorf("NetBalance = %q, want %q", snap.NetBalance, "1600")
	}
	if snap.LockedMonths != 1 {
		t.Errorf("LockedMonths = %d, want 1", snap.LockedMonths)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DBPath:       "finplan.db",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}
