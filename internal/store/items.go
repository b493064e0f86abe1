package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// SaveItem inserts or replaces a recurring ledger item.
func (s *Store) SaveItem(it model.RecurringItem) error {
	isActive := 0
	if it.IsActive {
		isActive = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO recurring_items
		(id, name, amount, category, kind, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID.String(), it.Name, it.Amount.String(), string(it.Category), string(it.Kind),
		isActive,
		it.CreatedAt.UTC().Format(time.RFC3339),
		it.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetItem fetches one item by ID.
func (s *Store) GetItem(id uuid.UUID) (model.RecurringItem, error) {
	row := s.db.QueryRow(`SELECT id, name, amount, category, kind, is_active, created_at, updated_at
		FROM recurring_items WHERE id = ?`, id.String())
	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecurringItem{}, ErrNotFound
	}
	return it, err
}

// ListItems reads all recurring items, oldest first.
func (s *Store) ListItems() ([]model.RecurringItem, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, category, kind, is_active, created_at, updated_at
		FROM recurring_items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.RecurringItem
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes an item permanently.
func (s *Store) DeleteItem(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM recurring_items WHERE id = ?", id.String())
	return err
}

func scanItem(scan func(...any) error) (model.RecurringItem, error) {
	var (
		it                   model.RecurringItem
		id, amount           string
		category, kind       string
		isActive             int
		createdAt, updatedAt string
	)
	if err := scan(&id, &it.Name, &amount, &category, &kind, &isActive, &createdAt, &updatedAt); err != nil {
		return model.RecurringItem{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.RecurringItem{}, err
	}
	it.ID = parsed

	it.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.RecurringItem{}, err
	}

	it.Category = model.ParseCategory(category)
	if k, ok := model.ParseItemKind(kind); ok {
		it.Kind = k
	} else {
		it.Kind = model.KindExpense
	}
	it.IsActive = isActive != 0
	it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	it.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return it, nil
}
