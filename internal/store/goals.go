package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finplan/internal/model"
)

// SaveGoal inserts or replaces a goal.
func (s *Store) SaveGoal(g model.Goal) error {
	completed := 0
	if g.Completed {
		completed = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO goals
		(id, name, cost, completed, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		g.ID.String(), g.Name, g.Cost.String(), completed,
		g.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListGoals reads all goals, oldest first.
func (s *Store) ListGoals() ([]model.Goal, error) {
	rows, err := s.db.Query(`SELECT id, name, cost, completed, created_at
		FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var (
			g              model.Goal
			id, cost       string
			completed      int
			createdAt      string
		)
		if err := rows.Scan(&id, &g.Name, &cost, &completed, &createdAt); err != nil {
			return nil, err
		}
		if g.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if g.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, err
		}
		g.Completed = completed != 0
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal permanently.
func (s *Store) DeleteGoal(id uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id.String())
	return err
}
