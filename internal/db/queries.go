package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Backstory is a persisted generated story. Stories are never mutated
// after creation.
type Backstory struct {
	ID          int64     `json:"id"`
	ImageSHA256 string    `json:"image_sha256"`
	Labels      []string  `json:"labels"`
	Prompt      string    `json:"prompt"`
	Story       string    `json:"story"`
	CreatedAt   time.Time `json:"created_at"`
}

// Queries provides typed access to the database.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// SaveBackstory inserts a backstory and fills in its ID and creation time.
func (q *Queries) SaveBackstory(ctx context.Context, b *Backstory) error {
	labels, err := json.Marshal(b.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	result, err := q.db.ExecContext(ctx, `
		INSERT INTO backstories (image_sha256, labels, prompt, story, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.ImageSHA256, string(labels), b.Prompt, b.Story, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert backstory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	b.ID = id

	return nil
}

// RecentBackstories returns the most recently created backstories,
// newest first.
func (q *Queries) RecentBackstories(ctx context.Context, limit int) ([]Backstory, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, image_sha256, labels, prompt, story, created_at
		FROM backstories
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query backstories: %w", err)
	}
	defer rows.Close()

	var backstories []Backstory
	for rows.Next() {
		var b Backstory
		var labels string
		if err := rows.Scan(&b.ID, &b.ImageSHA256, &labels, &b.Prompt, &b.Story, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backstory: %w", err)
		}
		if err := json.Unmarshal([]byte(labels), &b.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
		backstories = append(backstories, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backstories: %w", err)
	}

	return backstories, nil
}

// CountBackstories returns the total number of stored backstories.
func (q *Queries) CountBackstories(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM backstories").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count backstories: %w", err)
	}
	return count, nil
}
