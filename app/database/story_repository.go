package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

// StoryRepository keeps the collection of the last completed pass so the
// hub can serve it before the first pass of a new process finishes.
type StoryRepository struct {
	db *DB
}

func NewStoryRepository(db *DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// ReplaceAll swaps the stored collection for stories in one transaction.
func (r *StoryRepository) ReplaceAll(ctx context.Context, passID string, stories []story.Story) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stories`); err != nil {
		return fmt.Errorf("failed to clear stories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stories (position, pass_id, url, source, title, description, published, category, categories, image, read_time, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	storedAt := time.Now().UnixMilli()
	for i, s := range stories {
		categories, err := json.Marshal(s.Categories)
		if err != nil {
			return fmt.Errorf("failed to encode categories: %w", err)
		}

		_, err = stmt.ExecContext(ctx, i, passID, s.URL, s.Source, s.Title, s.Description,
			s.Timestamp, string(s.Category), string(categories), s.Image, s.ReadTime, storedAt)
		if err != nil {
			return fmt.Errorf("failed to insert story %s: %w", s.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stories: %w", err)
	}
	return nil
}

// LoadAll returns the stored collection in its original order and the pass that produced it.
func (r *StoryRepository) LoadAll(ctx context.Context) (string, []story.Story, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pass_id, url, source, title, description, published, category, categories, image, read_time
		FROM stories
		ORDER BY position
	`)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load stories: %w", err)
	}
	defer rows.Close()

	var passID string
	var stories []story.Story
	for rows.Next() {
		var s story.Story
		var category, categories string
		err := rows.Scan(&passID, &s.URL, &s.Source, &s.Title, &s.Description,
			&s.Timestamp, &category, &categories, &s.Image, &s.ReadTime)
		if err != nil {
			return "", nil, fmt.Errorf("failed to scan story row: %w", err)
		}

		s.Category = story.Category(category)
		if err := json.Unmarshal([]byte(categories), &s.Categories); err != nil {
			return "", nil, fmt.Errorf("failed to decode categories for %s: %w", s.URL, err)
		}
		stories = append(stories, s)
	}

	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("failed to iterate stories: %w", err)
	}

	return passID, stories, nil
}
