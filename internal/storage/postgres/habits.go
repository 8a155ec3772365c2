package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nbrandt/habitual/internal/models"
)

const habitColumns = `id, user_id, name, frequency_type, interval_days, streak, last_completed_date, is_active, archived, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var lastCompleted sql.NullString
	var createdAt string

	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Frequency.Type, &h.Frequency.IntervalDays,
		&h.Streak, &lastCompleted, &h.IsActive, &h.Archived, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if lastCompleted.Valid {
		t, err := time.Parse(time.RFC3339, lastCompleted.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed_date: %w", err)
		}
		h.LastCompletedDate = &t
	}

	return h, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByName(userID, name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE user_id = $1 AND name = $2`, userID, name)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(userID string, includeArchived bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1`
	if !includeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	var lastCompleted sql.NullString
	if habit.LastCompletedDate != nil {
		lastCompleted = sql.NullString{String: habit.LastCompletedDate.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			frequency_type = excluded.frequency_type,
			interval_days = excluded.interval_days,
			streak = excluded.streak,
			last_completed_date = excluded.last_completed_date,
			is_active = excluded.is_active,
			archived = excluded.archived`,
		habit.ID, habit.UserID, habit.Name, habit.Frequency.Type, habit.Frequency.IntervalDays,
		habit.Streak, lastCompleted, habit.IsActive, habit.Archived,
		habit.CreatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) SetHabitArchived(id string, archived bool) error {
	result, err := s.db.Exec(`UPDATE habits SET archived = $1 WHERE id = $2 AND archived = $3`,
		archived, id, !archived)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if archived {
			return fmt.Errorf("habit not found or already archived")
		}
		return fmt.Errorf("habit not found or not archived")
	}

	return nil
}

func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM habit_log WHERE habit_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete habit log entries: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("habit not found")
	}

	return tx.Commit()
}
