package postgres

import (
	"fmt"
	"time"

	"github.com/nbrandt/habitual/internal/constants"
	"github.com/nbrandt/habitual/internal/models"
)

const logColumns = `id, habit_id, user_id, day, status, logged_at, note`

func scanLogEntry(row rowScanner) (models.HabitLogEntry, error) {
	var e models.HabitLogEntry
	var day, loggedAt string

	err := row.Scan(&e.ID, &e.HabitID, &e.UserID, &day, &e.Status, &loggedAt, &e.Note)
	if err != nil {
		return models.HabitLogEntry{}, err
	}

	e.Date, err = time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return models.HabitLogEntry{}, fmt.Errorf("failed to parse day: %w", err)
	}
	e.LoggedAt, err = time.Parse(time.RFC3339, loggedAt)
	if err != nil {
		return models.HabitLogEntry{}, fmt.Errorf("failed to parse logged_at: %w", err)
	}

	return e, nil
}

func (s *Store) GetLogEntry(habitID, day string) (models.HabitLogEntry, error) {
	row := s.db.QueryRow(`SELECT `+logColumns+` FROM habit_log WHERE habit_id = $1 AND day = $2`,
		habitID, day)
	return scanLogEntry(row)
}

func (s *Store) GetLogEntriesForDay(userID, day string) ([]models.HabitLogEntry, error) {
	rows, err := s.db.Query(`SELECT `+logColumns+` FROM habit_log WHERE user_id = $1 AND day = $2 ORDER BY logged_at`,
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) GetLogEntriesForRange(userID, startDay, endDay string) ([]models.HabitLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+` FROM habit_log
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`, userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) GetLogEntriesForHabit(habitID, startDay, endDay string) ([]models.HabitLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+logColumns+` FROM habit_log
		WHERE habit_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day DESC`, habitID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

const upsertLogSQL = `
	INSERT INTO habit_log (` + logColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (habit_id, day) DO UPDATE SET
		status = excluded.status,
		logged_at = excluded.logged_at,
		note = excluded.note`

func logArgs(entry models.HabitLogEntry) []any {
	return []any{
		entry.ID, entry.HabitID, entry.UserID, entry.Day(), entry.Status,
		entry.LoggedAt.Format(time.RFC3339), entry.Note,
	}
}

func (s *Store) UpsertLogEntry(entry models.HabitLogEntry) error {
	_, err := s.db.Exec(upsertLogSQL, logArgs(entry)...)
	return err
}

func (s *Store) ApplyToggle(habit models.Habit, entry models.HabitLogEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var lastCompleted any
	if habit.LastCompletedDate != nil {
		lastCompleted = habit.LastCompletedDate.Format(time.RFC3339)
	}
	result, err := tx.Exec(`UPDATE habits SET streak = $1, last_completed_date = $2 WHERE id = $3`,
		habit.Streak, lastCompleted, habit.ID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update habit: %w", err)
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

	if _, err := tx.Exec(upsertLogSQL, logArgs(entry)...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	return tx.Commit()
}
