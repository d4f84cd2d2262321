package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

const taskColumns = `id, text, completed, life_meaning_score, quantum_state, excuses, created_at, completed_at`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database file at path, creating its directory and
// applying migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) error {
	excuses, err := encodeExcuses(in.Excuses)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Text, boolInt(in.Completed), in.LifeMeaningScore, in.QuantumState, excuses,
		mustTime(in.CreatedAt), nullTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in Task) error {
	excuses, err := encodeExcuses(in.Excuses)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET text = ?, completed = ?, life_meaning_score = ?, quantum_state = ?, excuses = ?, completed_at = ?
		WHERE id = ?`,
		in.Text, boolInt(in.Completed), in.LifeMeaningScore, in.QuantumState, excuses, nullTime(in.CompletedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteTasks removes every id in one transaction. Missing ids are ignored.
func (r *SQLiteRepository) DeleteTasks(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id IN (`+placeholders+`)`, args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) DeleteAllTasks(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	return err
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := make([]any, 0, 3)
	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, boolInt(*filter.Completed))
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// UnlockAchievement records the first unlock time; later calls keep it.
func (r *SQLiteRepository) UnlockAchievement(ctx context.Context, in AchievementUnlock) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New("storage: achievement id is required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO achievements (id, unlocked_at)
		VALUES (?, ?)`,
		in.ID, mustTime(in.UnlockedAt),
	)
	return err
}

func (r *SQLiteRepository) ListUnlockedAchievements(ctx context.Context) ([]AchievementUnlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AchievementUnlock, 0)
	for rows.Next() {
		var item AchievementUnlock
		var unlocked string
		if err := rows.Scan(&item.ID, &unlocked); err != nil {
			return nil, err
		}
		at, err := parseRequiredTime(unlocked)
		if err != nil {
			return nil, err
		}
		item.UnlockedAt = at
		out = append(out, item)
	}
	return out, rows.Err()
}

func encodeExcuses(in []string) (string, error) {
	if in == nil {
		in = []string{}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode excuses: %w", err)
	}
	return string(raw), nil
}

func decodeExcuses(raw string) ([]string, error) {
	out := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode excuses: %w", err)
	}
	return out, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		// SQLite only accepts OFFSET after LIMIT.
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var completed int
	var excuses string
	var created string
	var completedAt sql.NullString
	if err := s.Scan(&out.ID, &out.Text, &completed, &out.LifeMeaningScore, &out.QuantumState, &excuses, &created, &completedAt); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	doneAt, err := parseNullableTime(completedAt)
	if err != nil {
		return Task{}, err
	}
	list, err := decodeExcuses(excuses)
	if err != nil {
		return Task{}, err
	}
	out.Completed = completed == 1
	out.Excuses = list
	out.CreatedAt = createdAt
	out.CompletedAt = doneAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
