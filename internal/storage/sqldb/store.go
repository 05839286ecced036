// Package sqldb wraps the relational backend of the web API. The driver
// is picked from the DSN: postgres URLs go through lib/pq, anything else
// is treated as a SQLite file path.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"todoapp/internal/models"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// Store wraps access to the database and exposes high level helpers for
// users and owner-scoped tasks.
type Store struct {
	db       *sql.DB
	logger   *slog.Logger
	postgres bool
}

// Open connects to the database described by dsn, retrying a fixed
// number of times before giving up, then runs the migrations.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database dsn")
	}
	if logger == nil {
		logger = slog.Default()
	}

	driver := "sqlite3"
	source := dsn
	postgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if postgres {
		driver = "postgres"
	} else {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		source = fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dsn)
	}

	conn, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if !postgres {
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	}

	for attempt := 1; ; attempt++ {
		err = conn.Ping()
		if err == nil {
			break
		}
		logger.Warn("database connection attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", connectAttempts),
			slog.String("error", err.Error()))
		if attempt == connectAttempts {
			_ = conn.Close()
			return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, err)
		}
		time.Sleep(connectDelay)
	}

	s := &Store{db: conn, logger: logger, postgres: postgres}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.Info("database ready", slog.String("driver", driver))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	taskID := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.postgres {
		taskID = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL UNIQUE,
            hashed_password TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS tasks (
            id %s,
            user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP NOT NULL,
            updated_at TIMESTAMP NOT NULL
        );`, taskID),
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateUser inserts a new account. Username and email must both be
// free; a collision on either surfaces as ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`),
		u.Username, u.Email).Scan(&count)
	if err != nil {
		return models.User{}, fmt.Errorf("check user uniqueness: %w", err)
	}
	if count > 0 {
		return models.User{}, models.ErrDuplicate
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err = s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO users(id, username, email, hashed_password, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)`),
		u.ID, u.Username, u.Email, u.HashedPassword, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// UsernameTaken reports whether a username is already in use.
func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

// GetUser fetches an account by id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, username, email, hashed_password, created_at, updated_at FROM users WHERE id = ?`), id))
}

// GetUserByEmail fetches an account by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, username, email, hashed_password, created_at, updated_at FROM users WHERE email = ?`), email))
}

func (s *Store) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// UserUpdate is the closed list of account fields that may change.
// Nil pointers leave the field untouched.
type UserUpdate struct {
	Username       *string
	Email          *string
	HashedPassword *string
}

// UpdateUser merges the supplied fields onto the stored account. A new
// email must not belong to another user.
func (s *Store) UpdateUser(ctx context.Context, id string, upd UserUpdate) (models.User, error) {
	current, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if upd.Username != nil {
		if err := models.ValidateUsername(*upd.Username); err != nil {
			return models.User{}, err
		}
		current.Username = *upd.Username
	}
	if upd.Email != nil {
		if err := models.ValidateEmail(*upd.Email); err != nil {
			return models.User{}, err
		}
		var count int
		err := s.db.QueryRowContext(ctx,
			s.rebind(`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`),
			*upd.Email, id).Scan(&count)
		if err != nil {
			return models.User{}, fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return models.User{}, models.ErrDuplicate
		}
		current.Email = *upd.Email
	}
	if upd.HashedPassword != nil {
		current.HashedPassword = *upd.HashedPassword
	}
	current.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		s.rebind(`UPDATE users SET username = ?, email = ?, hashed_password = ?, updated_at = ? WHERE id = ?`),
		current.Username, current.Email, current.HashedPassword, current.UpdatedAt, id)
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return current, nil
}

// DeleteUser removes an account and, through the foreign key, its tasks.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CreateTask inserts a task owned by the given user.
func (s *Store) CreateTask(ctx context.Context, ownerID, title, description string) (models.Task, error) {
	trimmed, err := models.ValidateTitle(title)
	if err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	description = strings.TrimSpace(description)

	if s.postgres {
		var id int64
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO tasks(user_id, title, description, completed, created_at, updated_at) VALUES($1, $2, $3, FALSE, $4, $5) RETURNING id`,
			ownerID, trimmed, description, now, now).Scan(&id)
		if err != nil {
			return models.Task{}, fmt.Errorf("insert task: %w", err)
		}
		return s.GetTask(ctx, ownerID, id)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(user_id, title, description, completed, created_at, updated_at) VALUES(?, ?, ?, FALSE, ?, ?)`,
		ownerID, trimmed, description, now, now)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, ownerID, id)
}

// ListTasks returns the owner's tasks in insertion order.
func (s *Store) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks WHERE user_id = ? ORDER BY id`), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id within the owner's scope.
func (s *Store) GetTask(ctx context.Context, ownerID string, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks WHERE id = ? AND user_id = ?`), id, ownerID).
		Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask merges the supplied fields onto the stored task. A
// supplied title must survive trimming.
func (s *Store) UpdateTask(ctx context.Context, ownerID string, id int64, title, description *string) (models.Task, error) {
	current, err := s.GetTask(ctx, ownerID, id)
	if err != nil {
		return models.Task{}, err
	}

	if title != nil {
		trimmed, err := models.ValidateTitle(*title)
		if err != nil {
			return models.Task{}, err
		}
		current.Title = trimmed
	}
	if description != nil {
		current.Description = strings.TrimSpace(*description)
	}
	current.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		s.rebind(`UPDATE tasks SET title = ?, description = ?, updated_at = ? WHERE id = ? AND user_id = ?`),
		current.Title, current.Description, current.UpdatedAt, id, ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return current, nil
}

// ToggleTask flips a task's completion flag within the owner's scope.
func (s *Store) ToggleTask(ctx context.Context, ownerID string, id int64) (models.Task, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind(`UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ? AND user_id = ?`),
		time.Now().UTC(), id, ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("toggle task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, models.ErrNotFound
	}
	return s.GetTask(ctx, ownerID, id)
}

// DeleteTask removes a task within the owner's scope.
func (s *Store) DeleteTask(ctx context.Context, ownerID string, id int64) error {
	res, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
