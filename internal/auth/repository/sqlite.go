package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"graph-calculator/internal/auth/models"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и убеждается в наличии admin.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureAdmin(ctx)
}

// ============================================================
// Users
// ============================================================

func (r *Repository) GetByCredentials(ctx context.Context, login, password string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, email, created_at
        FROM users
        WHERE login = ? AND password = ?
    `, login, password)
	return scanUser(row)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, email, created_at
        FROM users
        WHERE id = ?
    `, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Login, &u.Password, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ============================================================
// Scenes
// ============================================================

// SaveScene сохраняет сцену и возвращает её id.
func (r *Repository) SaveScene(ctx context.Context, userID, name, prompt string, scene json.RawMessage) (string, error) {
	if !json.Valid(scene) {
		return "", fmt.Errorf("scene is not valid JSON")
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO scenes (id, user_id, name, prompt, scene)
        VALUES (?, ?, ?, ?, ?)
    `, id, userID, name, prompt, string(scene))
	if err != nil {
		return "", fmt.Errorf("insert scene: %w", err)
	}
	return id, nil
}

// ListScenes возвращает сцены пользователя без тел (только метаданные).
func (r *Repository) ListScenes(ctx context.Context, userID string) ([]models.SavedScene, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, name, prompt, created_at
        FROM scenes
        WHERE user_id = ?
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenes := []models.SavedScene{}
	for rows.Next() {
		var s models.SavedScene
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Prompt, &s.CreatedAt); err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, rows.Err()
}

func (r *Repository) GetScene(ctx context.Context, userID, sceneID string) (*models.SavedScene, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, name, prompt, scene, created_at
        FROM scenes
        WHERE id = ? AND user_id = ?
    `, sceneID, userID)

	var s models.SavedScene
	var raw string
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Prompt, &raw, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.Scene = json.RawMessage(raw)
	return &s, nil
}

func (r *Repository) DeleteScene(ctx context.Context, userID, sceneID string) error {
	res, err := r.db.ExecContext(ctx, `
        DELETE FROM scenes WHERE id = ? AND user_id = ?
    `, sceneID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (r *Repository) ensureAdmin(ctx context.Context) error {
	_, err := r.GetByCredentials(ctx, "admin", "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) && !strings.Contains(err.Error(), "not found") {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO users (id, login, password, name, email)
        VALUES (?, ?, ?, ?, ?)
    `,
		"11111111-1111-1111-1111-111111111111",
		"admin",
		"admin",
		"Admin User",
		"admin@example.com",
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
