package saveserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned for unknown scene ids
var ErrNotFound = errors.New("scene not found")

const schema = `
CREATE TABLE IF NOT EXISTS scenes (
    id         TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    elements   INTEGER NOT NULL,
    created_at TEXT NOT NULL
)`

// SavedScene is one stored export document
type SavedScene struct {
	ID        string
	Body      []byte
	Elements  int
	CreatedAt time.Time
}

// Store keeps received documents verbatim, one row each
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens the database at dbPath, creating its directory
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewStore wraps db
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Init creates the schema
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Save stores body and returns its new id
func (s *Store) Save(ctx context.Context, body []byte, elements int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO scenes (id, body, elements, created_at)
        VALUES (?, ?, ?, ?)
    `, id, string(body), elements, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert scene: %w", err)
	}
	return id, nil
}

// Get returns a stored scene
func (s *Store) Get(ctx context.Context, id string) (*SavedScene, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, body, elements, created_at
        FROM scenes
        WHERE id = ?
    `, id)

	var (
		scene     SavedScene
		body      string
		createdAt string
	)
	if err := row.Scan(&scene.ID, &body, &scene.Elements, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	scene.Body = []byte(body)
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	scene.CreatedAt = t
	return &scene, nil
}

// Count returns the number of stored scenes
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
