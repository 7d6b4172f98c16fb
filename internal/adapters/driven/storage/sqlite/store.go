package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/brainspread/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/brainspread/internal/core/domain"
	"github.com/custodia-labs/brainspread/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.ContentStore      = (*Store)(nil)
	_ driven.RawStatementStore = (*Store)(nil)
)

// memoryLocation opens a private in-memory database.
const memoryLocation = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
const connPragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Store is the SQLite-backed content store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if missing) the database at location.
// Location may be "sqlite://path", "sqlite:path", a bare path or ":memory:".
// If location is empty, defaults to ~/.brainspread/data/brainspread.db.
func NewStore(location string) (*Store, error) {
	dbPath, err := resolvePath(location)
	if err != nil {
		return nil, err
	}

	if dbPath != memoryLocation {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?"+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Each in-memory connection would otherwise be a separate database.
	if dbPath == memoryLocation {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// resolvePath turns a storage location string into a file path.
func resolvePath(location string) (string, error) {
	location = strings.TrimSpace(location)
	location = strings.TrimPrefix(location, "sqlite://")
	location = strings.TrimPrefix(location, "sqlite:")
	if scheme, _, ok := strings.Cut(location, "://"); ok {
		return "", fmt.Errorf("%w: storage scheme %q", domain.ErrNotImplemented, scheme)
	}

	// Connection options are fixed by the store.
	if i := strings.IndexByte(location, '?'); i >= 0 {
		location = location[:i]
	}

	if location == memoryLocation {
		return location, nil
	}

	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, ".brainspread", "data", "brainspread.db"), nil
	}

	return location, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Contents ====================

// InsertContent appends a content row and returns its identifier.
func (s *Store) InsertContent(ctx context.Context, title, body string) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contents (title, content, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, title, body, domain.StateCreated.String(), now, now)
	if err != nil {
		return 0, &domain.StorageError{Op: "insert content", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &domain.StorageError{Op: "insert content", Err: err}
	}
	return id, nil
}

// MostRecentContent returns the content row with the highest identifier.
func (s *Store) MostRecentContent(ctx context.Context) (*domain.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, state, created_at
		FROM contents ORDER BY id DESC LIMIT 1
	`)
	return scanContent(row, "most recent content")
}

// GetContent retrieves a content row by identifier.
func (s *Store) GetContent(ctx context.Context, id int64) (*domain.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, state, created_at
		FROM contents WHERE id = ?
	`, id)
	return scanContent(row, "get content")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner, op string) (*domain.Content, error) {
	var c domain.Content
	var state string
	var createdAt sql.NullTime
	if err := row.Scan(&c.ID, &c.Title, &c.Body, &state, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Op: op, Err: err}
	}

	c.State = domain.EnrichmentState(state)
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return &c, nil
}

// SetState records the enrichment state of a content.
func (s *Store) SetState(ctx context.Context, contentID int64, state domain.EnrichmentState) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contents SET state = ?, updated_at = ? WHERE id = ?
	`, state.String(), time.Now().UTC(), contentID)
	if err != nil {
		return &domain.StorageError{Op: "set state", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "set state", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UnfinishedContents returns contents whose state is not complete.
func (s *Store) UnfinishedContents(ctx context.Context) ([]domain.Content, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, state, created_at
		FROM contents WHERE state != ? ORDER BY id
	`, domain.StateComplete.String())
	if err != nil {
		return nil, &domain.StorageError{Op: "unfinished contents", Err: err}
	}
	defer rows.Close()

	var contents []domain.Content //nolint:prealloc // size unknown from query
	for rows.Next() {
		c, err := scanContent(rows, "unfinished contents")
		if err != nil {
			return nil, err
		}
		contents = append(contents, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "unfinished contents", Err: err}
	}
	return contents, nil
}

// ==================== Summaries ====================

// InsertSummary appends a summary bound to contentID.
func (s *Store) InsertSummary(ctx context.Context, contentID int64, text string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (content_id, content, created_at) VALUES (?, ?, ?)
	`, contentID, text, time.Now().UTC())
	if err != nil {
		return 0, &domain.StorageError{Op: "insert summary", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "insert summary", Err: err}
	}
	return n, nil
}

// SummaryFor returns the most recent summary of a content.
func (s *Store) SummaryFor(ctx context.Context, contentID int64) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM summaries WHERE content_id = ? ORDER BY id DESC LIMIT 1
	`, contentID).Scan(&text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", &domain.StorageError{Op: "summary for", Err: err}
	}
	return text, nil
}

// ContentsWithSummaries returns every content that has a summary.
// Contents without a summary are excluded by the inner join.
func (s *Store) ContentsWithSummaries(ctx context.Context) ([]domain.EnrichedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.content, s.content
		FROM contents c
		INNER JOIN summaries s ON s.id = (
			SELECT MAX(id) FROM summaries WHERE content_id = c.id
		)
		ORDER BY c.id
	`)
	if err != nil {
		return nil, &domain.StorageError{Op: "contents with summaries", Err: err}
	}
	defer rows.Close()

	var records []domain.EnrichedRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.EnrichedRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Summary); err != nil {
			return nil, &domain.StorageError{Op: "contents with summaries", Err: err}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "contents with summaries", Err: err}
	}
	return records, nil
}

// ==================== Labels ====================

// InsertLabels appends one row per label on a single pooled connection.
// There is no enclosing transaction: a failure partway keeps the rows already inserted.
func (s *Store) InsertLabels(ctx context.Context, contentID int64, labels []string) (int64, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return 0, &domain.StorageError{Op: "insert labels", Err: err}
	}
	defer conn.Close()

	var total int64
	for _, label := range labels {
		res, err := conn.ExecContext(ctx, `
			INSERT INTO labels (content_id, name) VALUES (?, ?)
		`, contentID, label)
		if err != nil {
			return total, &domain.StorageError{Op: "insert labels", Err: err}
		}

		n, err := res.RowsAffected()
		if err != nil {
			return total, &domain.StorageError{Op: "insert labels", Err: err}
		}
		total += n
	}

	return total, nil
}

// DeleteLabels removes every label of a content.
func (s *Store) DeleteLabels(ctx context.Context, contentID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM labels WHERE content_id = ?", contentID)
	if err != nil {
		return 0, &domain.StorageError{Op: "delete labels", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "delete labels", Err: err}
	}
	return n, nil
}

// LabelsFor returns the labels of a content in insertion order.
func (s *Store) LabelsFor(ctx context.Context, contentID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM labels WHERE content_id = ? ORDER BY id
	`, contentID)
	if err != nil {
		return nil, &domain.StorageError{Op: "labels for", Err: err}
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &domain.StorageError{Op: "labels for", Err: err}
		}
		labels = append(labels, name)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "labels for", Err: err}
	}
	return labels, nil
}

// ==================== Raw Statements ====================

// Execute runs a write statement with bound args and returns rows affected.
func (s *Store) Execute(ctx context.Context, statement string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, &domain.StorageError{Op: "execute", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "execute", Err: err}
	}
	return n, nil
}

// Query runs a read statement with bound args. Text columns are returned as strings.
func (s *Store) Query(ctx context.Context, statement string, args ...any) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.StorageError{Op: "query", Err: err}
	}

	result := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, &domain.StorageError{Op: "query", Err: err}
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "query", Err: err}
	}
	return result, nil
}
