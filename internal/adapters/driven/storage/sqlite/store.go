package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/xyspec-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite-backed spectrum library.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.xyspec/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".xyspec", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SpectrumStore returns a SpectrumStore interface backed by this store.
func (s *Store) SpectrumStore() driven.SpectrumStore {
	return &spectrumStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
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

// ==================== Spectrum Store ====================

// spectrumStore implements driven.SpectrumStore.
type spectrumStore struct {
	store *Store
}

var _ driven.SpectrumStore = (*spectrumStore)(nil)

// Save stores or updates a record.
func (s *spectrumStore) Save(ctx context.Context, record *domain.SpectrumRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}
	sp := record.Spectrum
	if len(sp.Waves) != len(sp.Amplitudes) {
		return fmt.Errorf("%w: waves and amplitudes differ in length", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO spectra (id, sample_id, format, source_path, imported_at, point_count, waves, amplitudes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sample_id = excluded.sample_id,
			format = excluded.format,
			source_path = excluded.source_path,
			imported_at = excluded.imported_at,
			point_count = excluded.point_count,
			waves = excluded.waves,
			amplitudes = excluded.amplitudes
	`, record.ID, sp.ID, record.Format, record.SourcePath,
		record.ImportedAt.UTC().Format(timeLayout), len(sp.Waves),
		float64SliceToBytes(sp.Waves), float64SliceToBytes(sp.Amplitudes))
	if err != nil {
		return fmt.Errorf("saving spectrum: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *spectrumStore) Get(ctx context.Context, id string) (*domain.SpectrumRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, sample_id, format, source_path, imported_at, point_count, waves, amplitudes
		FROM spectra WHERE id = ?
	`, id)
	return scanSpectrum(row)
}

// List returns all records ordered by import time, oldest first.
func (s *spectrumStore) List(ctx context.Context) ([]domain.SpectrumRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, sample_id, format, source_path, imported_at, point_count, waves, amplitudes
		FROM spectra ORDER BY imported_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying spectra: %w", err)
	}
	defer rows.Close()

	var records []domain.SpectrumRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanSpectrum(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spectra: %w", err)
	}
	return records, nil
}

// Delete removes a record.
func (s *spectrumStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM spectra WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting spectrum: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting spectrum: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helpers ====================

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSpectrum(row scanner) (*domain.SpectrumRecord, error) {
	var (
		record     domain.SpectrumRecord
		importedAt string
		count      int
		waves      []byte
		ampls      []byte
	)

	err := row.Scan(&record.ID, &record.Spectrum.ID, &record.Format, &record.SourcePath,
		&importedAt, &count, &waves, &ampls)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning spectrum: %w", err)
	}

	record.ImportedAt, err = time.Parse(timeLayout, importedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing imported_at: %w", err)
	}

	record.Spectrum.Waves = bytesToFloat64Slice(waves)
	record.Spectrum.Amplitudes = bytesToFloat64Slice(ampls)
	if len(record.Spectrum.Waves) != count || len(record.Spectrum.Amplitudes) != count {
		return nil, fmt.Errorf("spectrum %s: stored data does not hold %d points", record.ID, count)
	}

	return &record, nil
}

// float64SliceToBytes converts a float64 slice to bytes for BLOB storage.
func float64SliceToBytes(floats []float64) []byte {
	buf := make([]byte, len(floats)*8)
	for i, f := range floats {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// bytesToFloat64Slice converts bytes back to a float64 slice.
func bytesToFloat64Slice(data []byte) []float64 {
	floats := make([]float64, len(data)/8)
	for i := range floats {
		floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return floats
}
