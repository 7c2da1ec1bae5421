package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists ledger rows in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordSplit stores a split pass. An empty ID is replaced by a new UUID; the
// stored run is returned.
func (s *Store) RecordSplit(ctx context.Context, run SplitRun) (SplitRun, error) {
	if run.ID == "" {
		run.ID = newID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO split_runs (id, source, chunk_count, block_count, blocks_per_chunk, context_blocks, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Chunks, run.Blocks, run.BlocksPerChunk, run.ContextBlocks, formatTime(run.CreatedAt),
	)
	if err != nil {
		return SplitRun{}, fmt.Errorf("insert split run: %w", err)
	}
	return run, nil
}

// LatestSplit returns the most recent split run, or nil when none exist.
func (s *Store) LatestSplit(ctx context.Context) (*SplitRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, chunk_count, block_count, blocks_per_chunk, context_blocks, created_at
         FROM split_runs ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	var (
		run     SplitRun
		created string
	)
	err := row.Scan(&run.ID, &run.Source, &run.Chunks, &run.Blocks, &run.BlocksPerChunk, &run.ContextBlocks, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest split: %w", err)
	}
	run.CreatedAt = parseTime(created)
	return &run, nil
}

// RecordValidation stores a chunk verdict, replacing any earlier verdict for
// the same split run and chunk.
func (s *Store) RecordValidation(ctx context.Context, verdict ChunkVerdict) error {
	if verdict.SplitID == "" {
		return errors.New("verdict requires a split id")
	}
	if verdict.CheckedAt.IsZero() {
		verdict.CheckedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunk_verdicts (split_id, chunk, run_id, valid, error_count, warning_count, empty_blocks, checked_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(split_id, chunk) DO UPDATE SET
            run_id = excluded.run_id,
            valid = excluded.valid,
            error_count = excluded.error_count,
            warning_count = excluded.warning_count,
            empty_blocks = excluded.empty_blocks,
            checked_at = excluded.checked_at`,
		verdict.SplitID, verdict.Chunk, verdict.RunID, boolToInt(verdict.Valid),
		verdict.Errors, verdict.Warnings, verdict.EmptyBlocks, formatTime(verdict.CheckedAt.UTC()),
	)
	if err != nil {
		return fmt.Errorf("upsert chunk verdict: %w", err)
	}
	return nil
}

// Verdicts lists the verdicts recorded for a split run in chunk order.
func (s *Store) Verdicts(ctx context.Context, splitID string) ([]ChunkVerdict, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT split_id, chunk, run_id, valid, error_count, warning_count, empty_blocks, checked_at
         FROM chunk_verdicts WHERE split_id = ? ORDER BY chunk`, splitID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []ChunkVerdict
	for rows.Next() {
		var (
			v       ChunkVerdict
			valid   int
			checked string
		)
		if err := rows.Scan(&v.SplitID, &v.Chunk, &v.RunID, &valid, &v.Errors, &v.Warnings, &v.EmptyBlocks, &checked); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Valid = valid != 0
		v.CheckedAt = parseTime(checked)
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

// RecordJoin stores a join pass.
func (s *Store) RecordJoin(ctx context.Context, run JoinRun) (JoinRun, error) {
	if run.ID == "" {
		run.ID = newID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO join_runs (id, split_id, output_path, chunk_count, block_count, empty_blocks, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, nullableString(run.SplitID), run.Output, run.Chunks, run.Blocks, run.EmptyBlocks, formatTime(run.CreatedAt),
	)
	if err != nil {
		return JoinRun{}, fmt.Errorf("insert join run: %w", err)
	}
	return run, nil
}

// LatestJoin returns the most recent join for splitID, or nil when none exist.
func (s *Store) LatestJoin(ctx context.Context, splitID string) (*JoinRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, COALESCE(split_id, ''), output_path, chunk_count, block_count, empty_blocks, created_at
         FROM join_runs WHERE split_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, splitID)
	var (
		run     JoinRun
		created string
	)
	err := row.Scan(&run.ID, &run.SplitID, &run.Output, &run.Chunks, &run.Blocks, &run.EmptyBlocks, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest join: %w", err)
	}
	run.CreatedAt = parseTime(created)
	return &run, nil
}

func newID() string {
	return uuid.NewString()
}

// timeLayout is fixed width so stored timestamps sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
