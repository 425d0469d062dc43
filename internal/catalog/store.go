package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/slidepack/internal/db"
)

// ErrNotFound is returned by GetByID for unknown ids.
var ErrNotFound = errors.New("catalog entry not found")

// Store provides persistence for history entries.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record inserts a new entry and returns it as stored. If entry.ID is empty
// a UUID is generated; a zero Timestamp is set to the current time.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	entry.Timestamp = entry.Timestamp.UTC().Truncate(time.Second)
	if entry.Slides == nil {
		entry.Slides = []string{}
	}

	slides, err := json.Marshal(entry.Slides)
	if err != nil {
		return Entry{}, fmt.Errorf("marshalling slide names: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO packages (
			id, timestamp, operation, project_id, project_name,
			slide_count, asset_count, source, source_digest, output, size_bytes, slides
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(time.DateTime),
		string(entry.Operation),
		entry.ProjectID,
		entry.ProjectName,
		entry.SlideCount,
		entry.AssetCount,
		entry.Source,
		entry.SourceDigest,
		entry.Output,
		entry.SizeBytes,
		string(slides),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting catalog entry: %w", err)
	}
	return entry, nil
}

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	e, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog entry: %w", err)
	}
	return e, nil
}

// QueryFilter controls which entries are returned by List.
type QueryFilter struct {
	Operation Operation
	ProjectID string
	Source    string
	Since     *time.Time
	Limit     int
	Offset    int
}

// List returns entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Operation != "" {
		clauses = append(clauses, "operation = ?")
		args = append(args, string(filter.Operation))
	}
	if filter.ProjectID != "" {
		clauses = append(clauses, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := selectColumns
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	} else if filter.Offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Previous returns the newest entry recorded for the same operation and
// source as e, or ErrNotFound when there is none.
func (s *Store) Previous(ctx context.Context, e Entry) (*Entry, error) {
	if e.Source == "" {
		return nil, ErrNotFound
	}
	entries, err := s.List(ctx, QueryFilter{Operation: e.Operation, Source: e.Source, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// DeleteBefore removes all entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM packages WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old catalog entries: %w", err)
	}
	return res.RowsAffected()
}

const selectColumns = `SELECT id, timestamp, operation, project_id, project_name,
	slide_count, asset_count, source, source_digest, output, size_bytes, slides FROM packages`

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e          Entry
		op, ts     string
		slidesJSON string
	)

	err := sc.Scan(
		&e.ID, &ts, &op, &e.ProjectID, &e.ProjectName,
		&e.SlideCount, &e.AssetCount, &e.Source, &e.SourceDigest, &e.Output, &e.SizeBytes, &slidesJSON,
	)
	if err != nil {
		return nil, err
	}

	e.Operation = Operation(op)
	if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
		e.Timestamp = t
	} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
		e.Timestamp = t.UTC()
	}
	if err := json.Unmarshal([]byte(slidesJSON), &e.Slides); err != nil || e.Slides == nil {
		e.Slides = []string{}
	}

	return &e, nil
}
