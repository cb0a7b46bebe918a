package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/db"
)

// timestampLayout keeps millisecond precision so entries sort in order.
const timestampLayout = "2006-01-02 15:04:05.000"

// maxValueLen truncates stored values; image data URLs can be megabytes.
const maxValueLen = 512

// Store provides CRUD operations for audit entries.
type Store struct {
	db     *db.DB
	logger zerolog.Logger
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB, logger zerolog.Logger) *Store {
	return &Store{db: database, logger: logger.With().Str("component", "audit").Logger()}
}

// Log inserts a new audit entry. If entry.ID is empty a UUID is generated.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var previousValue, newValue sql.NullString
	if entry.PreviousValue != "" {
		previousValue = sql.NullString{String: truncate(entry.PreviousValue), Valid: true}
	}
	if entry.NewValue != "" {
		newValue = sql.NullString{String: truncate(entry.NewValue), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (
			id, timestamp, actor, action, target, field, previous_value, new_value
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(timestampLayout),
		string(entry.Actor),
		string(entry.Action),
		entry.Target,
		entry.Field,
		previousValue,
		newValue,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// Record logs entry. Failures go to the log only, so an edit never fails
// because of the audit trail.
func (s *Store) Record(ctx context.Context, entry Entry) {
	if err := s.Log(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", string(entry.Action)).Msg("recording audit entry failed")
	}
}

// GetByID retrieves a single audit entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, actor, action, target, field, previous_value, new_value
		FROM audit_entries WHERE id = ?`, id)

	return scanInto(row)
}

// QueryFilter controls which audit entries are returned by Query.
type QueryFilter struct {
	Actor  ActorType
	Action Action
	Target string
	Since  *time.Time
	Limit  int
	Offset int
}

// Query returns audit entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Actor != "" {
		clauses = append(clauses, "actor = ?")
		args = append(args, string(filter.Actor))
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Target != "" {
		clauses = append(clauses, "target = ?")
		args = append(args, filter.Target)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(timestampLayout))
	}

	query := "SELECT id, timestamp, actor, action, target, field, previous_value, new_value FROM audit_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes all audit entries older than the given time.
// Returns the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM audit_entries WHERE timestamp < ?",
		before.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e                       Entry
		actor, action, ts       string
		previousValue, newValue sql.NullString
	)

	err := sc.Scan(&e.ID, &ts, &actor, &action, &e.Target, &e.Field, &previousValue, &newValue)
	if err != nil {
		return nil, err
	}

	e.Actor = ActorType(actor)
	e.Action = Action(action)

	for _, layout := range []string{timestampLayout, time.DateTime, time.RFC3339Nano} {
		if t, parseErr := time.Parse(layout, ts); parseErr == nil {
			e.Timestamp = t
			break
		}
	}

	e.PreviousValue = previousValue.String
	e.NewValue = newValue.String
	return &e, nil
}

func truncate(s string) string {
	if len(s) <= maxValueLen {
		return s
	}
	return s[:maxValueLen] + "…"
}
