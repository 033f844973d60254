package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Latest when nothing was recorded for the
// requested parameters.
var ErrNotFound = errors.New("store: no generation recorded")

// ErrDrift is wrapped by *DriftError.
var ErrDrift = errors.New("store: digest drift")

// Generation is one recorded table generation.
type Generation struct {
	ID        string    `json:"id"`
	AngleBits int       `json:"angle_precision_bits"`
	ValueBits int       `json:"value_precision_bits"`
	Digest    string    `json:"digest"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	Seq       int64     `json:"seq"`
}

// DriftError reports a digest that differs from the latest one recorded
// for the same parameters.
type DriftError struct {
	AngleBits int
	ValueBits int
	Recorded  Generation
	Digest    string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("store: digest %s for angle_precision_bits=%d value_precision_bits=%d differs from %s recorded as %s (seq %d)",
		e.Digest, e.AngleBits, e.ValueBits, e.Recorded.Digest, e.Recorded.ID, e.Recorded.Seq)
}

func (e *DriftError) Unwrap() error { return ErrDrift }

// Record inserts g and returns it with ID, CreatedAt and Seq filled in.
// An empty ID gets a fresh UUIDv7; a zero CreatedAt gets the current time.
func (s *Store) Record(ctx context.Context, g Generation) (Generation, error) {
	if g.ID == "" {
		g.ID = uuid.Must(uuid.NewV7()).String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	g.CreatedAt = g.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM generations
	`).Scan(&g.Seq); err != nil {
		return Generation{}, fmt.Errorf("record generation: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations
		(id, angle_bits, value_bits, digest, target, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID,
		g.AngleBits,
		g.ValueBits,
		g.Digest,
		g.Target,
		g.CreatedAt.Format(time.RFC3339Nano),
		g.Seq,
	)
	if err != nil {
		return Generation{}, fmt.Errorf("record generation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Generation{}, fmt.Errorf("record generation: commit: %w", err)
	}
	return g, nil
}

// Latest returns the most recent generation for the parameters, or
// ErrNotFound.
func (s *Store) Latest(ctx context.Context, angleBits, valueBits int) (Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, angle_bits, value_bits, digest, target, created_at, seq
		FROM generations
		WHERE angle_bits = ? AND value_bits = ?
		ORDER BY seq DESC
		LIMIT 1
	`, angleBits, valueBits)

	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Generation{}, fmt.Errorf("%w for angle_precision_bits=%d value_precision_bits=%d", ErrNotFound, angleBits, valueBits)
	}
	if err != nil {
		return Generation{}, fmt.Errorf("latest generation: %w", err)
	}
	return g, nil
}

// List returns up to limit generations, newest first. limit <= 0 returns
// all of them. The result is never nil.
func (s *Store) List(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, angle_bits, value_bits, digest, target, created_at, seq
		FROM generations
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	gens := []Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("list generations: %w", err)
		}
		gens = append(gens, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return gens, nil
}

// CheckDrift returns a *DriftError when the latest generation for the
// parameters has a different digest. Parameters never recorded pass.
func (s *Store) CheckDrift(ctx context.Context, angleBits, valueBits int, digest string) error {
	latest, err := s.Latest(ctx, angleBits, valueBits)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if latest.Digest != digest {
		return &DriftError{AngleBits: angleBits, ValueBits: valueBits, Recorded: latest, Digest: digest}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (Generation, error) {
	var g Generation
	var createdAt string
	if err := row.Scan(&g.ID, &g.AngleBits, &g.ValueBits, &g.Digest, &g.Target, &createdAt, &g.Seq); err != nil {
		return Generation{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Generation{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = t
	return g, nil
}
