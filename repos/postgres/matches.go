package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/xerrors"

	"github.com/sgruwertal/dienst-service/pkg/matchdate"
)

const matchColumns = `id, opponent, date, match_date, time, location, team`

func scanMatch(row pgx.Row) (*Match, error) {
	var match Match
	var calendarDate *time.Time
	err := row.Scan(
		&match.ID,
		&match.Opponent,
		&match.Date,
		&calendarDate,
		&match.Time,
		&match.Location,
		&match.Team,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, xerrors.Errorf("failed to scan match: %w", err)
	}
	if calendarDate != nil {
		match.MatchDate = calendarDate.Format(matchdate.ISOLayout)
	}
	return &match, nil
}

// GetMatch reads a match by id.
func (s *Store) GetMatch(ctx context.Context, id int64) (*Match, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

// ListMatches returns all matches ordered by id.
func (s *Store) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY id`)
	if err != nil {
		return nil, xerrors.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// CreateMatch inserts a new match and fills in its id.
func (s *Store) CreateMatch(ctx context.Context, match *Match) error {
	var calendarDate any
	if match.MatchDate != "" {
		calendarDate = match.MatchDate
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO matches (opponent, date, match_date, time, location, team)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		match.Opponent, match.Date, calendarDate, match.Time, match.Location, match.Team,
	).Scan(&match.ID)
	if err != nil {
		return xerrors.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// UpdateMatch applies a partial admin edit and returns the updated row.
func (s *Store) UpdateMatch(ctx context.Context, id int64, update MatchUpdate) (*Match, error) {
	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Opponent != nil {
		add("opponent", *update.Opponent)
	}
	if update.Date != nil {
		add("date", *update.Date)
	}
	if update.MatchDate != nil {
		add("match_date", *update.MatchDate)
	}
	if update.Time != nil {
		add("time", *update.Time)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.ClearTeam {
		sets = append(sets, "team = NULL")
	} else if update.Team != nil {
		add("team", *update.Team)
	}

	if len(sets) == 0 {
		return nil, xerrors.New("no updates given")
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE matches SET %s WHERE id = $%d RETURNING `+matchColumns,
		strings.Join(sets, ", "), len(args),
	)
	return scanMatch(s.pool.QueryRow(ctx, query, args...))
}

// DeleteMatch removes a match and its slots in one transaction. Slots go
// first to satisfy the foreign key.
func (s *Store) DeleteMatch(ctx context.Context, id int64) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, xerrors.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM slots WHERE match_id = $1`, id); err != nil {
		return false, xerrors.Errorf("failed to delete slots of match %d: %w", id, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return false, xerrors.Errorf("failed to delete match %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, xerrors.Errorf("failed to commit match delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
