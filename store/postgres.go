package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plus3/blockfall/tetris"
)

// DefaultProfile names the record used when none is configured.
const DefaultProfile = "default"

// PostgresStore keeps one lifetime record per profile and a history of
// finished games. The schema is created by Migrate.
type PostgresStore struct {
	pool    *pgxpool.Pool
	profile string
}

// NewPostgresStore connects to connString and stores records for profile.
func NewPostgresStore(ctx context.Context, connString, profile string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return &PostgresStore{pool: pool, profile: profile}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (tetris.Lifetime, error) {
	var (
		l                                    tetris.Lifetime
		highest, total, played, highestScore int64
	)
	row := s.pool.QueryRow(ctx,
		`SELECT highest_lines, total_lines_cleared, games_played, highest_score
		FROM lifetime_stats WHERE profile = $1`, s.profile)
	err := row.Scan(&highest, &total, &played, &highestScore)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return l, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return l, err
	case err != nil:
		return l, fmt.Errorf("load lifetime stats: %w", err)
	}
	l.HighestLines = uint(highest)
	l.TotalLinesCleared = uint(total)
	l.GamesPlayed = uint(played)
	l.HighestScore = uint(highestScore)
	return l, nil
}

func (s *PostgresStore) Save(ctx context.Context, l tetris.Lifetime) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO lifetime_stats (profile, highest_lines, total_lines_cleared, games_played, highest_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile) DO UPDATE SET
			highest_lines = EXCLUDED.highest_lines,
			total_lines_cleared = EXCLUDED.total_lines_cleared,
			games_played = EXCLUDED.games_played,
			highest_score = EXCLUDED.highest_score,
			updated_at = now()`,
		s.profile, int64(l.HighestLines), int64(l.TotalLinesCleared), int64(l.GamesPlayed), int64(l.HighestScore))
	if err != nil {
		return fmt.Errorf("save lifetime stats: %w", err)
	}
	return nil
}

// UpdateLifetime applies fn to the profile's record inside a transaction
// that holds the row lock, so concurrent games on one profile are all
// credited.
func (s *PostgresStore) UpdateLifetime(ctx context.Context, fn func(l *tetris.Lifetime)) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO lifetime_stats (profile) VALUES ($1) ON CONFLICT (profile) DO NOTHING`,
			s.profile); err != nil {
			return err
		}

		var highest, total, played, highestScore int64
		if err := tx.QueryRow(ctx,
			`SELECT highest_lines, total_lines_cleared, games_played, highest_score
			FROM lifetime_stats WHERE profile = $1 FOR UPDATE`, s.profile).
			Scan(&highest, &total, &played, &highestScore); err != nil {
			return err
		}
		l := tetris.Lifetime{
			HighestLines:      uint(highest),
			TotalLinesCleared: uint(total),
			GamesPlayed:       uint(played),
			HighestScore:      uint(highestScore),
		}
		fn(&l)

		_, err := tx.Exec(ctx,
			`UPDATE lifetime_stats SET
				highest_lines = $2,
				total_lines_cleared = $3,
				games_played = $4,
				highest_score = $5,
				updated_at = now()
			WHERE profile = $1`,
			s.profile, int64(l.HighestLines), int64(l.TotalLinesCleared), int64(l.GamesPlayed), int64(l.HighestScore))
		return err
	})
	if err != nil {
		return fmt.Errorf("update lifetime stats: %w", err)
	}
	return nil
}

// RecordGame appends a finished game to the history.
func (s *PostgresStore) RecordGame(ctx context.Context, g tetris.GameSummary) error {
	id, err := uuid.Parse(g.GameID)
	if err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (id, profile, level, score, lines_cleared, pieces, new_best)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, s.profile, int16(g.Level), int64(g.Stats.Score), int64(g.Stats.LinesCleared), g.Pieces, g.NewBest)
	if err != nil {
		return fmt.Errorf("record game: %w", err)
	}
	return nil
}

// RecentGames returns up to limit games for the profile, newest first.
func (s *PostgresStore) RecentGames(ctx context.Context, limit int) ([]tetris.GameSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, level, score, lines_cleared, pieces, new_best
		FROM games WHERE profile = $1
		ORDER BY finished_at DESC LIMIT $2`, s.profile, limit)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []tetris.GameSummary
	for rows.Next() {
		var (
			id           uuid.UUID
			level        int16
			score, lines int64
			pieces       int32
			g            tetris.GameSummary
		)
		if err := rows.Scan(&id, &level, &score, &lines, &pieces, &g.NewBest); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.GameID = id.String()
		g.Level = tetris.Level(level)
		g.Stats = tetris.Stats{Score: uint(score), LinesCleared: uint(lines)}
		g.Pieces = int(pieces)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	return s.Save(ctx, tetris.Lifetime{})
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
