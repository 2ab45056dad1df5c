package combatlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	engerr "github.com/KirkDiggler/rp-combat-engine/internal/errors"
	"github.com/KirkDiggler/rp-combat-engine/internal/repositories/combatlog/migrations"
)

const uniqueViolation = "23505"

// PostgresRepository stores the combat log in PostgreSQL
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresRepository creates a combat log backed by the given pool
func NewPostgresRepository(pool *pgxpool.Pool, logger *slog.Logger) *PostgresRepository {
	if pool == nil {
		panic("pgx pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRepository{
		pool:   pool,
		logger: logger.With("component", "combat_log"),
	}
}

// Connect opens a pool and verifies the database is reachable
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// RunMigrations applies the embedded combat log migrations on the given DSN
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Append stores a new entry
func (r *PostgresRepository) Append(ctx context.Context, entry *Entry) error {
	if err := validate(entry); err != nil {
		return err
	}

	var result []byte
	if len(entry.Result) > 0 {
		result = entry.Result
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO combat_log (id, character_id, target_id, kind, message, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.CharacterID, entry.TargetID, string(entry.Kind), entry.Message, result, entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return engerr.AlreadyExistsf("combat log entry '%s' already exists", entry.ID).
				WithMeta("entry_id", entry.ID)
		}
		return fmt.Errorf("inserting combat log entry %s: %w", entry.ID, err)
	}

	r.logger.Debug("combat log entry appended",
		"entry_id", entry.ID,
		"character_id", entry.CharacterID,
		"kind", entry.Kind)

	return nil
}

// ListByCharacter returns the newest entries involving the character, newest first
func (r *PostgresRepository) ListByCharacter(ctx context.Context, characterID string, limit int) ([]*Entry, error) {
	if characterID == "" {
		return nil, engerr.InvalidArgument("character ID is required")
	}

	query := `
		SELECT id, character_id, target_id, kind, message, result, created_at
		FROM combat_log
		WHERE character_id = $1 OR target_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, characterID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying combat log for character %s: %w", characterID, err)
	}
	defer rows.Close()

	entries := make([]*Entry, 0, normalizeLimit(limit))
	for rows.Next() {
		var (
			entry  Entry
			kind   string
			result []byte
		)
		if err := rows.Scan(&entry.ID, &entry.CharacterID, &entry.TargetID, &kind,
			&entry.Message, &result, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning combat log row: %w", err)
		}
		entry.Kind = Kind(kind)
		if len(result) > 0 {
			entry.Result = result
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating combat log rows: %w", err)
	}

	return entries, nil
}
