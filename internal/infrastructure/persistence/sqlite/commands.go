package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"papobot/internal/domain"
)

// CommandStore persiste os comandos custom criados pelo chat.
type CommandStore struct {
	db *sql.DB
}

var _ domain.CustomCommandRepository = (*CommandStore)(nil)

func NewCommandStore(dbPath string) (*CommandStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: caminho do banco vazio")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: criando diretório: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &CommandStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS custom_commands (
	name TEXT PRIMARY KEY,
	response TEXT NOT NULL,
	aliases TEXT,
	platforms TEXT,
	updated_at TIMESTAMP NOT NULL
);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: migrate custom_commands: %w", err)
	}
	return nil
}

func (s *CommandStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *CommandStore) UpsertCustomCommand(ctx context.Context, cmd *domain.CustomCommand) error {
	if cmd == nil {
		return fmt.Errorf("sqlite: custom command nil")
	}

	if cmd.UpdatedAt.IsZero() {
		cmd.UpdatedAt = time.Now().UTC()
	}

	const stmt = `
INSERT INTO custom_commands (name, response, aliases, platforms, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	response=excluded.response,
	aliases=excluded.aliases,
	platforms=excluded.platforms,
	updated_at=excluded.updated_at;
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		cmd.Name,
		cmd.Response,
		encodeStringSlice(cmd.Aliases),
		encodePlatforms(cmd.Platforms),
		cmd.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upsert custom command: %w", err)
	}

	return nil
}

func (s *CommandStore) GetCustomCommand(ctx context.Context, name string) (*domain.CustomCommand, error) {
	const query = `
SELECT name, response, aliases, platforms, updated_at
FROM custom_commands
WHERE LOWER(name) = LOWER(?)
LIMIT 1;
`

	row := s.db.QueryRowContext(ctx, query, name)

	var record domain.CustomCommand
	var aliasesRaw, platformsRaw sql.NullString
	var updatedAt sql.NullTime

	if err := row.Scan(&record.Name, &record.Response, &aliasesRaw, &platformsRaw, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sqlite: get custom command: %w", err)
	}

	record.Aliases = decodeStringSlice(aliasesRaw.String)
	record.Platforms = decodePlatforms(platformsRaw.String)
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

func (s *CommandStore) ListCustomCommands(ctx context.Context) ([]*domain.CustomCommand, error) {
	const query = `
SELECT name, response, aliases, platforms, updated_at
FROM custom_commands;
`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list custom commands: %w", err)
	}
	defer rows.Close()

	var cmds []*domain.CustomCommand
	for rows.Next() {
		var record domain.CustomCommand
		var aliasesRaw, platformsRaw sql.NullString
		var updatedAt sql.NullTime

		if err := rows.Scan(&record.Name, &record.Response, &aliasesRaw, &platformsRaw, &updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan custom command: %w", err)
		}

		record.Aliases = decodeStringSlice(aliasesRaw.String)
		record.Platforms = decodePlatforms(platformsRaw.String)
		record.UpdatedAt = updatedAt.Time

		cmds = append(cmds, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list custom command rows: %w", err)
	}

	return cmds, nil
}

func (s *CommandStore) DeleteCustomCommand(ctx context.Context, name string) error {
	if s.db == nil {
		return fmt.Errorf("sqlite: banco não inicializado")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM custom_commands WHERE LOWER(name) = LOWER(?)`, name)
	if err != nil {
		return fmt.Errorf("sqlite: delete custom command: %w", err)
	}
	return nil
}

func encodeStringSlice(values []string) string {
	if len(values) == 0 {
		return ""
	}
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeStringSlice(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func encodePlatforms(values []domain.Platform) string {
	if len(values) == 0 {
		return ""
	}
	strs := make([]string, 0, len(values))
	for _, v := range values {
		strs = append(strs, string(v))
	}
	return encodeStringSlice(strs)
}

func decodePlatforms(raw string) []domain.Platform {
	strs := decodeStringSlice(raw)
	if len(strs) == 0 {
		return nil
	}
	out := make([]domain.Platform, 0, len(strs))
	for _, s := range strs {
		out = append(out, domain.Platform(s))
	}
	return out
}
