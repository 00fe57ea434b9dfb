package clientstore

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/db"

	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS client_storage (
    context_id TEXT        NOT NULL,
    key        TEXT        NOT NULL,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (context_id, key)
)`

type Postgres struct {
	db db.Querier
}

func NewPostgres(q db.Querier) *Postgres {
	return &Postgres{db: q}
}

// EnsureSchema creates the client_storage table when it is missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("ensure client_storage schema: %w", err)
	}
	return nil
}

func (p *Postgres) Storage(contextID string) Storage {
	return &postgresArea{db: p.db, id: contextID}
}

type postgresArea struct {
	db db.Querier
	id string
}

func (a *postgresArea) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := a.db.QueryRow(ctx, `
SELECT value
FROM client_storage
WHERE context_id = $1 AND key = $2
`, a.id, key).Scan(&value)

	if err == nil {
		return value, true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	return "", false, fmt.Errorf("get %s: %w", key, err)
}

func (a *postgresArea) SetItem(ctx context.Context, key, value string) error {
	_, err := a.db.Exec(ctx, `
INSERT INTO client_storage (context_id, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (context_id, key)
DO UPDATE SET
  value      = EXCLUDED.value,
  updated_at = now()
`, a.id, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (a *postgresArea) RemoveItem(ctx context.Context, key string) error {
	_, err := a.db.Exec(ctx, `DELETE FROM client_storage WHERE context_id = $1 AND key = $2`, a.id, key)
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (a *postgresArea) Clear(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `DELETE FROM client_storage WHERE context_id = $1`, a.id)
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
