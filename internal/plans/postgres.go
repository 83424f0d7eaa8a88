package plans

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalog reads plans from PostgreSQL. An empty table is seeded with
// the default catalog at startup so a fresh database serves something.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(ctx context.Context, pool *pgxpool.Pool) (*PostgresCatalog, error) {
	if err := initPlanSchema(ctx, pool); err != nil {
		return nil, err
	}
	c := &PostgresCatalog{pool: pool}
	if err := c.seedIfEmpty(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func initPlanSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		data_allowance TEXT NOT NULL DEFAULT '',
		voice_minutes TEXT NOT NULL DEFAULT '',
		sms TEXT NOT NULL DEFAULT '',
		features JSONB NOT NULL DEFAULT '[]'::jsonb
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init plan schema: %w", err)
	}
	return nil
}

func (c *PostgresCatalog) seedIfEmpty(ctx context.Context) error {
	var n int64
	if err := c.pool.QueryRow(ctx, `SELECT count(*) FROM plans`).Scan(&n); err != nil {
		return fmt.Errorf("count plans: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, p := range SeedPlans() {
		features, err := json.Marshal(p.Features)
		if err != nil {
			return fmt.Errorf("marshal plan features: %w", err)
		}
		_, err = c.pool.Exec(ctx,
			`INSERT INTO plans (id, name, price, description, data_allowance, voice_minutes, sms, features)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Price, p.Description, p.DataAllowance, p.VoiceMinutes, p.SMS, features,
		)
		if err != nil {
			return fmt.Errorf("seed plan %q: %w", p.ID, err)
		}
	}
	return nil
}

func (c *PostgresCatalog) List(ctx context.Context) ([]Plan, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, name, price, description, data_allowance, voice_minutes, sms, features
		 FROM plans ORDER BY price, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var (
			p           Plan
			rawFeatures []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.DataAllowance, &p.VoiceMinutes, &p.SMS, &rawFeatures); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		if len(rawFeatures) > 0 {
			if err := json.Unmarshal(rawFeatures, &p.Features); err != nil {
				return nil, fmt.Errorf("decode plan features: %w", err)
			}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}
	return out, nil
}

func (c *PostgresCatalog) Close() error { return nil }
