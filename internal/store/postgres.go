package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/restoboard/restoboard/internal/kpi"
	"github.com/restoboard/restoboard/internal/models"
)

// PostgresStore is the production row store. Plain database/sql over the pgx
// driver; the unique key on (store_id, business_date) enforces the one-row-
// per-day invariant at the database, upserts replace.
type PostgresStore struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS daily_entries (
	store_id            TEXT NOT NULL,
	business_date       DATE NOT NULL,
	net_sales           DOUBLE PRECISION NOT NULL DEFAULT 0,
	labor_dollars       DOUBLE PRECISION NOT NULL DEFAULT 0,
	labor_hours         DOUBLE PRECISION NOT NULL DEFAULT 0,
	food_dollars        DOUBLE PRECISION NOT NULL DEFAULT 0,
	disposables_dollars DOUBLE PRECISION NOT NULL DEFAULT 0,
	voids_dollars       DOUBLE PRECISION NOT NULL DEFAULT 0,
	waste_dollars       DOUBLE PRECISION NOT NULL DEFAULT 0,
	customers           DOUBLE PRECISION NOT NULL DEFAULT 0,
	scheduled_hours     DOUBLE PRECISION,
	bump_time_minutes   DOUBLE PRECISION,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (store_id, business_date)
);
CREATE TABLE IF NOT EXISTS store_targets (
	store_id             TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	prime_max            DOUBLE PRECISION NOT NULL,
	labor_min            DOUBLE PRECISION,
	labor_max            DOUBLE PRECISION NOT NULL,
	food_disposables_max DOUBLE PRECISION NOT NULL,
	slph_min             DOUBLE PRECISION NOT NULL
);`

// OpenPostgres connects, pings and bootstraps the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) UpsertEntry(ctx context.Context, rec models.RawDailyRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_entries (
			store_id, business_date, net_sales, labor_dollars, labor_hours,
			food_dollars, disposables_dollars, voids_dollars, waste_dollars,
			customers, scheduled_hours, bump_time_minutes, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
		ON CONFLICT (store_id, business_date) DO UPDATE SET
			net_sales = EXCLUDED.net_sales,
			labor_dollars = EXCLUDED.labor_dollars,
			labor_hours = EXCLUDED.labor_hours,
			food_dollars = EXCLUDED.food_dollars,
			disposables_dollars = EXCLUDED.disposables_dollars,
			voids_dollars = EXCLUDED.voids_dollars,
			waste_dollars = EXCLUDED.waste_dollars,
			customers = EXCLUDED.customers,
			scheduled_hours = EXCLUDED.scheduled_hours,
			bump_time_minutes = EXCLUDED.bump_time_minutes,
			updated_at = now()`,
		rec.StoreID, kpi.Day(rec.BusinessDate), rec.NetSales, rec.LaborDollars, rec.LaborHours,
		rec.FoodDollars, rec.DisposablesDollars, rec.VoidsDollars, rec.WasteDollars,
		rec.Customers, nullable(rec.ScheduledHours), nullable(rec.BumpTimeMinutes))
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) EntriesInRange(ctx context.Context, storeID string, from, to time.Time) ([]models.RawDailyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT store_id, business_date, net_sales, labor_dollars, labor_hours,
		       food_dollars, disposables_dollars, voids_dollars, waste_dollars,
		       customers, scheduled_hours, bump_time_minutes
		FROM daily_entries
		WHERE store_id = $1 AND business_date BETWEEN $2 AND $3
		ORDER BY business_date`,
		storeID, kpi.Day(from), kpi.Day(to))
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []models.RawDailyRecord
	for rows.Next() {
		var r models.RawDailyRecord
		var sched, bump sql.NullFloat64
		if err := rows.Scan(&r.StoreID, &r.BusinessDate, &r.NetSales, &r.LaborDollars, &r.LaborHours,
			&r.FoodDollars, &r.DisposablesDollars, &r.VoidsDollars, &r.WasteDollars,
			&r.Customers, &sched, &bump); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		r.BusinessDate = kpi.Day(r.BusinessDate)
		if sched.Valid {
			r.ScheduledHours = &sched.Float64
		}
		if bump.Valid {
			r.BumpTimeMinutes = &bump.Float64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Targets(ctx context.Context, storeID string) (models.StoreTargets, error) {
	var t models.StoreTargets
	var laborMin sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT store_id, name, prime_max, labor_min, labor_max, food_disposables_max, slph_min
		FROM store_targets WHERE store_id = $1`, storeID).
		Scan(&t.StoreID, &t.Name, &t.PrimeMax, &laborMin, &t.LaborMax, &t.FoodDisposablesMax, &t.SLPHMin)
	if err == sql.ErrNoRows {
		return models.StoreTargets{}, ErrUnknownStore
	}
	if err != nil {
		return models.StoreTargets{}, fmt.Errorf("query targets: %w", err)
	}
	if laborMin.Valid {
		t.LaborMin = &laborMin.Float64
	}
	return t, nil
}

func (s *PostgresStore) AllTargets(ctx context.Context) ([]models.StoreTargets, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT store_id, name, prime_max, labor_min, labor_max, food_disposables_max, slph_min
		FROM store_targets ORDER BY store_id`)
	if err != nil {
		return nil, fmt.Errorf("query all targets: %w", err)
	}
	defer rows.Close()

	var out []models.StoreTargets
	for rows.Next() {
		var t models.StoreTargets
		var laborMin sql.NullFloat64
		if err := rows.Scan(&t.StoreID, &t.Name, &t.PrimeMax, &laborMin, &t.LaborMax, &t.FoodDisposablesMax, &t.SLPHMin); err != nil {
			return nil, fmt.Errorf("scan targets: %w", err)
		}
		if laborMin.Valid {
			t.LaborMin = &laborMin.Float64
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveTargets(ctx context.Context, t models.StoreTargets) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_targets (store_id, name, prime_max, labor_min, labor_max, food_disposables_max, slph_min)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (store_id) DO UPDATE SET
			name = EXCLUDED.name,
			prime_max = EXCLUDED.prime_max,
			labor_min = EXCLUDED.labor_min,
			labor_max = EXCLUDED.labor_max,
			food_disposables_max = EXCLUDED.food_disposables_max,
			slph_min = EXCLUDED.slph_min`,
		t.StoreID, t.Name, t.PrimeMax, nullable(t.LaborMin), t.LaborMax, t.FoodDisposablesMax, t.SLPHMin)
	if err != nil {
		return fmt.Errorf("save targets: %w", err)
	}
	return nil
}

func nullable(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
