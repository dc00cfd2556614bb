package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taoyao-code/ir-remote/internal/storage"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS ir_transmissions (
	id           TEXT PRIMARY KEY,
	sent_at      TIMESTAMPTZ NOT NULL,
	power        BOOLEAN NOT NULL,
	temperature  SMALLINT NOT NULL,
	half         BOOLEAN NOT NULL,
	fan_mode     TEXT NOT NULL,
	frame        TEXT NOT NULL,
	pulses       INTEGER NOT NULL,
	airtime_us   BIGINT NOT NULL,
	elapsed_us   BIGINT NOT NULL,
	success      BOOLEAN NOT NULL,
	error        TEXT
);
CREATE INDEX IF NOT EXISTS idx_ir_transmissions_sent_at ON ir_transmissions (sent_at DESC);`

// Repository 基于 PostgreSQL 的发射记录
type Repository struct {
	Pool *pgxpool.Pool
}

var _ storage.TransmissionLog = (*Repository)(nil)

// EnsureSchema 建表（幂等）
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.Pool.Exec(ctx, schemaSQL)
	return err
}

// Append 写入一条记录
func (r *Repository) Append(ctx context.Context, rec storage.TransmissionRecord) error {
	var errText *string
	if rec.Error != "" {
		errText = &rec.Error
	}
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO ir_transmissions (id, sent_at, power, temperature, half, fan_mode, frame, pulses, airtime_us, elapsed_us, success, error)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.At, rec.Power, rec.Temperature, rec.Half, rec.FanMode, rec.Frame,
		rec.Pulses, rec.Airtime.Microseconds(), rec.Elapsed.Microseconds(), rec.Success, errText)
	return err
}

// Recent 按发送时间倒序
func (r *Repository) Recent(ctx context.Context, limit int) ([]storage.TransmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT id, sent_at, power, temperature, half, fan_mode, frame, pulses, airtime_us, elapsed_us, success, COALESCE(error, '')
		 FROM ir_transmissions ORDER BY sent_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRecord)
}

func scanRecord(row pgx.CollectableRow) (storage.TransmissionRecord, error) {
	var (
		rec       storage.TransmissionRecord
		temp      int16
		pulses    int32
		airtimeUS int64
		elapsedUS int64
	)
	err := row.Scan(&rec.ID, &rec.At, &rec.Power, &temp, &rec.Half, &rec.FanMode, &rec.Frame,
		&pulses, &airtimeUS, &elapsedUS, &rec.Success, &rec.Error)
	if err != nil {
		return rec, err
	}
	rec.Temperature = int(temp)
	rec.Pulses = int(pulses)
	rec.Airtime = time.Duration(airtimeUS) * time.Microsecond
	rec.Elapsed = time.Duration(elapsedUS) * time.Microsecond
	return rec, nil
}
