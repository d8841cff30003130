package repository

import (
	"context"
	"database/sql"

	"dealscope/internal/catalog"
)

// dbtx is the statement surface shared by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DealRepo serves the canonical deal list and its summary statistics.
type DealRepo struct {
	db *sql.DB // nil when scoped to an open transaction
	q  dbtx
}

func NewDealRepo(db *sql.DB) *DealRepo { return &DealRepo{db: db, q: db} }

// WithTx returns a copy whose statements join the given transaction.
func (r *DealRepo) WithTx(tx *sql.Tx) *DealRepo { return &DealRepo{q: tx} }

const dealColumns = `id, data_receiver, data_aggregator, date, type, value_raw, value_min, value_max, value_unit, source_url`

// List returns the full deal list in stable id order. This is the read
// contract the catalog browser is built on; filtering happens in memory.
func (r *DealRepo) List(ctx context.Context) ([]catalog.Deal, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+dealColumns+` FROM deals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		codes, err := r.fetchCodes(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Codes = codes
	}
	return out, nil
}

func (r *DealRepo) Get(ctx context.Context, id int64) (*catalog.Deal, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+dealColumns+` FROM deals WHERE id = ?`, id)
	d, err := scanDeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	codes, err := r.fetchCodes(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Codes = codes
	return &d, nil
}

// Insert stores a new deal and its codes atomically, returning the
// assigned id. A db-backed repo opens its own transaction; a tx-scoped
// one joins the caller's.
func (r *DealRepo) Insert(ctx context.Context, d catalog.Deal) (int64, error) {
	if r.db != nil {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return 0, err
		}
		id, err := r.WithTx(tx).Insert(ctx, d)
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		return id, tx.Commit()
	}
	res, err := r.q.ExecContext(ctx, `
	INSERT INTO deals(
	 data_receiver, data_aggregator, date, type, value_raw, value_min, value_max,
	 value_unit, source_url, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		d.Receiver, d.Aggregator, d.Year, d.Type, d.ValueRaw, d.ValueMin, d.ValueMax,
		d.ValueUnit, d.SourceURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := r.replaceCodes(ctx, id, d.Codes); err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites an existing deal's fields and code set atomically.
func (r *DealRepo) Update(ctx context.Context, d catalog.Deal) error {
	if r.db != nil {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := r.WithTx(tx).Update(ctx, d); err != nil {
			_ = tx.Rollback()
			return err
		}
		return tx.Commit()
	}
	_, err := r.q.ExecContext(ctx, `
	UPDATE deals SET
	 data_receiver = ?, data_aggregator = ?, date = ?, type = ?, value_raw = ?,
	 value_min = ?, value_max = ?, value_unit = ?, source_url = ?,
	 updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`,
		d.Receiver, d.Aggregator, d.Year, d.Type, d.ValueRaw,
		d.ValueMin, d.ValueMax, d.ValueUnit, d.SourceURL, d.ID)
	if err != nil {
		return err
	}
	return r.replaceCodes(ctx, d.ID, d.Codes)
}

// Organizations returns every distinct organization name appearing in
// either role, sorted.
func (r *DealRepo) Organizations(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
	SELECT name FROM (
	 SELECT data_receiver AS name FROM deals
	 UNION
	 SELECT data_aggregator AS name FROM deals
	) ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Stats summarizes the catalog: per-year, per-type and per-code counts,
// the observed disclosed value range in millions (maximum buffered upward
// per the step grid), and the total count.
func (r *DealRepo) Stats(ctx context.Context) (catalog.Stats, error) {
	stats := catalog.Stats{
		DealsPerYear: map[int]int{},
		DealsPerType: map[string]int{},
		DealsPerCode: map[string]int{},
	}

	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&stats.Total); err != nil {
		return stats, err
	}

	rows, err := r.q.QueryContext(ctx, `SELECT date, COUNT(*) FROM deals GROUP BY date`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return stats, err
		}
		stats.DealsPerYear[year] = n
		if stats.YearMin == 0 || year < stats.YearMin {
			stats.YearMin = year
		}
		if year > stats.YearMax {
			stats.YearMax = year
		}
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	typeRows, err := r.q.QueryContext(ctx, `SELECT type, COUNT(*) FROM deals GROUP BY type`)
	if err != nil {
		return stats, err
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var typ string
		var n int
		if err := typeRows.Scan(&typ, &n); err != nil {
			return stats, err
		}
		stats.DealsPerType[typ] = n
	}
	if err := typeRows.Err(); err != nil {
		return stats, err
	}

	codeRows, err := r.q.QueryContext(ctx, `SELECT code, COUNT(*) FROM deal_codes GROUP BY code`)
	if err != nil {
		return stats, err
	}
	defer codeRows.Close()
	for codeRows.Next() {
		var code string
		var n int
		if err := codeRows.Scan(&code, &n); err != nil {
			return stats, err
		}
		stats.DealsPerCode[code] = n
	}
	if err := codeRows.Err(); err != nil {
		return stats, err
	}

	var minUnits, maxUnits sql.NullFloat64
	err = r.q.QueryRowContext(ctx, `
	SELECT MIN(COALESCE(value_min, value_max)), MAX(COALESCE(value_max, value_min))
	FROM deals
	WHERE value_min IS NOT NULL OR value_max IS NOT NULL`).Scan(&minUnits, &maxUnits)
	if err != nil {
		return stats, err
	}
	if minUnits.Valid {
		stats.MinMillions = minUnits.Float64 / 1e6
	}
	var rawMax float64
	if maxUnits.Valid {
		rawMax = maxUnits.Float64 / 1e6
	}
	stats.MaxMillions = catalog.BufferedMax(rawMax)

	return stats, nil
}

func (r *DealRepo) fetchCodes(ctx context.Context, dealID int64) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT code FROM deal_codes WHERE deal_id = ? ORDER BY code`, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *DealRepo) replaceCodes(ctx context.Context, dealID int64, codes []string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM deal_codes WHERE deal_id = ?`, dealID); err != nil {
		return err
	}
	for _, c := range codes {
		if _, err := r.q.ExecContext(ctx, `INSERT OR IGNORE INTO deal_codes(deal_id, code) VALUES(?, ?)`, dealID, c); err != nil {
			return err
		}
	}
	return nil
}

// scanDeal handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDeal(row scanner) (catalog.Deal, error) {
	var d catalog.Deal
	var vmin, vmax sql.NullInt64
	var unit, source sql.NullString
	if err := row.Scan(&d.ID, &d.Receiver, &d.Aggregator, &d.Year, &d.Type, &d.ValueRaw,
		&vmin, &vmax, &unit, &source); err != nil {
		return catalog.Deal{}, err
	}
	if vmin.Valid {
		d.ValueMin = &vmin.Int64
	}
	if vmax.Valid {
		d.ValueMax = &vmax.Int64
	}
	if unit.Valid {
		d.ValueUnit = &unit.String
	}
	if source.Valid {
		d.SourceURL = &source.String
	}
	return d, nil
}
