package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"heating_quoting/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EquipmentSQLite struct {
	db *sql.DB
}

func NewEquipmentSQLite(db *sql.DB) *EquipmentSQLite { return &EquipmentSQLite{db: db} }

var (
	_ Catalog      = (*EquipmentSQLite)(nil)
	_ CatalogAdmin = (*EquipmentSQLite)(nil)
)

const equipmentColumns = `id, category, brand, model, active, power_min_kw, power_max_kw,
	flow_min_m3h, flow_max_m3h, dn_size, fuel_type, connection_key, price, delivery_days`

// An absent range bound is unbounded in that direction.
const pairQuerySQL = `
	SELECT b.id, br.id, b.dn_size, b.connection_key, (b.price + br.price) AS pair_price
	FROM equipment b
	JOIN equipment br
	  ON br.category = 'burner'
	 AND br.active = 1
	 AND br.fuel_type = ?
	 AND br.connection_key = b.connection_key
	WHERE b.category = 'boiler'
	  AND b.active = 1
	  AND ? BETWEEN COALESCE(b.power_min_kw, 0) AND COALESCE(b.power_max_kw, 999999999)
	  AND ? BETWEEN COALESCE(br.power_min_kw, 0) AND COALESCE(br.power_max_kw, 999999999)
	ORDER BY pair_price ASC, b.rowid ASC
	LIMIT ?`

// FindBoilerBurnerPairs returns compatible boiler/burner pairs for the given
// power and fuel, cheapest combined price first, truncated to limit.
func (r *EquipmentSQLite) FindBoilerBurnerPairs(ctx context.Context, power decimal.Decimal, fuelType string, limit int) ([]models.BoilerBurnerPair, error) {
	// bind power as float so sqlite compares it numerically
	rows, err := r.db.QueryContext(ctx, pairQuerySQL, fuelType, power.InexactFloat64(), power.InexactFloat64(), limit)
	if err != nil {
		return nil, fmt.Errorf("query boiler/burner pairs: %w", err)
	}
	defer rows.Close()

	out := make([]models.BoilerBurnerPair, 0, limit)
	for rows.Next() {
		var (
			p       models.BoilerBurnerPair
			dn      sql.NullInt64
			connKey sql.NullString
		)
		if err := rows.Scan(&p.BoilerID, &p.BurnerID, &dn, &connKey, &p.PairPrice); err != nil {
			return nil, fmt.Errorf("scan boiler/burner pair: %w", err)
		}
		if dn.Valid {
			v := int(dn.Int64)
			p.DNSize = &v
		}
		p.ConnectionKey = connKey.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindCheapestPump returns the cheapest active pump whose flow range contains
// the given flow, or nil when no pump covers it.
func (r *EquipmentSQLite) FindCheapestPump(ctx context.Context, flow decimal.Decimal) (*models.Equipment, error) {
	q := `SELECT ` + equipmentColumns + ` FROM equipment
		 WHERE category = 'pump' AND active = 1
		   AND ? BETWEEN COALESCE(flow_min_m3h, 0) AND COALESCE(flow_max_m3h, 999999999)
		 ORDER BY price ASC LIMIT 1`
	return r.queryOne(ctx, q, flow.InexactFloat64())
}

// FindCheapestValve returns the cheapest active valve of the given DN class.
func (r *EquipmentSQLite) FindCheapestValve(ctx context.Context, dn int) (*models.Equipment, error) {
	q := `SELECT ` + equipmentColumns + ` FROM equipment
		 WHERE category = 'valve' AND active = 1 AND dn_size = ?
		 ORDER BY price ASC LIMIT 1`
	return r.queryOne(ctx, q, dn)
}

// FindCheapestFlowmeter returns the cheapest active flow-meter of the given DN class.
func (r *EquipmentSQLite) FindCheapestFlowmeter(ctx context.Context, dn int) (*models.Equipment, error) {
	q := `SELECT ` + equipmentColumns + ` FROM equipment
		 WHERE category = 'flowmeter' AND active = 1 AND dn_size = ?
		 ORDER BY price ASC LIMIT 1`
	return r.queryOne(ctx, q, dn)
}

// FindCheapestAutomation returns the cheapest active automation unit, if any.
func (r *EquipmentSQLite) FindCheapestAutomation(ctx context.Context) (*models.Equipment, error) {
	q := `SELECT ` + equipmentColumns + ` FROM equipment
		 WHERE category = 'automation' AND active = 1
		 ORDER BY price ASC LIMIT 1`
	return r.queryOne(ctx, q)
}

// FindByID fetches one item regardless of active flag. Returns (nil, nil) if absent.
func (r *EquipmentSQLite) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	q := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = ?`
	return r.queryOne(ctx, q, id)
}

// Create inserts a new catalog item and returns its id.
func (r *EquipmentSQLite) Create(ctx context.Context, e models.Equipment) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO equipment (id, category, brand, model, active, power_min_kw, power_max_kw,
			flow_min_m3h, flow_max_m3h, dn_size, fuel_type, connection_key, price, delivery_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, equipmentArgs(e)...)
	if err != nil {
		return "", fmt.Errorf("insert equipment %s/%s: %w", e.Brand, e.Model, err)
	}
	return e.ID, nil
}

// Update overwrites a catalog item. Returns false if the id does not exist.
func (r *EquipmentSQLite) Update(ctx context.Context, e models.Equipment) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE equipment SET category = ?, brand = ?, model = ?, active = ?,
			power_min_kw = ?, power_max_kw = ?, flow_min_m3h = ?, flow_max_m3h = ?,
			dn_size = ?, fuel_type = ?, connection_key = ?, price = ?, delivery_days = ?
		WHERE id = ?
	`, append(equipmentArgs(e)[1:], e.ID)...)
	if err != nil {
		return false, fmt.Errorf("update equipment %q: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Deactivate hides the item from all selection queries without deleting it:
// persisted candidates keep referencing it.
func (r *EquipmentSQLite) Deactivate(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE equipment SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate equipment %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns catalog items filtered by category and/or active flag, paged.
func (r *EquipmentSQLite) List(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]models.Equipment, error) {
	var (
		conds []string
		args  []any
	)
	if category != "" {
		conds = append(conds, "category = ?")
		args = append(args, category)
	}
	if activeOnly {
		conds = append(conds, "active = 1")
	}

	q := `SELECT ` + equipmentColumns + ` FROM equipment`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY category ASC, brand ASC, model ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	out := make([]models.Equipment, 0, limit)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryOne runs a single-row equipment query, mapping sql.ErrNoRows to (nil, nil).
func (r *EquipmentSQLite) queryOne(ctx context.Context, query string, args ...any) (*models.Equipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return scanEquipment(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(rs rowScanner) (*models.Equipment, error) {
	var (
		e        models.Equipment
		active   int
		dn       sql.NullInt64
		fuel     sql.NullString
		connKey  sql.NullString
		delivery sql.NullInt64
	)
	err := rs.Scan(&e.ID, &e.Category, &e.Brand, &e.Model, &active,
		&e.PowerMinKw, &e.PowerMaxKw, &e.FlowMinM3h, &e.FlowMaxM3h,
		&dn, &fuel, &connKey, &e.Price, &delivery)
	if err != nil {
		return nil, fmt.Errorf("scan equipment row: %w", err)
	}
	e.Active = active != 0
	if dn.Valid {
		v := int(dn.Int64)
		e.DNSize = &v
	}
	e.FuelType = fuel.String
	e.ConnectionKey = connKey.String
	e.DeliveryDays = int(delivery.Int64) // absent delivery counts as 0 days
	return &e, nil
}

// equipmentArgs orders bind values to match the insert column list.
func equipmentArgs(e models.Equipment) []any {
	var dn any
	if e.DNSize != nil {
		dn = *e.DNSize
	}
	return []any{
		e.ID, e.Category, e.Brand, e.Model, boolToInt(e.Active),
		nullDecimalArg(e.PowerMinKw), nullDecimalArg(e.PowerMaxKw),
		nullDecimalArg(e.FlowMinM3h), nullDecimalArg(e.FlowMaxM3h),
		dn, nullString(e.FuelType), nullString(e.ConnectionKey),
		e.Price.InexactFloat64(), e.DeliveryDays,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullDecimalArg binds an optional decimal as float so range comparisons in
// sqlite stay numeric rather than lexicographic.
func nullDecimalArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}
