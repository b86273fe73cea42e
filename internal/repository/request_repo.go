package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"heating_quoting/internal/models"

	"github.com/google/uuid"
)

type RequestSQLite struct {
	db *sql.DB
}

func NewRequestSQLite(db *sql.DB) *RequestSQLite { return &RequestSQLite{db: db} }

var _ Requests = (*RequestSQLite)(nil)

const requestColumns = `id, customer_id, power_kw, t_supply_c, t_return_c, fuel_type, notes, status, created_at`

// Create inserts a new heating request. ID, status and timestamp are set here
// if the caller left them empty.
func (r *RequestSQLite) Create(ctx context.Context, req models.HeatingRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = models.RequestStatusCreated
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	} else {
		req.CreatedAt = req.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO heating_requests (id, customer_id, power_kw, t_supply_c, t_return_c, fuel_type, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, req.ID, nullString(req.CustomerID),
		req.PowerKw.InexactFloat64(), req.SupplyTempC.InexactFloat64(), req.ReturnTempC.InexactFloat64(),
		req.FuelType, nullString(req.Notes), req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert heating request %q: %w", req.ID, err)
	}
	return nil
}

// GetByID fetches one request. Returns (nil, nil) if absent.
func (r *RequestSQLite) GetByID(ctx context.Context, id string) (*models.HeatingRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM heating_requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select heating request %q: %w", id, err)
	}
	return req, nil
}

// List returns requests matching the filter, newest first.
func (r *RequestSQLite) List(ctx context.Context, f models.RequestFilter) ([]models.HeatingRequest, error) {
	var (
		conds []string
		args  []any
	)
	if f.CustomerID != "" {
		conds = append(conds, "customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.FuelType != "" {
		conds = append(conds, "fuel_type = ?")
		args = append(args, f.FuelType)
	}

	q := `SELECT ` + requestColumns + ` FROM heating_requests`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list heating requests: %w", err)
	}
	defer rows.Close()

	out := make([]models.HeatingRequest, 0, f.Limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable request parameters. Returns false if absent.
func (r *RequestSQLite) Update(ctx context.Context, req models.HeatingRequest) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE heating_requests
		SET power_kw = ?, t_supply_c = ?, t_return_c = ?, fuel_type = ?, notes = ?
		WHERE id = ?
	`, req.PowerKw.InexactFloat64(), req.SupplyTempC.InexactFloat64(), req.ReturnTempC.InexactFloat64(),
		req.FuelType, nullString(req.Notes), req.ID)
	if err != nil {
		return false, fmt.Errorf("update heating request %q: %w", req.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetStatus moves a request through its lifecycle. Returns false if absent.
func (r *RequestSQLite) SetStatus(ctx context.Context, id, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE heating_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, fmt.Errorf("set status of heating request %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a request; its candidates and their components cascade.
func (r *RequestSQLite) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM heating_requests WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete heating request %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RequestSQLite) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM heating_requests WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check heating request %q: %w", id, err)
	}
	return true, nil
}

func scanRequest(rs rowScanner) (*models.HeatingRequest, error) {
	var (
		req      models.HeatingRequest
		customer sql.NullString
		notes    sql.NullString
	)
	err := rs.Scan(&req.ID, &customer, &req.PowerKw, &req.SupplyTempC, &req.ReturnTempC,
		&req.FuelType, &notes, &req.Status, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	req.CustomerID = customer.String
	req.Notes = notes.String
	req.CreatedAt = req.CreatedAt.UTC()
	return &req, nil
}
