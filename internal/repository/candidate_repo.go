package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heating_quoting/internal/models"

	"github.com/google/uuid"
)

type CandidateSQLite struct {
	db *sql.DB
}

func NewCandidateSQLite(db *sql.DB) *CandidateSQLite { return &CandidateSQLite{db: db} }

var _ Candidates = (*CandidateSQLite)(nil)

const candidateColumns = `id, request_id, total_price, currency, max_delivery_days, connection_key, dn_size, created_at`

// FindByRequest returns the candidates owned by a request ordered by
// (total_price, created_at). Insertion order breaks remaining ties, so the
// result is stable for a fixed stored set.
func (r *CandidateSQLite) FindByRequest(ctx context.Context, requestID string, withComponents bool) ([]models.ConfigCandidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM config_candidates
		 WHERE request_id = ?
		 ORDER BY total_price ASC, created_at ASC, rowid ASC`
	rows, err := r.db.QueryContext(ctx, q, requestID)
	if err != nil {
		return nil, fmt.Errorf("query candidates for request %q: %w", requestID, err)
	}
	defer rows.Close()

	out := make([]models.ConfigCandidate, 0, 8)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if withComponents {
		for i := range out {
			comps, err := r.Components(ctx, out[i].ID)
			if err != nil {
				return nil, err
			}
			out[i].Components = comps
		}
	}
	return out, nil
}

// Get fetches one candidate. Returns (nil, nil) if absent.
func (r *CandidateSQLite) Get(ctx context.Context, candidateID string, withComponents bool) (*models.ConfigCandidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM config_candidates WHERE id = ?`
	rows, err := r.db.QueryContext(ctx, q, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query candidate %q: %w", candidateID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	c, err := scanCandidate(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if withComponents {
		comps, err := r.Components(ctx, candidateID)
		if err != nil {
			return nil, err
		}
		c.Components = comps
	}
	return c, nil
}

// Replace deletes every candidate (components cascade) owned by requestID and
// inserts the given ones as new rows, all inside one transaction. A failure
// rolls back to the previous set; repeating the call with the same input
// leaves the store in the same observable state.
func (r *CandidateSQLite) Replace(ctx context.Context, requestID string, candidates []models.ConfigCandidate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM config_candidates WHERE request_id = ?`, requestID); err != nil {
		return fmt.Errorf("delete candidates for request %q: %w", requestID, err)
	}

	now := time.Now().UTC()
	for _, c := range candidates {
		id := uuid.NewString()
		var dn any
		if c.DNSize != nil {
			dn = *c.DNSize
		}
		currency := c.Currency
		if currency == "" {
			currency = models.DefaultCurrency
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO config_candidates (id, request_id, total_price, currency, max_delivery_days, connection_key, dn_size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, requestID, c.TotalPrice.InexactFloat64(), currency, c.MaxDeliveryDays, nullString(c.ConnectionKey), dn, now)
		if err != nil {
			return fmt.Errorf("insert candidate for request %q: %w", requestID, err)
		}

		for pos, comp := range c.Components {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO config_components (candidate_id, equipment_id, category, brand, model, qty, unit_price, subtotal, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, id, comp.EquipmentID, comp.Category, comp.Brand, comp.Model,
				comp.Qty.InexactFloat64(), comp.UnitPrice.InexactFloat64(), comp.Subtotal.InexactFloat64(), pos)
			if err != nil {
				return fmt.Errorf("insert component %q for candidate %q: %w", comp.EquipmentID, id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace for request %q: %w", requestID, err)
	}
	return nil
}

// Delete removes one candidate and its components. Returns false if absent.
func (r *CandidateSQLite) Delete(ctx context.Context, candidateID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM config_candidates WHERE id = ?`, candidateID)
	if err != nil {
		return false, fmt.Errorf("delete candidate %q: %w", candidateID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Components returns a candidate's line items in assembly order.
func (r *CandidateSQLite) Components(ctx context.Context, candidateID string) ([]models.ConfigComponent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT equipment_id, category, brand, model, qty, unit_price, subtotal
		FROM config_components WHERE candidate_id = ? ORDER BY position ASC
	`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("query components for candidate %q: %w", candidateID, err)
	}
	defer rows.Close()

	out := make([]models.ConfigComponent, 0, 6)
	for rows.Next() {
		var c models.ConfigComponent
		if err := rows.Scan(&c.EquipmentID, &c.Category, &c.Brand, &c.Model, &c.Qty, &c.UnitPrice, &c.Subtotal); err != nil {
			return nil, fmt.Errorf("scan component row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CandidateSQLite) Exists(ctx context.Context, candidateID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM config_candidates WHERE id = ?`, candidateID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check candidate %q: %w", candidateID, err)
	}
	return true, nil
}

func scanCandidate(rs rowScanner) (*models.ConfigCandidate, error) {
	var (
		c       models.ConfigCandidate
		connKey sql.NullString
		dn      sql.NullInt64
	)
	err := rs.Scan(&c.ID, &c.RequestID, &c.TotalPrice, &c.Currency, &c.MaxDeliveryDays, &connKey, &dn, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan candidate row: %w", err)
	}
	c.ConnectionKey = connKey.String
	if dn.Valid {
		v := int(dn.Int64)
		c.DNSize = &v
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
