package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"heating_quoting/internal/models"

	"github.com/google/uuid"
)

type LeadSQLite struct {
	db *sql.DB
}

func NewLeadSQLite(db *sql.DB) *LeadSQLite { return &LeadSQLite{db: db} }

var _ Leads = (*LeadSQLite)(nil)

// Create inserts a new lead and returns its id.
func (r *LeadSQLite) Create(ctx context.Context, l models.Lead) (string, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	} else {
		l.CreatedAt = l.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO leads (id, name, phone, email, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.ID, l.Name, nullString(l.Phone), nullString(l.Email), nullString(l.Comment), l.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("insert lead %q: %w", l.Name, err)
	}
	return l.ID, nil
}

// List returns leads newest first.
func (r *LeadSQLite) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, comment, created_at
		FROM leads ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := make([]models.Lead, 0, limit)
	for rows.Next() {
		var (
			l       models.Lead
			phone   sql.NullString
			email   sql.NullString
			comment sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Name, &phone, &email, &comment, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead row: %w", err)
		}
		l.Phone = phone.String
		l.Email = email.String
		l.Comment = comment.String
		l.CreatedAt = l.CreatedAt.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
