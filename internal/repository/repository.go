package repository

import (
	"context"
	"database/sql"

	"heating_quoting/internal/models"

	"github.com/shopspring/decimal"
)

// Catalog is the read side of the equipment catalog. Every query filters
// active items only; "no match" is reported as (nil, nil), never as an error.
type Catalog interface {
	FindBoilerBurnerPairs(ctx context.Context, power decimal.Decimal, fuelType string, limit int) ([]models.BoilerBurnerPair, error)
	FindCheapestPump(ctx context.Context, flow decimal.Decimal) (*models.Equipment, error)
	FindCheapestValve(ctx context.Context, dn int) (*models.Equipment, error)
	FindCheapestFlowmeter(ctx context.Context, dn int) (*models.Equipment, error)
	FindCheapestAutomation(ctx context.Context) (*models.Equipment, error)
	FindByID(ctx context.Context, id string) (*models.Equipment, error)
}

// CatalogAdmin mutates equipment records (manager tooling).
type CatalogAdmin interface {
	Create(ctx context.Context, e models.Equipment) (string, error)
	Update(ctx context.Context, e models.Equipment) (bool, error)
	Deactivate(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]models.Equipment, error)
}

// Candidates is the durable store of configuration candidates per request.
type Candidates interface {
	FindByRequest(ctx context.Context, requestID string, withComponents bool) ([]models.ConfigCandidate, error)
	Get(ctx context.Context, candidateID string, withComponents bool) (*models.ConfigCandidate, error)
	// Replace atomically deletes every candidate owned by requestID and inserts
	// the given ones as new rows with fresh ids and timestamps.
	Replace(ctx context.Context, requestID string, candidates []models.ConfigCandidate) error
	Delete(ctx context.Context, candidateID string) (bool, error)
	Components(ctx context.Context, candidateID string) ([]models.ConfigComponent, error)
	Exists(ctx context.Context, candidateID string) (bool, error)
}

// Requests stores heating requests.
type Requests interface {
	Create(ctx context.Context, r models.HeatingRequest) error
	GetByID(ctx context.Context, id string) (*models.HeatingRequest, error)
	List(ctx context.Context, f models.RequestFilter) ([]models.HeatingRequest, error)
	Update(ctx context.Context, r models.HeatingRequest) (bool, error)
	SetStatus(ctx context.Context, id, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// Leads stores raw sales contacts.
type Leads interface {
	Create(ctx context.Context, l models.Lead) (string, error)
	List(ctx context.Context, limit, offset int) ([]models.Lead, error)
}

type Authorization interface {
	Create(username, hash, role string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Repository struct {
	Catalog      Catalog
	CatalogAdmin CatalogAdmin
	Candidates   Candidates
	Requests     Requests
	Leads        Leads
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	equipment := NewEquipmentSQLite(db)
	return &Repository{
		Catalog:      equipment,
		CatalogAdmin: equipment,
		Candidates:   NewCandidateSQLite(db),
		Requests:     NewRequestSQLite(db),
		Leads:        NewLeadSQLite(db),
		Auth:         NewUserRepository(db),
	}
}
