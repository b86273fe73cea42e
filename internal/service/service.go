package service

import (
	"context"
	"time"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"
)

type Authorization interface {
	SignUp(username, password, role string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Selection assembles ranked configuration candidates for a heating spec.
// Pure read path: no side effects, safe for previews.
type Selection interface {
	SelectTopConfigurations(ctx context.Context, spec models.HeatingRequestSpec, topN int, includeAutomation bool) ([]models.ConfigCandidate, error)
}

// Candidates exposes the durable candidate set per heating request.
type Candidates interface {
	Generate(ctx context.Context, requestID string, topN int, includeAutomation bool) ([]models.ConfigCandidate, error)
	FindByRequest(ctx context.Context, requestID string, withComponents bool) ([]models.ConfigCandidate, error)
	Get(ctx context.Context, candidateID string, withComponents bool) (*models.ConfigCandidate, error)
	Delete(ctx context.Context, candidateID string) error
	Components(ctx context.Context, candidateID string) ([]models.ConfigComponent, error)
}

// Requests owns the heating-request lifecycle: created -> proposed -> selected.
type Requests interface {
	Create(ctx context.Context, req models.HeatingRequest) (*models.HeatingRequest, error)
	Get(ctx context.Context, id string) (*models.HeatingRequest, error)
	List(ctx context.Context, f models.RequestFilter) ([]models.HeatingRequest, error)
	UpdateParams(ctx context.Context, id string, p UpdateRequestParams) (*models.HeatingRequest, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	FixSelection(ctx context.Context, requestID, candidateID string) error
}

// Catalog is the manager-facing equipment administration surface.
type Catalog interface {
	CreateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error)
	DeactivateEquipment(ctx context.Context, id string) error
	ListEquipment(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]models.Equipment, error)
}

// Leads captures raw sales contacts from the public form.
type Leads interface {
	Register(ctx context.Context, l models.Lead) (string, error)
	List(ctx context.Context, limit, offset int) ([]models.Lead, error)
}

// AuthConfig carries the JWT settings loaded from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Selection
	Candidates
	Requests
	Catalog
	Leads
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	selection := NewSelectionService(repos.Catalog)
	return &Service{
		Selection:     selection,
		Candidates:    NewCandidateService(repos.Candidates, repos.Requests, selection),
		Requests:      NewRequestService(repos.Requests, repos.Candidates),
		Catalog:       NewCatalogService(repos.Catalog, repos.CatalogAdmin),
		Leads:         NewLeadService(repos.Leads),
		Authorization: NewAuthService(repos.Auth, authCfg),
	}
}
