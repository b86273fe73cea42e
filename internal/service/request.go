package service

import (
	"context"
	"fmt"
	"time"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateRequestParams carries a partial heating-request update; nil fields
// keep their stored values.
type UpdateRequestParams struct {
	PowerKw     *decimal.Decimal
	SupplyTempC *decimal.Decimal
	ReturnTempC *decimal.Decimal
	FuelType    *string
	Notes       *string
}

type RequestService struct {
	requestRepo   repository.Requests
	candidateRepo repository.Candidates
}

func NewRequestService(requestRepo repository.Requests, candidateRepo repository.Candidates) *RequestService {
	return &RequestService{requestRepo: requestRepo, candidateRepo: candidateRepo}
}

// Create validates the parameters the same way the selection engine does and
// stores the request in status "created".
func (s *RequestService) Create(ctx context.Context, req models.HeatingRequest) (*models.HeatingRequest, error) {
	if err := validateSpec(req.Spec()); err != nil {
		return nil, err
	}
	req.ID = uuid.NewString()
	req.Status = models.RequestStatusCreated
	req.CreatedAt = time.Now().UTC()
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (*models.HeatingRequest, error) {
	return s.mustGet(ctx, id)
}

func (s *RequestService) List(ctx context.Context, f models.RequestFilter) ([]models.HeatingRequest, error) {
	if f.Status != "" && !models.KnownRequestStatus(f.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return s.requestRepo.List(ctx, f)
}

// UpdateParams merges the patch onto the stored request and re-validates the
// merged values before writing them back.
func (s *RequestService) UpdateParams(ctx context.Context, id string, p UpdateRequestParams) (*models.HeatingRequest, error) {
	req, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PowerKw != nil {
		req.PowerKw = *p.PowerKw
	}
	if p.SupplyTempC != nil {
		req.SupplyTempC = *p.SupplyTempC
	}
	if p.ReturnTempC != nil {
		req.ReturnTempC = *p.ReturnTempC
	}
	if p.FuelType != nil {
		req.FuelType = *p.FuelType
	}
	if p.Notes != nil {
		req.Notes = *p.Notes
	}

	if err := validateSpec(req.Spec()); err != nil {
		return nil, err
	}
	if _, err := s.requestRepo.Update(ctx, *req); err != nil {
		return nil, err
	}
	return s.mustGet(ctx, id)
}

func (s *RequestService) SetStatus(ctx context.Context, id, status string) error {
	if !models.KnownRequestStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	ok, err := s.requestRepo.SetStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	return nil
}

// Delete removes the request; persisted candidates cascade with it.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	deleted, err := s.requestRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	return nil
}

// FixSelection marks one generated candidate as the chosen configuration and
// moves the request to "selected". The candidate must belong to the request.
func (s *RequestService) FixSelection(ctx context.Context, requestID, candidateID string) error {
	exists, err := s.requestRepo.Exists(ctx, requestID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
	}

	cand, err := s.candidateRepo.Get(ctx, candidateID, false)
	if err != nil {
		return err
	}
	if cand == nil {
		return fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	if cand.RequestID != requestID {
		return fmt.Errorf("%w: candidate %s, request %s", ErrCandidateMismatch, candidateID, requestID)
	}

	if _, err := s.requestRepo.SetStatus(ctx, requestID, models.RequestStatusSelected); err != nil {
		return err
	}
	return nil
}

func (s *RequestService) mustGet(ctx context.Context, id string) (*models.HeatingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, id)
	}
	return req, nil
}
