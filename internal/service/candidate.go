package service

import (
	"context"
	"fmt"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"
)

type CandidateService struct {
	candidateRepo repository.Candidates
	requestRepo   repository.Requests
	selector      Selection
}

func NewCandidateService(candidateRepo repository.Candidates, requestRepo repository.Requests, selector Selection) *CandidateService {
	return &CandidateService{candidateRepo: candidateRepo, requestRepo: requestRepo, selector: selector}
}

// Generate runs selection for a stored request, replaces its persisted
// candidate set with the result and re-reads the stored rows so the caller
// gets stable identities and timestamps. The replace is one transaction:
// either the full new generation becomes visible or the previous one stays.
func (s *CandidateService) Generate(ctx context.Context, requestID string, topN int, includeAutomation bool) ([]models.ConfigCandidate, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
	}

	candidates, err := s.selector.SelectTopConfigurations(ctx, req.Spec(), topN, includeAutomation)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].RequestID = requestID
	}

	if err := s.candidateRepo.Replace(ctx, requestID, candidates); err != nil {
		return nil, err
	}

	stored, err := s.candidateRepo.FindByRequest(ctx, requestID, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.requestRepo.SetStatus(ctx, requestID, models.RequestStatusProposed); err != nil {
		return nil, err
	}
	return stored, nil
}

// FindByRequest lists persisted candidates for a request. With components
// withheld the summary fields are still populated: they were fixed at
// assembly time and stored on the candidate row.
func (s *CandidateService) FindByRequest(ctx context.Context, requestID string, withComponents bool) ([]models.ConfigCandidate, error) {
	exists, err := s.requestRepo.Exists(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
	}
	return s.candidateRepo.FindByRequest(ctx, requestID, withComponents)
}

func (s *CandidateService) Get(ctx context.Context, candidateID string, withComponents bool) (*models.ConfigCandidate, error) {
	c, err := s.candidateRepo.Get(ctx, candidateID, withComponents)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	return c, nil
}

func (s *CandidateService) Delete(ctx context.Context, candidateID string) error {
	deleted, err := s.candidateRepo.Delete(ctx, candidateID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	return nil
}

func (s *CandidateService) Components(ctx context.Context, candidateID string) ([]models.ConfigComponent, error) {
	exists, err := s.candidateRepo.Exists(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}
	return s.candidateRepo.Components(ctx, candidateID)
}
