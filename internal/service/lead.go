package service

import (
	"context"
	"fmt"
	"strings"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"
)

type LeadService struct {
	leadRepo repository.Leads
}

func NewLeadService(leadRepo repository.Leads) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// Register stores a public-form contact. A name plus at least one way to
// reach back is required.
func (s *LeadService) Register(ctx context.Context, l models.Lead) (string, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Phone = strings.TrimSpace(l.Phone)
	l.Email = strings.TrimSpace(l.Email)

	if l.Name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidLead)
	}
	if l.Phone == "" && l.Email == "" {
		return "", fmt.Errorf("%w: phone or email is required", ErrInvalidLead)
	}
	return s.leadRepo.Create(ctx, l)
}

func (s *LeadService) List(ctx context.Context, limit, offset int) ([]models.Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.leadRepo.List(ctx, limit, offset)
}
