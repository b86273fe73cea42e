package service

import (
	"context"
	"fmt"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"
)

type CatalogService struct {
	catalog repository.Catalog
	admin   repository.CatalogAdmin
}

func NewCatalogService(catalog repository.Catalog, admin repository.CatalogAdmin) *CatalogService {
	return &CatalogService{catalog: catalog, admin: admin}
}

func (s *CatalogService) CreateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error) {
	if err := validateEquipment(e); err != nil {
		return nil, err
	}
	e.ID = ""
	id, err := s.admin.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	return s.GetEquipment(ctx, id)
}

func (s *CatalogService) GetEquipment(ctx context.Context, id string) (*models.Equipment, error) {
	e, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}
	return e, nil
}

func (s *CatalogService) UpdateEquipment(ctx context.Context, e models.Equipment) (*models.Equipment, error) {
	if err := validateEquipment(e); err != nil {
		return nil, err
	}
	ok, err := s.admin.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEquipmentNotFound, e.ID)
	}
	return s.GetEquipment(ctx, e.ID)
}

// DeactivateEquipment removes the item from selection without breaking
// candidates that already reference it.
func (s *CatalogService) DeactivateEquipment(ctx context.Context, id string) error {
	ok, err := s.admin.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrEquipmentNotFound, id)
	}
	return nil
}

func (s *CatalogService) ListEquipment(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]models.Equipment, error) {
	if category != "" && !models.KnownCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidEquipment, category)
	}
	if limit <= 0 {
		limit = 50
	}
	return s.admin.List(ctx, category, activeOnly, limit, offset)
}

func validateEquipment(e models.Equipment) error {
	if !models.KnownCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEquipment, e.Category)
	}
	if e.Brand == "" || e.Model == "" {
		return fmt.Errorf("%w: brand and model are required", ErrInvalidEquipment)
	}
	if e.Price.Sign() <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidEquipment)
	}
	if e.FuelType != "" && !models.KnownFuelType(e.FuelType) {
		return fmt.Errorf("%w: unknown fuel type %q", ErrInvalidEquipment, e.FuelType)
	}
	if e.DeliveryDays < 0 {
		return fmt.Errorf("%w: delivery_days must not be negative", ErrInvalidEquipment)
	}
	return nil
}
