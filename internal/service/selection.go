package service

import (
	"context"
	"fmt"
	"sort"

	"heating_quoting/internal/models"
	"heating_quoting/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTopN is how many ranked candidates a caller gets unless it asks
	// for a different count.
	DefaultTopN = 5

	// pairFetchLimit bounds the pair query: enough candidates to produce a
	// clean top-N after ranking without scanning the whole catalog.
	pairFetchLimit = 20

	// flowScale is the fractional precision of the computed flow, m³/h.
	flowScale = 6
)

// flowFactor is the thermal-to-flow conversion constant for water-based
// heating loops: flow = 0.86 * power / (tSupply - tReturn).
var flowFactor = decimal.New(86, -2)

type SelectionService struct {
	catalog repository.Catalog
}

func NewSelectionService(catalog repository.Catalog) *SelectionService {
	return &SelectionService{catalog: catalog}
}

// SelectTopConfigurations assembles ranked equipment bundles for one heating
// spec. Side-effect free: safe to call repeatedly for previews.
//
// For every compatible boiler/burner pair (cheapest pair price first) it
// greedily picks the cheapest pump covering the required flow and the
// cheapest valve and flow-meter of the pair's DN class. A pair missing any
// mandatory slot is skipped, never reported as an error. Automation is
// appended when requested and available; its absence does not invalidate a
// bundle.
func (s *SelectionService) SelectTopConfigurations(ctx context.Context, spec models.HeatingRequestSpec, topN int, includeAutomation bool) ([]models.ConfigCandidate, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if topN < 1 {
		topN = DefaultTopN
	}

	deltaT := spec.SupplyTempC.Sub(spec.ReturnTempC)
	flow := flowFactor.Mul(spec.PowerKw).DivRound(deltaT, flowScale)

	pairs, err := s.catalog.FindBoilerBurnerPairs(ctx, spec.PowerKw, spec.FuelType, pairFetchLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.ConfigCandidate, 0, len(pairs))
	for _, pair := range pairs {
		// A boiler must carry a DN class, otherwise no valve line can be matched.
		if pair.DNSize == nil {
			continue
		}

		pump, err := s.catalog.FindCheapestPump(ctx, flow)
		if err != nil {
			return nil, err
		}
		valve, err := s.catalog.FindCheapestValve(ctx, *pair.DNSize)
		if err != nil {
			return nil, err
		}
		meter, err := s.catalog.FindCheapestFlowmeter(ctx, *pair.DNSize)
		if err != nil {
			return nil, err
		}
		if pump == nil || valve == nil || meter == nil {
			continue // incomplete bundle, not emitted
		}

		boiler, err := s.catalog.FindByID(ctx, pair.BoilerID)
		if err != nil {
			return nil, err
		}
		burner, err := s.catalog.FindByID(ctx, pair.BurnerID)
		if err != nil {
			return nil, err
		}
		if boiler == nil || burner == nil {
			continue
		}

		bundle := []*models.Equipment{boiler, burner, pump, valve, meter}

		if includeAutomation {
			auto, err := s.catalog.FindCheapestAutomation(ctx)
			if err != nil {
				return nil, err
			}
			if auto != nil {
				bundle = append(bundle, auto)
			}
		}

		candidates = append(candidates, assembleCandidate(pair, bundle))
	}

	// Price is the primary rank, delivery time the tie-break. The stable sort
	// keeps assembly order for fully equal candidates, so the result is
	// deterministic for a fixed catalog.
	sort.SliceStable(candidates, func(i, j int) bool {
		if c := candidates[i].TotalPrice.Cmp(candidates[j].TotalPrice); c != 0 {
			return c < 0
		}
		return candidates[i].MaxDeliveryDays < candidates[j].MaxDeliveryDays
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}

// assembleCandidate turns a resolved bundle into a priced candidate with one
// unit of each item.
func assembleCandidate(pair models.BoilerBurnerPair, bundle []*models.Equipment) models.ConfigCandidate {
	one := decimal.NewFromInt(1)

	components := make([]models.ConfigComponent, 0, len(bundle))
	total := decimal.Zero
	maxDelivery := 0
	for _, e := range bundle {
		subtotal := one.Mul(e.Price)
		components = append(components, models.ConfigComponent{
			EquipmentID: e.ID,
			Category:    e.Category,
			Brand:       e.Brand,
			Model:       e.Model,
			Qty:         one,
			UnitPrice:   e.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
		if e.DeliveryDays > maxDelivery {
			maxDelivery = e.DeliveryDays
		}
	}

	return models.ConfigCandidate{
		TotalPrice:      total,
		Currency:        models.DefaultCurrency,
		MaxDeliveryDays: maxDelivery,
		ConnectionKey:   pair.ConnectionKey,
		DNSize:          pair.DNSize,
		Components:      components,
	}
}

// validateSpec fails fast before any catalog access.
func validateSpec(spec models.HeatingRequestSpec) error {
	if spec.PowerKw.Sign() <= 0 {
		return fmt.Errorf("%w: power_kw must be greater than zero", ErrInvalidSpec)
	}
	if spec.SupplyTempC.Cmp(spec.ReturnTempC) <= 0 {
		return fmt.Errorf("%w: t_supply_c must be greater than t_return_c", ErrInvalidSpec)
	}
	if !models.KnownFuelType(spec.FuelType) {
		return fmt.Errorf("%w: fuel_type must be one of gas, diesel, other", ErrInvalidSpec)
	}
	return nil
}
