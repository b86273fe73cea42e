package service

import (
	"context"
	"errors"
	"testing"

	"heating_quoting/internal/models"

	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	pairs      []models.BoilerBurnerPair
	items      map[string]*models.Equipment
	pump       *models.Equipment
	valves     map[int]*models.Equipment
	meters     map[int]*models.Equipment
	automation *models.Equipment

	pairErr error

	lastPairPower decimal.Decimal
	lastPairFuel  string
	lastPairLimit int
	lastPumpFlow  decimal.Decimal
	pumpCalls     int
}

func (f *fakeCatalog) FindBoilerBurnerPairs(ctx context.Context, power decimal.Decimal, fuelType string, limit int) ([]models.BoilerBurnerPair, error) {
	f.lastPairPower = power
	f.lastPairFuel = fuelType
	f.lastPairLimit = limit
	return f.pairs, f.pairErr
}

func (f *fakeCatalog) FindCheapestPump(ctx context.Context, flow decimal.Decimal) (*models.Equipment, error) {
	f.pumpCalls++
	f.lastPumpFlow = flow
	return f.pump, nil
}

func (f *fakeCatalog) FindCheapestValve(ctx context.Context, dn int) (*models.Equipment, error) {
	return f.valves[dn], nil
}

func (f *fakeCatalog) FindCheapestFlowmeter(ctx context.Context, dn int) (*models.Equipment, error) {
	return f.meters[dn], nil
}

func (f *fakeCatalog) FindCheapestAutomation(ctx context.Context) (*models.Equipment, error) {
	return f.automation, nil
}

func (f *fakeCatalog) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	return f.items[id], nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func validSpec() models.HeatingRequestSpec {
	return models.HeatingRequestSpec{
		PowerKw:     dec("500"),
		SupplyTempC: dec("95"),
		ReturnTempC: dec("70"),
		FuelType:    models.FuelGas,
	}
}

// gasCatalog builds a catalog with a single viable DN80 gas pair plus
// peripherals matching the reference quoting scenario.
func gasCatalog() *fakeCatalog {
	boiler := &models.Equipment{
		ID: "b1", Category: models.CategoryBoiler, Brand: "Buderus", Model: "SK755",
		ConnectionKey: "G80", DNSize: intPtr(80), Price: dec("600000"), DeliveryDays: 30,
	}
	burner := &models.Equipment{
		ID: "br1", Category: models.CategoryBurner, Brand: "Weishaupt", Model: "WM-G20",
		FuelType: models.FuelGas, ConnectionKey: "G80", Price: dec("350000"), DeliveryDays: 21,
	}
	return &fakeCatalog{
		pairs: []models.BoilerBurnerPair{{
			BoilerID: "b1", BurnerID: "br1", PairPrice: dec("950000"),
			ConnectionKey: "G80", DNSize: intPtr(80),
		}},
		items: map[string]*models.Equipment{"b1": boiler, "br1": burner},
		pump: &models.Equipment{
			ID: "p1", Category: models.CategoryPump, Brand: "Grundfos", Model: "TP50",
			Price: dec("120000"), DeliveryDays: 14,
		},
		valves: map[int]*models.Equipment{80: {
			ID: "v1", Category: models.CategoryValve, Brand: "Danfoss", Model: "VF80",
			DNSize: intPtr(80), Price: dec("80000"), DeliveryDays: 7,
		}},
		meters: map[int]*models.Equipment{80: {
			ID: "m1", Category: models.CategoryFlowmeter, Brand: "Siemens", Model: "MAG80",
			DNSize: intPtr(80), Price: dec("60000"), DeliveryDays: 10,
		}},
		automation: &models.Equipment{
			ID: "a1", Category: models.CategoryAutomation, Brand: "Entromatic", Model: "E100",
			Price: dec("35000"), DeliveryDays: 5,
		},
	}
}

func TestSelection_ReferenceScenario_WithAutomation(t *testing.T) {
	catalog := gasCatalog()
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	if want := "17.2"; !catalog.lastPumpFlow.Equal(dec(want)) {
		t.Fatalf("pump flow = %s, want %s", catalog.lastPumpFlow, want)
	}
	if catalog.lastPumpFlow.Exponent() != -6 {
		t.Fatalf("flow exponent = %d, want -6 (six fractional digits)", catalog.lastPumpFlow.Exponent())
	}
	if catalog.lastPairLimit != 20 {
		t.Fatalf("pair fetch limit = %d, want 20", catalog.lastPairLimit)
	}

	c := got[0]
	if !c.TotalPrice.Equal(dec("1245000")) {
		t.Fatalf("total price = %s, want 1245000", c.TotalPrice)
	}
	if c.Currency != models.DefaultCurrency {
		t.Fatalf("currency = %q, want %q", c.Currency, models.DefaultCurrency)
	}
	if c.MaxDeliveryDays != 30 {
		t.Fatalf("max delivery = %d, want 30", c.MaxDeliveryDays)
	}
	if c.ConnectionKey != "G80" {
		t.Fatalf("connection key = %q, want G80", c.ConnectionKey)
	}
	if c.DNSize == nil || *c.DNSize != 80 {
		t.Fatalf("dn size = %v, want 80", c.DNSize)
	}
	if len(c.Components) != 6 {
		t.Fatalf("component count = %d, want 6", len(c.Components))
	}
	assertBundleShape(t, c)
}

func TestSelection_ReferenceScenario_WithoutAutomation(t *testing.T) {
	svc := NewSelectionService(gasCatalog())

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if !got[0].TotalPrice.Equal(dec("1210000")) {
		t.Fatalf("total price = %s, want 1210000", got[0].TotalPrice)
	}
	if len(got[0].Components) != 5 {
		t.Fatalf("component count = %d, want 5", len(got[0].Components))
	}
}

func TestSelection_MissingAutomationDoesNotInvalidateBundle(t *testing.T) {
	catalog := gasCatalog()
	catalog.automation = nil
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if len(got[0].Components) != 5 {
		t.Fatalf("component count = %d, want 5 without automation", len(got[0].Components))
	}
	if !got[0].TotalPrice.Equal(dec("1210000")) {
		t.Fatalf("total price = %s, want 1210000", got[0].TotalPrice)
	}
}

func TestSelection_ValidationFailsFast(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.HeatingRequestSpec)
	}{
		{"zero power", func(s *models.HeatingRequestSpec) { s.PowerKw = decimal.Zero }},
		{"negative power", func(s *models.HeatingRequestSpec) { s.PowerKw = dec("-10") }},
		{"equal temperatures", func(s *models.HeatingRequestSpec) { s.ReturnTempC = s.SupplyTempC }},
		{"inverted temperatures", func(s *models.HeatingRequestSpec) { s.SupplyTempC, s.ReturnTempC = s.ReturnTempC, s.SupplyTempC }},
		{"missing fuel", func(s *models.HeatingRequestSpec) { s.FuelType = "" }},
		{"unknown fuel", func(s *models.HeatingRequestSpec) { s.FuelType = "peat" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := gasCatalog()
			svc := NewSelectionService(catalog)
			spec := validSpec()
			tc.mutate(&spec)

			_, err := svc.SelectTopConfigurations(context.Background(), spec, 5, true)
			if !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
			if catalog.lastPairLimit != 0 {
				t.Fatalf("catalog was queried despite invalid spec")
			}
		})
	}
}

func TestSelection_SkipsPairWithoutDN(t *testing.T) {
	catalog := gasCatalog()
	catalog.pairs = append([]models.BoilerBurnerPair{{
		BoilerID: "b0", BurnerID: "br0", PairPrice: dec("900000"),
		ConnectionKey: "G0", DNSize: nil,
	}}, catalog.pairs...)
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate (DN-less pair skipped), got %d", len(got))
	}
	if got[0].ConnectionKey != "G80" {
		t.Fatalf("wrong pair survived: %q", got[0].ConnectionKey)
	}
}

func TestSelection_SkipsPairMissingMandatorySlot(t *testing.T) {
	catalog := gasCatalog()
	delete(catalog.valves, 80)
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates without a DN80 valve, got %d", len(got))
	}
}

func TestSelection_SkipsPairWithUnresolvableBoiler(t *testing.T) {
	catalog := gasCatalog()
	delete(catalog.items, "b1")
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates with unresolvable boiler, got %d", len(got))
	}
}

func TestSelection_EmptyPairSetReturnsEmptyNoError(t *testing.T) {
	catalog := gasCatalog()
	catalog.pairs = nil
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestSelection_RanksByPriceThenDelivery(t *testing.T) {
	catalog := gasCatalog()

	// Second pair: same bundle total as the first but slower boiler delivery.
	slowBoiler := &models.Equipment{
		ID: "b2", Category: models.CategoryBoiler, Brand: "Viessmann", Model: "V200",
		ConnectionKey: "G81", DNSize: intPtr(80), Price: dec("600000"), DeliveryDays: 45,
	}
	slowBurner := &models.Equipment{
		ID: "br2", Category: models.CategoryBurner, Brand: "Weishaupt", Model: "WM-G30",
		FuelType: models.FuelGas, ConnectionKey: "G81", Price: dec("350000"), DeliveryDays: 21,
	}
	catalog.items["b2"] = slowBoiler
	catalog.items["br2"] = slowBurner
	// Cheaper pair goes first in catalog order to exercise re-ranking by delivery.
	catalog.pairs = []models.BoilerBurnerPair{
		{BoilerID: "b2", BurnerID: "br2", PairPrice: dec("950000"), ConnectionKey: "G81", DNSize: intPtr(80)},
		{BoilerID: "b1", BurnerID: "br1", PairPrice: dec("950000"), ConnectionKey: "G80", DNSize: intPtr(80)},
	}
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ConnectionKey != "G80" || got[1].ConnectionKey != "G81" {
		t.Fatalf("expected faster-delivery bundle first, got %q then %q", got[0].ConnectionKey, got[1].ConnectionKey)
	}
	if got[0].MaxDeliveryDays > got[1].MaxDeliveryDays {
		t.Fatalf("ranking not ascending by delivery on equal price")
	}
}

func TestSelection_TruncatesToTopN(t *testing.T) {
	catalog := gasCatalog()
	// Three viable pairs over the same peripherals, increasing price.
	catalog.pairs = nil
	for i, price := range []string{"900000", "950000", "990000"} {
		boilerID := string(rune('A' + i))
		burnerID := boilerID + "-burner"
		key := "K" + boilerID
		catalog.items[boilerID] = &models.Equipment{
			ID: boilerID, Category: models.CategoryBoiler, Brand: "B", Model: boilerID,
			ConnectionKey: key, DNSize: intPtr(80), Price: dec(price), DeliveryDays: 10,
		}
		catalog.items[burnerID] = &models.Equipment{
			ID: burnerID, Category: models.CategoryBurner, Brand: "B", Model: burnerID,
			FuelType: models.FuelGas, ConnectionKey: key, Price: dec("100000"), DeliveryDays: 10,
		}
		catalog.pairs = append(catalog.pairs, models.BoilerBurnerPair{
			BoilerID: boilerID, BurnerID: burnerID, PairPrice: dec(price).Add(dec("100000")),
			ConnectionKey: key, DNSize: intPtr(80),
		})
	}
	svc := NewSelectionService(catalog)

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected topN=2 candidates, got %d", len(got))
	}
	if got[0].TotalPrice.Cmp(got[1].TotalPrice) > 0 {
		t.Fatalf("candidates not sorted by price")
	}
}

func TestSelection_FewerViablePairsThanTopN(t *testing.T) {
	svc := NewSelectionService(gasCatalog())

	got, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected all (1) viable candidates, got %d", len(got))
	}
}

func TestSelection_CatalogErrorPropagates(t *testing.T) {
	catalog := gasCatalog()
	catalog.pairErr = errors.New("db down")
	svc := NewSelectionService(catalog)

	if _, err := svc.SelectTopConfigurations(context.Background(), validSpec(), 5, true); err == nil {
		t.Fatalf("expected catalog error to propagate")
	}
}

// assertBundleShape checks the structural invariants of one candidate:
// exactly one of each mandatory category, matching connection keys between
// boiler and burner, subtotals and a consistent total.
func assertBundleShape(t *testing.T, c models.ConfigCandidate) {
	t.Helper()

	counts := map[string]int{}
	total := decimal.Zero
	for _, comp := range c.Components {
		counts[comp.Category]++
		if !comp.Subtotal.Equal(comp.Qty.Mul(comp.UnitPrice)) {
			t.Fatalf("component %s subtotal %s != qty*unit %s", comp.EquipmentID, comp.Subtotal, comp.Qty.Mul(comp.UnitPrice))
		}
		total = total.Add(comp.Subtotal)
	}
	for _, cat := range []string{models.CategoryBoiler, models.CategoryBurner, models.CategoryPump, models.CategoryValve, models.CategoryFlowmeter} {
		if counts[cat] != 1 {
			t.Fatalf("category %s appears %d times, want exactly 1", cat, counts[cat])
		}
	}
	if counts[models.CategoryAutomation] > 1 {
		t.Fatalf("more than one automation unit")
	}
	if !total.Equal(c.TotalPrice) {
		t.Fatalf("total price %s != sum of subtotals %s", c.TotalPrice, total)
	}
}
