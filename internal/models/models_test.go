package models

import "testing"

func TestTaxCompute(t *testing.T) {
	vat := Tax{Name: "VAT 15%", Rate: 0.15}
	res := vat.Compute(100, 2)
	if res.TotalExcluded != 200 {
		t.Fatalf("expected excluded 200 got %v", res.TotalExcluded)
	}
	if res.TotalIncluded != 230 {
		t.Fatalf("expected included 230 got %v", res.TotalIncluded)
	}
}

func TestTaxComputePriceInclude(t *testing.T) {
	vat := Tax{Name: "VAT 15% incl", Rate: 0.15, PriceInclude: true}
	res := vat.Compute(115, 1)
	if res.TotalIncluded != 115 {
		t.Fatalf("expected included 115 got %v", res.TotalIncluded)
	}
	if diff := res.TotalExcluded - 100; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected excluded ~100 got %v", res.TotalExcluded)
	}
}

func TestComputeAllEmptySet(t *testing.T) {
	res := ComputeAll(nil, 100, 2)
	if res.TotalExcluded != 200 || res.TotalIncluded != 200 {
		t.Fatalf("no taxes should leave amounts untaxed: %+v", res)
	}
}

func TestProductSaleTaxesFilter(t *testing.T) {
	p := Product{
		CompanyID: 1,
		Taxes: []Tax{
			{ID: 1, TypeTaxUse: TaxUseSale, CompanyID: 1},
			{ID: 2, TypeTaxUse: TaxUseSale, CompanyID: 2},
			{ID: 3, TypeTaxUse: TaxUsePurchase, CompanyID: 1},
		},
	}
	got := p.SaleTaxes(1)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only company-1 sale tax, got %+v", got)
	}
}

func TestPartnerLocationDisplay(t *testing.T) {
	p := Partner{Latitude: 24.7136, Longitude: 46.6753}
	if got := p.LocationDisplay(); got != "24.713600, 46.675300" {
		t.Fatalf("unexpected display %q", got)
	}
	empty := Partner{}
	if got := empty.LocationDisplay(); got != "" {
		t.Fatalf("expected empty display for zero coordinates, got %q", got)
	}
}

func TestSequenceFormat(t *testing.T) {
	s := Sequence{Prefix: "FO", Padding: 5}
	if got := s.Format(42); got != "FO00042" {
		t.Fatalf("unexpected number %q", got)
	}
}
