package service

import (
	"context"
	"fmt"

	"github.com/octobees/template-finder/internal/dto"
)

const defaultAudience = "a broad audience"

// StaticCatalog serves a fixed list of templates. It never fails.
type StaticCatalog struct{}

// NewStaticCatalog returns the built-in catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{}
}

// Suggest implements Provider.
func (c *StaticCatalog) Suggest(_ context.Context, info dto.CompanyInfo) (Suggestion, error) {
	return Suggestion{Templates: c.Templates(info), Source: SourceCatalog}, nil
}

// Templates builds a fresh copy of the catalog for the given company.
func (c *StaticCatalog) Templates(info dto.CompanyInfo) []dto.Template {
	audience := info.TargetAudience
	if audience == "" {
		audience = defaultAudience
	}

	return []dto.Template{
		{
			Name:        "Modern Business Template",
			Description: fmt.Sprintf("Perfect for %s companies targeting %s", info.Industry, audience),
			URL:         "https://example.com/template1",
			Features:    []string{"Responsive Design", "Contact Form", "About Section", "Product Showcase"},
		},
		{
			Name:        "Professional Portfolio",
			Description: "Showcase your products and services with this elegant design",
			URL:         "https://example.com/template2",
			Features:    []string{"Gallery", "Testimonials", "Services Section", "Team Profiles"},
		},
		{
			Name:        "E-commerce Ready",
			Description: "Start selling online with this complete e-commerce solution",
			URL:         "https://example.com/template3",
			Features:    []string{"Shopping Cart", "Product Catalog", "Secure Checkout", "Inventory Management"},
		},
	}
}

// Source reports where catalog suggestions come from.
func (c *StaticCatalog) Source() Source { return SourceCatalog }

var _ Provider = (*StaticCatalog)(nil)
