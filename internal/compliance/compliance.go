// Package compliance applies export-control policy to a buyer/supplier/
// product triple. The outcome is a sub-score plus an auditable note; a hard
// block removes the candidate from ranking entirely.
package compliance

import (
	"fmt"

	"rfq-matcher/internal/common/config"
	"rfq-matcher/internal/models"
)

// Result of a compliance check. Score is in [0,100].
type Result struct {
	Score   float64
	Blocked bool
	Note    string
}

// Countries whose imports of restricted hardware trigger licensing rules.
var sensitiveCountries = map[string]bool{
	"China":       true,
	"Russia":      true,
	"Iran":        true,
	"Belarus":     true,
	"North Korea": true,
	"Syria":       true,
	"Venezuela":   true,
	"Cuba":        true,
	"Myanmar":     true,
	"Afghanistan": true,
}

// Subset of sensitive countries that cannot receive high-performance AI
// hardware at all.
var highPerformanceEmbargo = map[string]bool{
	"China":       true,
	"Russia":      true,
	"Iran":        true,
	"Belarus":     true,
	"North Korea": true,
	"Syria":       true,
}

// Countries flagged for the high-memory licensing note.
var highMemoryRestricted = map[string]bool{
	"China":       true,
	"Russia":      true,
	"Iran":        true,
	"North Korea": true,
	"Syria":       true,
}

// Checker evaluates the ordered compliance policy. Thresholds defining
// "high-performance" hardware come from config.
type Checker struct {
	cfg config.ComplianceConfig
}

func NewChecker(cfg config.ComplianceConfig) *Checker {
	return &Checker{cfg: cfg}
}

// Check runs the policy rules in order and returns the first decisive
// outcome.
func (c *Checker) Check(buyerCountry string, candidate *models.Candidate) Result {
	if buyerCountry == "" {
		return Result{Score: 50, Note: "Insufficient data for compliance check"}
	}

	product := &candidate.Product
	supplierCountry := candidate.Supplier.Country

	for _, restricted := range product.Compliance.RestrictedCountries {
		if restricted == buyerCountry {
			return Result{
				Blocked: true,
				Note:    fmt.Sprintf("Export to %s is restricted for this product", buyerCountry),
			}
		}
	}

	if r, decisive := geopoliticalRule(buyerCountry, supplierCountry); decisive {
		return r
	}

	if product.Memory != nil && product.Memory.CapacityGB >= c.cfg.MemoryCapacityGB &&
		highMemoryRestricted[buyerCountry] {
		return Result{
			Score: 20,
			Note: fmt.Sprintf("High-memory GPU (%.0fGB) exports to %s likely require special licensing",
				product.Memory.CapacityGB, buyerCountry),
		}
	}

	shipping := c.shippingRestrictions(product, buyerCountry)
	if !shipping.canShip {
		return Result{Blocked: true, Note: shipping.note}
	}
	if shipping.requiresLicense {
		return Result{
			Score: 40,
			Note:  fmt.Sprintf("Export license required for shipping to %s", buyerCountry),
		}
	}

	if supplierCountry == buyerCountry {
		return Result{Score: 100, Note: "Local supplier, no export restrictions"}
	}
	return Result{Score: 80, Note: "Standard international shipping rules apply"}
}

func geopoliticalRule(buyerCountry, supplierCountry string) (Result, bool) {
	switch {
	case buyerCountry == "Russia" && supplierCountry == "United States":
		return Result{Score: 10, Note: "US suppliers are heavily restricted for Russian buyers"}, true
	case buyerCountry == "China" && supplierCountry == "United States":
		return Result{Score: 30, Note: "Some US AI hardware exports to China are restricted"}, true
	case buyerCountry == "Iran" &&
		(supplierCountry == "United States" || supplierCountry == "European Union"):
		return Result{
			Blocked: true,
			Note:    fmt.Sprintf("Exports from %s to Iran are prohibited", supplierCountry),
		}, true
	}
	return Result{}, false
}

type shippingCheck struct {
	canShip         bool
	requiresLicense bool
	note            string
}

func (c *Checker) shippingRestrictions(product *models.ProductCandidate, destination string) shippingCheck {
	check := shippingCheck{canShip: true}

	if len(product.Compliance.ExportRestrictions) > 0 && sensitiveCountries[destination] {
		check.requiresLicense = true
		check.note = fmt.Sprintf("Product requires export license for shipping to %s", destination)
	}

	if c.isHighPerformance(product) {
		check.requiresLicense = true
		if highPerformanceEmbargo[destination] {
			check.canShip = false
			check.note = fmt.Sprintf(
				"High-performance AI hardware cannot be shipped to %s under current regulations",
				destination)
		}
	}
	return check
}

func (c *Checker) isHighPerformance(product *models.ProductCandidate) bool {
	if m := product.Memory; m != nil {
		if m.CapacityGB >= c.cfg.MemoryCapacityGB || m.BandwidthGBs >= c.cfg.MemoryBandwidthGBs {
			return true
		}
	}
	if cs := product.Compute; cs != nil {
		if cs.FP32TFLOPS >= c.cfg.FP32TFLOPS || cs.Int8TOPS >= c.cfg.Int8TOPS {
			return true
		}
	}
	return false
}
