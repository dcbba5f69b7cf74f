package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ComputeSpecs holds the numeric compute capabilities of an accelerator.
type ComputeSpecs struct {
	FP32TFLOPS  float64 `json:"fp32Performance,omitempty"`
	FP16TFLOPS  float64 `json:"fp16Performance,omitempty"`
	Int8TOPS    float64 `json:"int8Performance,omitempty"`
	TensorCores int     `json:"tensorCores,omitempty"`
	CudaCores   int     `json:"cudaCores,omitempty"`
}

type MemorySpecs struct {
	CapacityGB   float64 `json:"capacity,omitempty"`
	BandwidthGBs float64 `json:"bandwidth,omitempty"`
	Type         string  `json:"type,omitempty"`
}

type PowerSpecs struct {
	TDPWatts float64 `json:"tdp,omitempty"`
}

// ComplianceInfo is the manufacturer-declared export posture of a product.
type ComplianceInfo struct {
	RestrictedCountries []string `json:"restrictedCountries,omitempty"`
	ExportRestrictions  []string `json:"exportRestrictions,omitempty"`
}

// ProductCandidate is an immutable catalog snapshot scored against one RFQ
// category. Specifications carries free-text fields (processor, memory,
// display and the like); the typed sub-bags carry numeric accelerator specs.
type ProductCandidate struct {
	ID                  string            `json:"id"`
	SupplierID          string            `json:"supplierId"`
	Name                string            `json:"name"`
	Category            string            `json:"category"`
	Description         string            `json:"description,omitempty"`
	Price               decimal.Decimal   `json:"price"`
	Specifications      map[string]string `json:"specifications,omitempty"`
	Compute             *ComputeSpecs     `json:"computeSpecs,omitempty"`
	Memory              *MemorySpecs      `json:"memorySpecs,omitempty"`
	Power               *PowerSpecs       `json:"powerConsumption,omitempty"`
	SupportedFrameworks []string          `json:"supportedFrameworks,omitempty"`
	Compliance          ComplianceInfo    `json:"complianceInfo,omitempty"`
	Warranty            string            `json:"warranty,omitempty"`
	InStock             bool              `json:"inStock"`
}

// SupplierProfile is the read-only supplier snapshot attached to a candidate.
type SupplierProfile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	DeliveryTime string `json:"deliveryTime,omitempty"` // e.g. "15-30 days"
	LeadTimeDays int    `json:"leadTime,omitempty"`
	Verified     bool   `json:"isVerified"`
}

// Candidate pairs a product with its supplier for scoring.
type Candidate struct {
	Product  ProductCandidate `json:"product"`
	Supplier SupplierProfile  `json:"supplier"`
}

// NormalizeCategory lowercases and trims a category name so lookups are
// insensitive to catalog spelling.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

var acceleratorCategories = map[string]bool{
	"gpu":            true,
	"ai accelerator": true,
	"ml accelerator": true,
	"tpu":            true,
	"vpu":            true,
	"fpga":           true,
	"asic":           true,
}

// IsAcceleratorCategory reports whether a category is export-sensitive
// AI hardware.
func IsAcceleratorCategory(category string) bool {
	return acceleratorCategories[NormalizeCategory(category)]
}
