package models

// Criterion names a scoring dimension used in final aggregation.
type Criterion string

const (
	CriterionPrice      Criterion = "price"
	CriterionQuality    Criterion = "quality"
	CriterionDelivery   Criterion = "delivery"
	CriterionCompliance Criterion = "compliance"
)

// Default criteria weights when the caller supplies none. The compliance
// variant applies when restricted hardware categories are requested.
var (
	DefaultCriteria = map[Criterion]int{
		CriterionPrice:    50,
		CriterionQuality:  30,
		CriterionDelivery: 20,
	}
	DefaultComplianceCriteria = map[Criterion]int{
		CriterionPrice:      30,
		CriterionQuality:    40,
		CriterionDelivery:   15,
		CriterionCompliance: 15,
	}
)

// CategoryGeneric is used when a requirement payload names no category at all.
const CategoryGeneric = "General"

type LaptopRequirement struct {
	Quantity     int    `json:"quantity"`
	OS           string `json:"os,omitempty"`
	Processor    string `json:"processor,omitempty"`
	Memory       string `json:"memory,omitempty"`
	Storage      string `json:"storage,omitempty"`
	Display      string `json:"display,omitempty"`
	Battery      string `json:"battery,omitempty"`
	Connectivity string `json:"connectivity,omitempty"`
	Warranty     string `json:"warranty,omitempty"`
}

type MonitorRequirement struct {
	Quantity      int    `json:"quantity"`
	ScreenSize    string `json:"screenSize,omitempty"`
	Resolution    string `json:"resolution,omitempty"`
	PanelTech     string `json:"panelTech,omitempty"`
	Brightness    string `json:"brightness,omitempty"`
	ContrastRatio string `json:"contrastRatio,omitempty"`
	Connectivity  string `json:"connectivity,omitempty"`
	Adjustability string `json:"adjustability,omitempty"`
	Warranty      string `json:"warranty,omitempty"`
}

// AcceleratorRequirement covers GPU and other AI-accelerator requests.
// Quantities with units stay as raw strings ("80GB", "100 TFLOPS") and are
// parsed at comparison time; empty means "not specified".
type AcceleratorRequirement struct {
	Quantity           int      `json:"quantity"`
	Type               string   `json:"type,omitempty"`
	MinMemory          string   `json:"minMemory,omitempty"`
	MinMemoryBandwidth string   `json:"minMemoryBandwidth,omitempty"`
	MemoryType         string   `json:"memoryType,omitempty"`
	MinComputePower    string   `json:"minComputePower,omitempty"`
	MinTensorCores     int      `json:"minTensorCores,omitempty"`
	MinCudaCores       int      `json:"minCudaCores,omitempty"`
	MinInt8Performance string   `json:"minInt8Performance,omitempty"`
	MinFP16Performance string   `json:"minFp16Performance,omitempty"`
	PowerConstraints   string   `json:"powerConstraints,omitempty"`
	Frameworks         []string `json:"frameworks,omitempty"`
}

// RequirementSpec is the canonical, fully-defaulted form of an RFQ's
// extracted requirements. It is read-only for the duration of a match run.
type RequirementSpec struct {
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	BuyerCountry string                  `json:"buyerCountry,omitempty"`
	Categories   []string                `json:"categories"`
	Laptops      *LaptopRequirement      `json:"laptops,omitempty"`
	Monitors     *MonitorRequirement     `json:"monitors,omitempty"`
	Accelerator  *AcceleratorRequirement `json:"aiHardware,omitempty"`
	Criteria     map[Criterion]int       `json:"criteria"`
}

// HasComplianceCriterion reports whether the caller explicitly weighted
// compliance; otherwise aggregation runs in 3-factor mode.
func (s *RequirementSpec) HasComplianceCriterion() bool {
	_, ok := s.Criteria[CriterionCompliance]
	return ok
}

// QuantityFor returns the requested quantity for a category, defaulting to 1.
func (s *RequirementSpec) QuantityFor(category string) int {
	q := 0
	switch NormalizeCategory(category) {
	case "laptops":
		if s.Laptops != nil {
			q = s.Laptops.Quantity
		}
	case "monitors":
		if s.Monitors != nil {
			q = s.Monitors.Quantity
		}
	case "gpu", "ai accelerator", "ml accelerator", "tpu", "vpu", "fpga", "asic":
		if s.Accelerator != nil {
			q = s.Accelerator.Quantity
		}
	}
	if q <= 0 {
		return 1
	}
	return q
}
