package speccompare

import (
	"strings"

	"rfq-matcher/internal/models"
	"rfq-matcher/internal/unitparse"
)

// tierScore grades how a delivered value covers a required minimum: clearing
// it by 50% is a perfect fit, shortfalls degrade in bands.
func tierScore(required, delivered float64) float64 {
	switch {
	case delivered >= required*1.5:
		return 1.0
	case delivered >= required:
		return 0.9
	case delivered >= required*0.8:
		return 0.7
	case delivered >= required*0.6:
		return 0.5
	default:
		return 0.3
	}
}

// shortfallScore is 1.0 when the minimum is met, otherwise drops linearly
// with the relative shortfall, floored at 0.5.
func shortfallScore(required, delivered float64) float64 {
	if delivered >= required {
		return 1.0
	}
	score := 1.0 - (required-delivered)/required
	if score < 0.5 {
		return 0.5
	}
	return score
}

// quantity parses a requirement value that may carry a unit suffix
// ("80GB", "100 TFLOPS", "400W") or be a bare number.
func quantity(s string) (float64, bool) {
	if gb, ok := unitparse.Gigabytes(s); ok {
		return gb, true
	}
	return unitparse.LeadingNumber(s)
}

// Compute scores the compute capability of an accelerator against required
// minimums. FP32 throughput dominates; tensor cores, CUDA cores, INT8 and
// FP16 throughput are secondary signals.
func Compute(req *models.AcceleratorRequirement, p *models.ProductCandidate) float64 {
	cs := p.Compute
	if cs == nil {
		return Neutral
	}

	var parts []weightedScore

	if minFP32, ok := quantity(req.MinComputePower); ok && cs.FP32TFLOPS > 0 {
		parts = append(parts, weightedScore{tierScore(minFP32, cs.FP32TFLOPS), 0.4})
	}
	if req.MinTensorCores > 0 && cs.TensorCores > 0 {
		parts = append(parts, weightedScore{shortfallScore(float64(req.MinTensorCores), float64(cs.TensorCores)), 0.15})
	}
	if req.MinCudaCores > 0 && cs.CudaCores > 0 {
		parts = append(parts, weightedScore{shortfallScore(float64(req.MinCudaCores), float64(cs.CudaCores)), 0.15})
	}
	if minInt8, ok := quantity(req.MinInt8Performance); ok && cs.Int8TOPS > 0 {
		parts = append(parts, weightedScore{shortfallScore(minInt8, cs.Int8TOPS), 0.15})
	}
	if minFP16, ok := quantity(req.MinFP16Performance); ok && cs.FP16TFLOPS > 0 {
		parts = append(parts, weightedScore{shortfallScore(minFP16, cs.FP16TFLOPS), 0.15})
	}

	return weightedMean(parts)
}

// Memory technology ladder from slowest to fastest.
var memoryTypeRank = map[string]int{
	"gddr5":  0,
	"gddr5x": 1,
	"gddr6":  2,
	"gddr6x": 3,
	"hbm2":   4,
	"hbm2e":  5,
	"hbm3":   6,
}

// MemoryFit scores accelerator memory: capacity dominates, bandwidth and
// technology generation follow.
func MemoryFit(req *models.AcceleratorRequirement, p *models.ProductCandidate) float64 {
	ms := p.Memory
	if ms == nil {
		return Neutral
	}

	var parts []weightedScore

	if minGB, ok := quantity(req.MinMemory); ok && ms.CapacityGB > 0 {
		parts = append(parts, weightedScore{tierScore(minGB, ms.CapacityGB), 0.5})
	}
	if minBW, ok := quantity(req.MinMemoryBandwidth); ok && ms.BandwidthGBs > 0 {
		parts = append(parts, weightedScore{bandwidthScore(minBW, ms.BandwidthGBs), 0.3})
	}
	if req.MemoryType != "" && ms.Type != "" {
		parts = append(parts, weightedScore{memoryTypeScore(req.MemoryType, ms.Type), 0.2})
	}

	return weightedMean(parts)
}

func bandwidthScore(required, delivered float64) float64 {
	switch {
	case delivered >= required*1.3:
		return 1.0
	case delivered >= required:
		return 0.9
	case delivered >= required*0.8:
		return 0.7
	default:
		return 0.5
	}
}

func memoryTypeScore(required, delivered string) float64 {
	req := strings.ToLower(strings.TrimSpace(required))
	del := strings.ToLower(strings.TrimSpace(delivered))
	if req == del {
		return 1.0
	}

	reqRank, reqKnown := memoryTypeRank[req]
	delRank, delKnown := memoryTypeRank[del]
	if !reqKnown || !delKnown {
		return 0.6
	}
	if delRank > reqRank {
		return 1.0
	}
	score := 1.0 - float64(reqRank-delRank)*0.15
	if score < 0.5 {
		return 0.5
	}
	return score
}

// PowerFit scores the product TDP against the stated power budget. Running
// under budget is rewarded, overshooting degrades in bands.
func PowerFit(req *models.AcceleratorRequirement, p *models.ProductCandidate) float64 {
	maxWatts, ok := quantity(req.PowerConstraints)
	if !ok || p.Power == nil || p.Power.TDPWatts <= 0 {
		return Neutral
	}

	tdp := p.Power.TDPWatts
	switch {
	case tdp <= maxWatts*0.8:
		return 1.0
	case tdp <= maxWatts:
		return 0.9
	case tdp <= maxWatts*1.1:
		return 0.7
	case tdp <= maxWatts*1.2:
		return 0.5
	default:
		return 0.3
	}
}

// FrameworkSupport scores the fraction of required ML frameworks the product
// supports, graded in bands rather than linearly.
func FrameworkSupport(req *models.AcceleratorRequirement, p *models.ProductCandidate) float64 {
	if len(req.Frameworks) == 0 || len(p.SupportedFrameworks) == 0 {
		return Neutral
	}

	supported := 0
	for _, want := range req.Frameworks {
		for _, have := range p.SupportedFrameworks {
			if containsFold(have, want) {
				supported++
				break
			}
		}
	}

	ratio := float64(supported) / float64(len(req.Frameworks))
	switch {
	case ratio == 1.0:
		return 1.0
	case ratio >= 0.8:
		return 0.9
	case ratio >= 0.6:
		return 0.8
	case ratio >= 0.4:
		return 0.7
	case ratio > 0:
		return 0.6
	default:
		return 0.4
	}
}

// Accelerator quality folds the four sub-comparators; compute throughput
// carries the dominant internal weight.
const (
	acceleratorComputeWeight   = 0.40
	acceleratorMemoryWeight    = 0.25
	acceleratorFrameworkWeight = 0.20
	acceleratorPowerWeight     = 0.15
)

// AcceleratorQuality scores an accelerator candidate in [0,1].
func AcceleratorQuality(req *models.AcceleratorRequirement, p *models.ProductCandidate) float64 {
	return weightedMean([]weightedScore{
		{Compute(req, p), acceleratorComputeWeight},
		{MemoryFit(req, p), acceleratorMemoryWeight},
		{FrameworkSupport(req, p), acceleratorFrameworkWeight},
		{PowerFit(req, p), acceleratorPowerWeight},
	})
}
