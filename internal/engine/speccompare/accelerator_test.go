package speccompare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rfq-matcher/internal/models"
)

func a100() *models.ProductCandidate {
	return &models.ProductCandidate{
		Category: "GPU",
		Compute: &models.ComputeSpecs{
			FP32TFLOPS:  19.5,
			TensorCores: 432,
			CudaCores:   6912,
		},
		Memory: &models.MemorySpecs{
			CapacityGB:   80,
			BandwidthGBs: 2039,
			Type:         "HBM2e",
		},
		Power:               &models.PowerSpecs{TDPWatts: 400},
		SupportedFrameworks: []string{"PyTorch", "TensorFlow", "JAX"},
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		req  *models.AcceleratorRequirement
		want float64
	}{
		{"fp32 met", &models.AcceleratorRequirement{MinComputePower: "15 TFLOPS"}, 0.9},
		{"fp32 exceeded by half", &models.AcceleratorRequirement{MinComputePower: "13"}, 1.0},
		{"fp32 close", &models.AcceleratorRequirement{MinComputePower: "22"}, 0.7},
		{"fp32 far below", &models.AcceleratorRequirement{MinComputePower: "100"}, 0.3},
		{"tensor cores shortfall floors", &models.AcceleratorRequirement{MinTensorCores: 2000}, 0.5},
		{"no requirement", &models.AcceleratorRequirement{}, Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Compute(tt.req, a100()), 1e-9)
		})
	}
}

func TestComputeWeightsFP32Highest(t *testing.T) {
	req := &models.AcceleratorRequirement{
		MinComputePower: "15", // met: 0.9
		MinTensorCores:  1000, // shortfall floored at 0.5
	}
	// (0.9*0.4 + 0.5*0.15) / 0.55
	assert.InDelta(t, (0.9*0.4+0.5*0.15)/0.55, Compute(req, a100()), 1e-9)
}

func TestMemoryFit(t *testing.T) {
	tests := []struct {
		name string
		req  *models.AcceleratorRequirement
		want float64
	}{
		{"capacity exceeded", &models.AcceleratorRequirement{MinMemory: "40GB"}, 1.0},
		{"capacity met", &models.AcceleratorRequirement{MinMemory: "64GB"}, 0.9},
		{"bandwidth exceeded", &models.AcceleratorRequirement{MinMemoryBandwidth: "1000"}, 1.0},
		{"exact type", &models.AcceleratorRequirement{MemoryType: "HBM2e"}, 1.0},
		{"better type", &models.AcceleratorRequirement{MemoryType: "GDDR6"}, 1.0},
		{"unknown type", &models.AcceleratorRequirement{MemoryType: "LPDDR5"}, 0.6},
		{"no signal", &models.AcceleratorRequirement{}, Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MemoryFit(tt.req, a100()), 1e-9)
		})
	}
}

func TestMemoryTypeLadderStepsDown(t *testing.T) {
	p := a100()
	p.Memory.Type = "GDDR6"
	// HBM3 requested, GDDR6 delivered: four steps down the ladder.
	req := &models.AcceleratorRequirement{MemoryType: "HBM3"}
	assert.InDelta(t, 0.5, MemoryFit(req, p), 1e-9)
}

func TestPowerFit(t *testing.T) {
	tests := []struct {
		name        string
		constraints string
		want        float64
	}{
		{"well under budget", "600W", 1.0},
		{"under budget", "420W", 0.9},
		{"slightly over", "380W", 0.7},
		{"moderately over", "350W", 0.5},
		{"far over", "250W", 0.3},
		{"no constraint", "", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.AcceleratorRequirement{PowerConstraints: tt.constraints}
			assert.InDelta(t, tt.want, PowerFit(req, a100()), 1e-9)
		})
	}
}

func TestFrameworkSupport(t *testing.T) {
	tests := []struct {
		name       string
		frameworks []string
		want       float64
	}{
		{"all supported", []string{"pytorch", "tensorflow"}, 1.0},
		{"half supported", []string{"pytorch", "onnx"}, 0.7},
		{"none supported", []string{"onnx", "mxnet"}, 0.4},
		{"no requirement", nil, Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.AcceleratorRequirement{Frameworks: tt.frameworks}
			assert.InDelta(t, tt.want, FrameworkSupport(req, a100()), 1e-9)
		})
	}
}

func TestAcceleratorQuality(t *testing.T) {
	req := &models.AcceleratorRequirement{
		MinComputePower: "15 TFLOPS",
		MinMemory:       "40GB",
		Frameworks:      []string{"pytorch"},
	}
	// compute 0.9, memory 1.0, frameworks 1.0, power neutral.
	want := 0.9*acceleratorComputeWeight + 1.0*acceleratorMemoryWeight +
		1.0*acceleratorFrameworkWeight + Neutral*acceleratorPowerWeight
	assert.InDelta(t, want, AcceleratorQuality(req, a100()), 1e-9)
}

func TestAcceleratorQualityNoData(t *testing.T) {
	req := &models.AcceleratorRequirement{MinComputePower: "15"}
	p := &models.ProductCandidate{Category: "GPU"}
	assert.InDelta(t, Neutral, AcceleratorQuality(req, p), 1e-9)
}
