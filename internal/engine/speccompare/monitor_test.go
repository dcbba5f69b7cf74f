package speccompare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rfq-matcher/internal/models"
)

func TestScreenSize(t *testing.T) {
	assert.InDelta(t, 1.0, ScreenSize("27 inch", "27 inch"), 1e-9)
	assert.InDelta(t, 1.0-3.0/27.0, ScreenSize("27 inch", "24 inch"), 1e-9)
	assert.InDelta(t, Neutral, ScreenSize("large", "24 inch"), 1e-9)
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		spec        string
		want        float64
	}{
		{"containment match", "2560x1440", "2560x1440 QHD", 1.0},
		{"tier exceeded", "FHD", "4K UHD", 0.9},
		{"tier met", "QHD", "QHD panel", 1.0},
		{"tier below", "4K", "FHD", 0.35},
		{"unknown tiers", "retina", "crisp", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Resolution(tt.requirement, tt.spec), 1e-9)
		})
	}
}

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 0.7, Brightness("350 nits", "350 nits"), 1e-9)
	assert.InDelta(t, 0.75, Brightness("300", "330"), 1e-9)
	assert.InDelta(t, 0.35, Brightness("400 nits", "200 nits"), 1e-9)
	assert.InDelta(t, Neutral, Brightness("bright", "350 nits"), 1e-9)
}

func TestContrastRatio(t *testing.T) {
	assert.InDelta(t, 0.7, ContrastRatio("1000:1", "1000:1"), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio("1000:1", "3000:1"), 1e-9)
	assert.InDelta(t, 0.35, ContrastRatio("2000:1", "1000:1"), 1e-9)
	assert.InDelta(t, Neutral, ContrastRatio("high", "1000:1"), 1e-9)
}

func TestConnectivityOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, Connectivity("HDMI and DisplayPort", "HDMI, DisplayPort, VGA"), 1e-9)
	assert.InDelta(t, 0.5, Connectivity("HDMI and DisplayPort", "HDMI only"), 1e-9)
	assert.InDelta(t, Neutral, Connectivity("many ports", "HDMI"), 1e-9)
}

func TestAdjustabilityOverlap(t *testing.T) {
	assert.InDelta(t, 0.5, Adjustability("height and tilt", "tilt stand"), 1e-9)
	assert.InDelta(t, Neutral, Adjustability("ergonomic", "tilt"), 1e-9)
}

func TestMonitorQuality(t *testing.T) {
	req := &models.MonitorRequirement{
		ScreenSize: "27 inch",
		Resolution: "QHD",
		PanelTech:  "IPS",
	}
	product := &models.ProductCandidate{
		Category: "Monitors",
		Specifications: map[string]string{
			"screenSize": "27 inch",
			"resolution": "QHD 2560x1440",
			"panelTech":  "IPS",
		},
	}

	// All three fields match perfectly.
	assert.InDelta(t, 1.0, MonitorQuality(req, product), 1e-9)
}

func TestMonitorQualityNoSignal(t *testing.T) {
	req := &models.MonitorRequirement{ScreenSize: "27 inch"}
	product := &models.ProductCandidate{Specifications: map[string]string{}}
	assert.InDelta(t, Neutral, MonitorQuality(req, product), 1e-9)
}
