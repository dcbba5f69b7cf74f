package speccompare

import (
	"strings"

	"rfq-matcher/internal/models"
	"rfq-matcher/internal/unitparse"
)

// ScreenSize scores proportionally to how far the actual diagonal is from
// the requested one.
func ScreenSize(requirement, spec string) float64 {
	reqIn, reqOK := unitparse.Inches(requirement)
	specIn, specOK := unitparse.Inches(spec)
	if !reqOK || !specOK || reqIn <= 0 {
		return Neutral
	}

	diff := reqIn - specIn
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - diff/reqIn
	if score < 0 {
		return 0
	}
	return score
}

// Resolution tiers from lowest to highest; 4K and UHD are the same tier.
// Ordered so that "fhd" wins over its "hd" substring.
var resolutionTiers = []struct {
	name string
	tier int
}{
	{"hd", 1},
	{"fhd", 2},
	{"qhd", 3},
	{"uhd", 4},
	{"4k", 4},
}

// Resolution scores an exact containment match as perfect, otherwise compares
// marketing tiers: meeting or exceeding the requested tier earns a bonus per
// extra tier, falling short drops proportionally.
func Resolution(requirement, spec string) float64 {
	if requirement != "" && containsFold(spec, requirement) {
		return 1.0
	}

	req := strings.ToLower(requirement)
	s := strings.ToLower(spec)
	reqTier, specTier := 0, 0
	for _, rt := range resolutionTiers {
		if strings.Contains(req, rt.name) {
			reqTier = rt.tier
		}
		if strings.Contains(s, rt.name) {
			specTier = rt.tier
		}
	}
	if reqTier == 0 || specTier == 0 {
		return 0
	}

	if specTier >= reqTier {
		bonus := float64(specTier-reqTier) * 0.1
		if bonus > 0.3 {
			bonus = 0.3
		}
		return 0.7 + bonus
	}
	score := float64(specTier) / float64(reqTier) * 0.7
	if score < 0.2 {
		return 0.2
	}
	return score
}

// PanelTech is a containment check on the panel technology name.
func PanelTech(requirement, spec string) float64 {
	if requirement != "" && containsFold(spec, requirement) {
		return 1.0
	}
	return 0.3
}

// Brightness compares the leading numeric value (nits); exceeding the
// requirement earns a bonus relative to twice the requirement.
func Brightness(requirement, spec string) float64 {
	reqVal, reqOK := unitparse.LeadingNumber(requirement)
	specVal, specOK := unitparse.LeadingNumber(spec)
	if !reqOK || !specOK || reqVal <= 0 {
		return Neutral
	}

	if specVal >= reqVal {
		bonus := (specVal - reqVal) / (reqVal * 2)
		if bonus > 0.3 {
			bonus = 0.3
		}
		return 0.7 + bonus
	}
	score := specVal / reqVal * 0.7
	if score < 0.2 {
		return 0.2
	}
	return score
}

// ContrastRatio compares the leading value of "n:1" style ratios; meeting
// or beating the requirement earns a bonus relative to twice the requirement.
func ContrastRatio(requirement, spec string) float64 {
	reqVal, reqOK := unitparse.LeadingNumber(requirement)
	specVal, specOK := unitparse.LeadingNumber(spec)
	if !reqOK || !specOK || reqVal <= 0 {
		return Neutral
	}

	if specVal >= reqVal {
		bonus := (specVal - reqVal) / (reqVal * 2)
		if bonus > 0.3 {
			bonus = 0.3
		}
		return 0.7 + bonus
	}
	score := specVal / reqVal * 0.7
	if score < 0.2 {
		return 0.2
	}
	return score
}

var connectivityTypes = []string{"hdmi", "displayport", "vga", "usb-c", "thunderbolt"}

// Connectivity scores the fraction of requested port types the product
// offers; a requirement naming no known port type is uninformative.
func Connectivity(requirement, spec string) float64 {
	return featureOverlap(requirement, spec, connectivityTypes)
}

var adjustabilityFeatures = []string{"height", "tilt", "swivel", "pivot"}

// Adjustability scores the fraction of requested stand features present.
func Adjustability(requirement, spec string) float64 {
	return featureOverlap(requirement, spec, adjustabilityFeatures)
}

func featureOverlap(requirement, spec string, features []string) float64 {
	var requested, common int
	for _, f := range features {
		if !containsFold(requirement, f) {
			continue
		}
		requested++
		if containsFold(spec, f) {
			common++
		}
	}
	if requested == 0 {
		return Neutral
	}
	return float64(common) / float64(requested)
}

const (
	monitorPrimaryWeight   = 20
	monitorMidWeight       = 15
	monitorSecondaryWeight = 10
)

// MonitorQuality scores a monitor candidate against the monitor requirement
// as a weighted mean over the fields present on both sides, in [0,1].
func MonitorQuality(req *models.MonitorRequirement, p *models.ProductCandidate) float64 {
	specs := p.Specifications
	var parts []weightedScore

	if v, ok := specs["screenSize"]; ok && req.ScreenSize != "" {
		if score := ScreenSize(req.ScreenSize, v); score != Neutral {
			parts = append(parts, weightedScore{score, monitorPrimaryWeight})
		}
	}
	if v, ok := specs["resolution"]; ok && req.Resolution != "" {
		parts = append(parts, weightedScore{Resolution(req.Resolution, v), monitorPrimaryWeight})
	}
	if v, ok := specs["panelTech"]; ok && req.PanelTech != "" {
		parts = append(parts, weightedScore{PanelTech(req.PanelTech, v), monitorMidWeight})
	}
	if v, ok := specs["brightness"]; ok && req.Brightness != "" {
		if score := Brightness(req.Brightness, v); score != Neutral {
			parts = append(parts, weightedScore{score, monitorSecondaryWeight})
		}
	}
	if v, ok := specs["contrastRatio"]; ok && req.ContrastRatio != "" {
		if score := ContrastRatio(req.ContrastRatio, v); score != Neutral {
			parts = append(parts, weightedScore{score, monitorSecondaryWeight})
		}
	}
	if v, ok := specs["connectivity"]; ok && req.Connectivity != "" {
		parts = append(parts, weightedScore{Connectivity(req.Connectivity, v), monitorSecondaryWeight})
	}
	if v, ok := specs["adjustability"]; ok && req.Adjustability != "" {
		parts = append(parts, weightedScore{Adjustability(req.Adjustability, v), monitorSecondaryWeight})
	}
	if req.Warranty != "" && p.Warranty != "" {
		parts = append(parts, weightedScore{Warranty(req.Warranty, p.Warranty), monitorSecondaryWeight})
	}

	return weightedMean(parts)
}
