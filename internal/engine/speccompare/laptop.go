package speccompare

import (
	"regexp"
	"strings"

	"rfq-matcher/internal/models"
	"rfq-matcher/internal/unitparse"
)

var (
	processorFamilyRe     = regexp.MustCompile(`(i\d|ryzen \d)`)
	processorGenerationRe = regexp.MustCompile(`(\d{4,5}[a-zA-Z]*)`)
	ddrTypeRe             = regexp.MustCompile(`(ddr\d)`)
)

var processorBrands = []string{"intel", "amd", "core", "ryzen", "snapdragon"}

// Processor compares processor descriptions. An identical string is a perfect
// match; family, then generation, then brand matches degrade from there.
func Processor(requirement, spec string) float64 {
	req := strings.ToLower(requirement)
	s := strings.ToLower(spec)

	if req == s {
		return 1.0
	}

	reqFamily := processorFamilyRe.FindString(req)
	specFamily := processorFamilyRe.FindString(s)
	if reqFamily != "" && reqFamily == specFamily {
		return 0.8
	}

	for _, family := range []string{"i7", "i5", "i3", "ryzen 7", "ryzen 5"} {
		if strings.Contains(req, family) && strings.Contains(s, family) {
			return 0.7
		}
	}

	reqGen := processorGenerationRe.FindString(req)
	specGen := processorGenerationRe.FindString(s)
	if reqGen != "" && reqGen == specGen {
		return 0.6
	}

	for _, brand := range processorBrands {
		if strings.Contains(req, brand) && strings.Contains(s, brand) {
			return 0.5
		}
	}
	return 0.3
}

// Memory compares RAM descriptions by capacity; over-provisioning earns a
// bonus capped at twice the requirement, shortfall drops fast. When no
// capacity parses on both sides, a shared DDR generation still counts.
func Memory(requirement, spec string) float64 {
	reqGB, reqOK := unitparse.Gigabytes(requirement)
	specGB, specOK := unitparse.Gigabytes(spec)

	if reqOK && specOK {
		return capacityScore(reqGB, specGB)
	}

	reqDDR := ddrTypeRe.FindString(strings.ToLower(requirement))
	specDDR := ddrTypeRe.FindString(strings.ToLower(spec))
	if reqDDR != "" && reqDDR == specDDR {
		return 0.5
	}
	return 0.3
}

var storageMediaTypes = []string{"ssd", "hdd", "nvme", "pcie"}

// Storage compares storage descriptions the same way Memory does, with a
// media-type fallback instead of DDR generation.
func Storage(requirement, spec string) float64 {
	reqGB, reqOK := unitparse.Gigabytes(requirement)
	specGB, specOK := unitparse.Gigabytes(spec)

	if reqOK && specOK {
		return capacityScore(reqGB, specGB)
	}

	for _, media := range storageMediaTypes {
		if containsFold(requirement, media) && containsFold(spec, media) {
			return 0.5
		}
	}
	return 0.3
}

func capacityScore(req, spec float64) float64 {
	if req <= 0 {
		return Neutral
	}
	if spec == req {
		return 1.0
	}
	if spec > req {
		ratio := spec / req
		if ratio > 2.0 {
			ratio = 2.0
		}
		return 0.7 + 0.3*(ratio-1)
	}
	score := (spec / req) * 0.7
	if score < 0.2 {
		return 0.2
	}
	return score
}

var (
	resolutionKeywords = []string{"hd", "fhd", "1080p", "4k", "uhd", "qhd", "1440p", "2160p"}
	panelTechs         = []string{"ips", "tn", "va", "oled", "amoled", "retina"}
	resolutionSpecRes  = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*x\s*(\d+)`),
		regexp.MustCompile(`(\d+)p`),
	}
)

// Display compares free-text display descriptions across resolution, panel
// technology, brightness and screen size, taking the first signal found.
func Display(requirement, spec string) float64 {
	for _, res := range resolutionKeywords {
		if containsFold(requirement, res) && containsFold(spec, res) {
			return 0.8
		}
	}

	req := strings.ToLower(requirement)
	s := strings.ToLower(spec)
	for _, re := range resolutionSpecRes {
		reqRes := re.FindString(req)
		specRes := re.FindString(s)
		if reqRes != "" && reqRes == specRes {
			return 1.0
		}
	}

	for _, tech := range panelTechs {
		if strings.Contains(req, tech) && strings.Contains(s, tech) {
			return 0.7
		}
	}

	if reqNits, ok := unitparse.Nits(req); ok {
		if specNits, ok := unitparse.Nits(s); ok {
			if specNits >= reqNits {
				return 0.9
			}
			score := specNits / reqNits * 0.9
			if score < 0.3 {
				return 0.3
			}
			return score
		}
	}

	if reqIn, ok := unitparse.Inches(req); ok {
		if specIn, ok := unitparse.Inches(s); ok {
			diff := reqIn - specIn
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff <= 1:
				return 0.8
			case diff <= 2:
				return 0.6
			}
		}
	}
	return 0.4
}

var warrantyTypes = []string{"onsite", "next business day", "pro support", "premium", "care pack", "exchange"}

// Warranty compares warranty terms by duration in years, then by service
// type keywords.
func Warranty(requirement, spec string) float64 {
	reqYears, reqOK := unitparse.WarrantyYears(requirement)
	specYears, specOK := unitparse.WarrantyYears(spec)

	if reqOK && specOK {
		if specYears >= reqYears {
			extra := specYears - reqYears
			if extra > 3 {
				extra = 3
			}
			return 0.7 + float64(extra)*0.1
		}
		score := float64(specYears) / float64(reqYears) * 0.7
		if score < 0.2 {
			return 0.2
		}
		return score
	}

	for _, wt := range warrantyTypes {
		if containsFold(requirement, wt) && containsFold(spec, wt) {
			return 0.8
		}
	}

	if containsFold(requirement, "warranty") && containsFold(spec, "warranty") {
		return 0.5
	}
	return 0.3
}

// Battery compares battery life in hours; extra hours earn a diminishing
// bonus.
func Battery(requirement, spec string) float64 {
	reqHours, reqOK := unitparse.Hours(requirement)
	specHours, specOK := unitparse.Hours(spec)
	if !reqOK || !specOK {
		return Neutral
	}

	if specHours >= reqHours {
		bonus := float64(specHours-reqHours) / 10
		if bonus > 0.3 {
			bonus = 0.3
		}
		return 0.7 + bonus
	}
	score := float64(specHours) / float64(reqHours) * 0.7
	if score < 0.2 {
		return 0.2
	}
	return score
}

// OperatingSystem is a containment check: the required OS name appearing in
// the spec is a match, anything else barely counts.
func OperatingSystem(requirement, spec string) float64 {
	if containsFold(spec, requirement) {
		return 1.0
	}
	return 0.3
}

// Laptop comparator weights; primary components count half again as much as
// secondary ones.
const (
	laptopPrimaryWeight   = 15
	laptopSecondaryWeight = 10
)

// LaptopQuality scores a laptop candidate against the laptop requirement as
// a weighted mean over the fields present on both sides, in [0,1].
func LaptopQuality(req *models.LaptopRequirement, p *models.ProductCandidate) float64 {
	specs := p.Specifications
	var parts []weightedScore

	if v, ok := specs["processor"]; ok && req.Processor != "" {
		parts = append(parts, weightedScore{Processor(req.Processor, v), laptopPrimaryWeight})
	}
	if v, ok := specs["memory"]; ok && req.Memory != "" {
		parts = append(parts, weightedScore{Memory(req.Memory, v), laptopPrimaryWeight})
	}
	if v, ok := specs["storage"]; ok && req.Storage != "" {
		parts = append(parts, weightedScore{Storage(req.Storage, v), laptopPrimaryWeight})
	}
	if v, ok := specs["display"]; ok && req.Display != "" {
		parts = append(parts, weightedScore{Display(req.Display, v), laptopSecondaryWeight})
	}
	if v, ok := specs["os"]; ok && req.OS != "" {
		parts = append(parts, weightedScore{OperatingSystem(req.OS, v), laptopSecondaryWeight})
	}
	if v, ok := specs["battery"]; ok && req.Battery != "" {
		if score := Battery(req.Battery, v); score != Neutral {
			parts = append(parts, weightedScore{score, laptopSecondaryWeight})
		}
	}
	if p.Warranty != "" && req.Warranty != "" {
		parts = append(parts, weightedScore{Warranty(req.Warranty, p.Warranty), laptopSecondaryWeight})
	}

	return weightedMean(parts)
}
