// Package requirement canonicalizes arbitrary extracted-requirement payloads
// into a models.RequirementSpec. Normalization fails soft: absent or
// malformed data degrades to documented defaults, never to an error.
package requirement

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

// Alternate key names seen in extractor output for the accelerator block.
var acceleratorAliases = []string{"aiHardware", "gpuRequirements", "GPUs", "gpu"}

// Criterion aliases: extractors disagree on naming.
var criterionAliases = map[string]models.Criterion{
	"price":        models.CriterionPrice,
	"quality":      models.CriterionQuality,
	"performance":  models.CriterionQuality,
	"delivery":     models.CriterionDelivery,
	"availability": models.CriterionDelivery,
	"compliance":   models.CriterionCompliance,
}

type Normalizer struct {
	logger logger.Logger
}

func NewNormalizer(log logger.Logger) *Normalizer {
	return &Normalizer{
		logger: log.WithFields(map[string]interface{}{"component": "requirement-normalizer"}),
	}
}

// Normalize canonicalizes a payload that may be a nested map or an already
// (partially) typed RequirementSpec.
func (n *Normalizer) Normalize(payload interface{}) *models.RequirementSpec {
	switch p := payload.(type) {
	case *models.RequirementSpec:
		if p == nil {
			return n.genericSpec()
		}
		spec := *p
		n.applyDefaults(&spec)
		return &spec
	case models.RequirementSpec:
		n.applyDefaults(&p)
		return &p
	case map[string]interface{}:
		return n.fromMap(p)
	default:
		n.logger.Warn("unrecognized requirement payload, using generic defaults", map[string]interface{}{
			"payloadType": payloadTypeName(payload),
		})
		return n.genericSpec()
	}
}

func (n *Normalizer) fromMap(payload map[string]interface{}) *models.RequirementSpec {
	if len(payload) == 0 {
		return n.genericSpec()
	}

	if warnings := validatePayload(payload); len(warnings) > 0 {
		n.logger.Warn("requirement payload failed soft validation", map[string]interface{}{
			"warnings": warnings,
		})
	}

	spec := &models.RequirementSpec{
		Title:        stringField(payload, "title"),
		Description:  stringField(payload, "description"),
		BuyerCountry: stringField(payload, "buyerCountry"),
		Categories:   categoriesField(payload),
	}

	if sub, ok := mapField(payload, "laptops"); ok {
		var req models.LaptopRequirement
		if err := decodeSub(sub, &req); err == nil {
			spec.Laptops = &req
		} else {
			n.logger.Warn("laptop requirement block dropped", map[string]interface{}{"error": err.Error()})
		}
	}

	if sub, ok := mapField(payload, "monitors"); ok {
		var req models.MonitorRequirement
		if err := decodeSub(sub, &req); err == nil {
			spec.Monitors = &req
		} else {
			n.logger.Warn("monitor requirement block dropped", map[string]interface{}{"error": err.Error()})
		}
	}

	if merged := n.mergedAcceleratorBlock(payload); merged != nil {
		var req models.AcceleratorRequirement
		if err := decodeSub(merged, &req); err == nil {
			spec.Accelerator = &req
		} else {
			n.logger.Warn("accelerator requirement block dropped", map[string]interface{}{"error": err.Error()})
		}
	}

	spec.Criteria = n.criteriaField(payload)
	n.applyDefaults(spec)
	return spec
}

// mergedAcceleratorBlock folds all alias blocks into one map; later aliases
// win on key conflicts, matching the order extractors emit them in.
func (n *Normalizer) mergedAcceleratorBlock(payload map[string]interface{}) map[string]interface{} {
	var merged map[string]interface{}
	for _, alias := range acceleratorAliases {
		sub, ok := mapField(payload, alias)
		if !ok {
			continue
		}
		if merged == nil {
			merged = make(map[string]interface{})
		}
		for k, v := range sub {
			merged[k] = v
		}
	}
	return merged
}

// criteriaField accepts both the nested {"price": {"weight": 30}} shape and
// the flat {"price": 30} shape.
func (n *Normalizer) criteriaField(payload map[string]interface{}) map[models.Criterion]int {
	raw, ok := mapField(payload, "criteria")
	if !ok {
		return nil
	}

	out := make(map[models.Criterion]int)
	for name, v := range raw {
		criterion, known := criterionAliases[models.NormalizeCategory(name)]
		if !known {
			continue
		}

		var weight int
		switch val := v.(type) {
		case map[string]interface{}:
			weight = intValue(val["weight"])
		default:
			weight = intValue(val)
		}
		if weight > 0 {
			out[criterion] = weight
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func (n *Normalizer) applyDefaults(spec *models.RequirementSpec) {
	// Categories behave as a set: drop blanks and duplicate spellings,
	// keeping the first occurrence. Never filter the caller's slice in place.
	cleaned := make([]string, 0, len(spec.Categories))
	seen := make(map[string]bool, len(spec.Categories))
	for _, c := range spec.Categories {
		normalized := models.NormalizeCategory(c)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		cleaned = append(cleaned, c)
	}
	spec.Categories = cleaned
	if len(spec.Categories) == 0 {
		spec.Categories = []string{models.CategoryGeneric}
	}

	if len(spec.Criteria) == 0 {
		if n.hasAcceleratorCategory(spec) {
			spec.Criteria = cloneCriteria(models.DefaultComplianceCriteria)
		} else {
			spec.Criteria = cloneCriteria(models.DefaultCriteria)
		}
	}
}

func (n *Normalizer) hasAcceleratorCategory(spec *models.RequirementSpec) bool {
	if spec.Accelerator != nil {
		return true
	}
	for _, c := range spec.Categories {
		if models.IsAcceleratorCategory(c) {
			return true
		}
	}
	return false
}

func (n *Normalizer) genericSpec() *models.RequirementSpec {
	return &models.RequirementSpec{
		Title:      "Untitled request",
		Categories: []string{models.CategoryGeneric},
		Criteria:   cloneCriteria(models.DefaultCriteria),
	}
}

// --- decoding helpers ---

func decodeSub(src map[string]interface{}, dst interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

func stringField(payload map[string]interface{}, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

func mapField(payload map[string]interface{}, key string) (map[string]interface{}, bool) {
	m, ok := payload[key].(map[string]interface{})
	return m, ok && len(m) > 0
}

func categoriesField(payload map[string]interface{}) []string {
	switch v := payload["categories"].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func cloneCriteria(src map[models.Criterion]int) map[models.Criterion]int {
	out := make(map[models.Criterion]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func payloadTypeName(v interface{}) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
