package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

func TestNormalizeNilAndUnknownPayloads(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	for _, payload := range []interface{}{nil, 42, "laptops", map[string]interface{}{}} {
		spec := n.Normalize(payload)
		require.NotNil(t, spec)
		assert.Equal(t, []string{models.CategoryGeneric}, spec.Categories)
		assert.Equal(t, models.DefaultCriteria, spec.Criteria)
	}
}

func TestNormalizeNestedMapPayload(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(map[string]interface{}{
		"title":        "Office refresh",
		"buyerCountry": "Germany",
		"categories":   []interface{}{"Laptops", "Monitors"},
		"laptops": map[string]interface{}{
			"quantity":  "25",
			"processor": "Intel i5",
			"memory":    "16GB DDR4",
		},
		"monitors": map[string]interface{}{
			"quantity":   float64(25),
			"screenSize": "27 inch",
		},
		"criteria": map[string]interface{}{
			"price":    map[string]interface{}{"weight": float64(60)},
			"quality":  float64(25),
			"delivery": map[string]interface{}{"weight": 15},
		},
	})

	assert.Equal(t, "Office refresh", spec.Title)
	assert.Equal(t, "Germany", spec.BuyerCountry)
	assert.Equal(t, []string{"Laptops", "Monitors"}, spec.Categories)

	require.NotNil(t, spec.Laptops)
	assert.Equal(t, 25, spec.Laptops.Quantity)
	assert.Equal(t, "Intel i5", spec.Laptops.Processor)

	require.NotNil(t, spec.Monitors)
	assert.Equal(t, 25, spec.Monitors.Quantity)

	assert.Equal(t, map[models.Criterion]int{
		models.CriterionPrice:    60,
		models.CriterionQuality:  25,
		models.CriterionDelivery: 15,
	}, spec.Criteria)
}

func TestNormalizeDeduplicatesCategorySpellings(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(map[string]interface{}{
		"categories": []interface{}{"Laptops", "laptops", "", " LAPTOPS ", "Monitors"},
	})

	assert.Equal(t, []string{"Laptops", "Monitors"}, spec.Categories)
}

func TestNormalizeTypedSpecLeavesCallerCategoriesIntact(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	original := []string{"Laptops", "", "laptops"}
	spec := n.Normalize(&models.RequirementSpec{Categories: original})

	assert.Equal(t, []string{"Laptops"}, spec.Categories)
	assert.Equal(t, []string{"Laptops", "", "laptops"}, original)
}

func TestNormalizeCriterionAliases(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(map[string]interface{}{
		"categories": []interface{}{"Laptops"},
		"criteria": map[string]interface{}{
			"performance":  float64(50),
			"availability": float64(30),
			"price":        float64(20),
			"sustainable":  float64(99),
		},
	})

	assert.Equal(t, map[models.Criterion]int{
		models.CriterionQuality:  50,
		models.CriterionDelivery: 30,
		models.CriterionPrice:    20,
	}, spec.Criteria)
}

func TestNormalizeAcceleratorAliasMerge(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(map[string]interface{}{
		"categories": []interface{}{"GPU"},
		"aiHardware": map[string]interface{}{
			"minMemory":       "40GB",
			"minComputePower": "100 TFLOPS",
		},
		"gpuRequirements": map[string]interface{}{
			"minMemory": "80GB",
		},
	})

	require.NotNil(t, spec.Accelerator)
	// Later aliases win on conflicting keys.
	assert.Equal(t, "80GB", spec.Accelerator.MinMemory)
	assert.Equal(t, "100 TFLOPS", spec.Accelerator.MinComputePower)
}

func TestNormalizeAcceleratorDefaultsToComplianceCriteria(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(map[string]interface{}{
		"categories": []interface{}{"AI Accelerator"},
	})

	assert.Equal(t, models.DefaultComplianceCriteria, spec.Criteria)
	assert.True(t, spec.HasComplianceCriterion())
}

func TestNormalizeTypedSpecKeepsValuesAndFillsDefaults(t *testing.T) {
	n := NewNormalizer(logger.NewTestLogger(t))

	spec := n.Normalize(&models.RequirementSpec{
		Title:        "Cluster buildout",
		BuyerCountry: "United States",
		Accelerator:  &models.AcceleratorRequirement{MinMemory: "80GB"},
	})

	assert.Equal(t, "Cluster buildout", spec.Title)
	assert.Equal(t, []string{models.CategoryGeneric}, spec.Categories)
	assert.Equal(t, models.DefaultComplianceCriteria, spec.Criteria)
}

func TestValidatePayloadWarnsOnWrongTypes(t *testing.T) {
	warnings := validatePayload(map[string]interface{}{
		"title":      float64(7),
		"categories": "Laptops",
	})
	assert.NotEmpty(t, warnings)
}
