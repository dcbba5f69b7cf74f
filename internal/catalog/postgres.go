package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/models"
)

const listByCategoryQuery = `
SELECT p.id, p.supplier_id, p.name, p.category, p.description, p.price,
       p.specifications, p.compute_specs, p.memory_specs, p.power_specs,
       p.supported_frameworks, p.compliance_info, p.warranty, p.in_stock,
       s.name, s.country, s.delivery_time, s.lead_time_days, s.is_verified
FROM products p
JOIN suppliers s ON s.id = p.supplier_id
WHERE LOWER(p.category) = $1`

// PostgresStore reads the candidate universe from the catalog database.
// JSONB columns hold the free-text specification bag and the typed
// accelerator sub-specs.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-postgres"}),
	}
}

func (s *PostgresStore) ListByCategory(ctx context.Context, category string) ([]models.Candidate, error) {
	normalized := models.NormalizeCategory(category)

	rows, err := s.db.QueryContext(ctx, listByCategoryQuery, normalized)
	if err != nil {
		return nil, fmt.Errorf("query products for category %q: %w", normalized, err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		c, err := s.scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	s.logger.Debug("collected candidates", map[string]interface{}{
		"category": normalized,
		"count":    len(candidates),
	})
	return candidates, nil
}

func (s *PostgresStore) scanCandidate(rows *sql.Rows) (models.Candidate, error) {
	var (
		c            models.Candidate
		description  sql.NullString
		specsRaw     []byte
		computeRaw   []byte
		memoryRaw    []byte
		powerRaw     []byte
		fwRaw        []byte
		complRaw     []byte
		warranty     sql.NullString
		deliveryTime sql.NullString
		leadTime     sql.NullInt64
	)

	err := rows.Scan(
		&c.Product.ID, &c.Product.SupplierID, &c.Product.Name, &c.Product.Category,
		&description, &c.Product.Price,
		&specsRaw, &computeRaw, &memoryRaw, &powerRaw,
		&fwRaw, &complRaw, &warranty, &c.Product.InStock,
		&c.Supplier.Name, &c.Supplier.Country, &deliveryTime, &leadTime, &c.Supplier.Verified,
	)
	if err != nil {
		return c, err
	}

	c.Supplier.ID = c.Product.SupplierID
	c.Product.Description = description.String
	c.Product.Warranty = warranty.String
	c.Supplier.DeliveryTime = deliveryTime.String
	c.Supplier.LeadTimeDays = int(leadTime.Int64)

	if err := unmarshalColumn(specsRaw, &c.Product.Specifications); err != nil {
		return c, fmt.Errorf("specifications for product %s: %w", c.Product.ID, err)
	}
	if err := unmarshalColumn(computeRaw, &c.Product.Compute); err != nil {
		return c, fmt.Errorf("compute specs for product %s: %w", c.Product.ID, err)
	}
	if err := unmarshalColumn(memoryRaw, &c.Product.Memory); err != nil {
		return c, fmt.Errorf("memory specs for product %s: %w", c.Product.ID, err)
	}
	if err := unmarshalColumn(powerRaw, &c.Product.Power); err != nil {
		return c, fmt.Errorf("power specs for product %s: %w", c.Product.ID, err)
	}
	if err := unmarshalColumn(fwRaw, &c.Product.SupportedFrameworks); err != nil {
		return c, fmt.Errorf("frameworks for product %s: %w", c.Product.ID, err)
	}
	if err := unmarshalColumn(complRaw, &c.Product.Compliance); err != nil {
		return c, fmt.Errorf("compliance info for product %s: %w", c.Product.ID, err)
	}
	return c, nil
}

// unmarshalColumn decodes a nullable JSONB column; NULL leaves dst zero.
func unmarshalColumn(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
