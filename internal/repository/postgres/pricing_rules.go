package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erendoru/panobu-api/internal/domain"
	"github.com/erendoru/panobu-api/pkg/errors"
)

type pricingRuleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPricingRuleRepository creates a new pricing rule repository
func NewPricingRuleRepository(db *sql.DB, logger *zap.Logger) *pricingRuleRepository {
	return &pricingRuleRepository{
		db:     db,
		logger: logger,
	}
}

const ruleColumns = `id, name, panel_type, owner_name, city, min_quantity, discount_percent, fixed_unit_price, priority, is_active, created_at, updated_at`

func (r *pricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	if rule.UpdatedAt.IsZero() {
		rule.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.Name,
		rule.PanelType,
		rule.OwnerName,
		rule.City,
		rule.MinQuantity,
		decimalPtrToNull(rule.DiscountPercent),
		decimalPtrToNull(rule.FixedUnitPrice),
		rule.Priority,
		rule.IsActive,
		rule.CreatedAt,
		rule.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create pricing rule", zap.Error(err))
		return err
	}

	return nil
}

func (r *pricingRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM pricing_rules WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "pricing rule", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get pricing rule", zap.Error(err))
		return nil, err
	}

	return rule, nil
}

func (r *pricingRuleRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM pricing_rules ORDER BY priority DESC, created_at ASC`)
}

// ListActive returns active rules in priority order. The engine re-sorts
// defensively, but keeping DB order identical makes tie-breaks reproducible.
func (r *pricingRuleRepository) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	return r.list(ctx, `SELECT `+ruleColumns+` FROM pricing_rules WHERE is_active = true ORDER BY priority DESC, created_at ASC`)
}

func (r *pricingRuleRepository) list(ctx context.Context, query string) ([]domain.PricingRule, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list pricing rules", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var rules []domain.PricingRule
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

func (r *pricingRuleRepository) Update(ctx context.Context, rule *domain.PricingRule) error {
	query := `
		UPDATE pricing_rules
		SET name = $2, panel_type = $3, owner_name = $4, city = $5, min_quantity = $6,
		    discount_percent = $7, fixed_unit_price = $8, priority = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`

	rule.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		rule.ID,
		rule.Name,
		rule.PanelType,
		rule.OwnerName,
		rule.City,
		rule.MinQuantity,
		decimalPtrToNull(rule.DiscountPercent),
		decimalPtrToNull(rule.FixedUnitPrice),
		rule.Priority,
		rule.IsActive,
		rule.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update pricing rule", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "pricing rule", ID: rule.ID.String()}
	}

	return nil
}

func (r *pricingRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pricing_rules WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete pricing rule", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "pricing rule", ID: id.String()}
	}

	return nil
}

func scanRule(scan func(dest ...interface{}) error) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var panelType, ownerName, city sql.NullString
	var discountPercent, fixedUnitPrice decimal.NullDecimal

	err := scan(
		&rule.ID,
		&rule.Name,
		&panelType,
		&ownerName,
		&city,
		&rule.MinQuantity,
		&discountPercent,
		&fixedUnitPrice,
		&rule.Priority,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if panelType.Valid {
		pt := domain.PanelType(panelType.String)
		rule.PanelType = &pt
	}
	if ownerName.Valid {
		rule.OwnerName = &ownerName.String
	}
	if city.Valid {
		rule.City = &city.String
	}
	if discountPercent.Valid {
		rule.DiscountPercent = &discountPercent.Decimal
	}
	if fixedUnitPrice.Valid {
		rule.FixedUnitPrice = &fixedUnitPrice.Decimal
	}

	return &rule, nil
}

func decimalPtrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
