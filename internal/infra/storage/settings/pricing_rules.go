package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

const (
	channelRulesTable = "channel_pricing_rules"
	areaRulesTable    = "area_pricing_rules"
)

var ruleColumns = []string{
	"hourly_rate_per_cleaner",
	"materials_price_per_cleaner",
	"tax_rate",
	"currency",
	"is_active",
	"effective_from",
	"effective_to",
	"created_at",
}

// ListChannelRules возвращает правила каналов (channelID == nil - всех каналов)
func (r *Repository) ListChannelRules(ctx context.Context, channelID *int64) ([]domain.ChannelPricingRule, error) {
	selectBuilder := psqlbuilder.Select(append([]string{"id", "channel_id"}, ruleColumns...)...).
		From(channelRulesTable).
		OrderBy("channel_id ASC", "effective_from ASC", "id ASC")
	if channelID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"channel_id": *channelID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListChannelRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError("ListChannelRules - execute query", err)
	}
	defer rows.Close()

	rules := make([]domain.ChannelPricingRule, 0)
	for rows.Next() {
		var rule domain.ChannelPricingRule
		if err := scanRule(rows, &rule.ID, &rule.ChannelID, &rule.PricingTerms, &rule.IsActive, &rule.Effective, &rule.CreatedAt); err != nil {
			return nil, readError("ListChannelRules - scan row", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("ListChannelRules - rows error", err)
	}

	return rules, nil
}

// GetChannelRuleByID получает правило канала по ID
func (r *Repository) GetChannelRuleByID(ctx context.Context, id int64) (*domain.ChannelPricingRule, error) {
	query, args, err := psqlbuilder.Select(append([]string{"id", "channel_id"}, ruleColumns...)...).
		From(channelRulesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetChannelRuleByID - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.ChannelPricingRule
	err = scanRule(r.executor(ctx).QueryRowContext(ctx, query, args...),
		&rule.ID, &rule.ChannelID, &rule.PricingTerms, &rule.IsActive, &rule.Effective, &rule.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, readError("GetChannelRuleByID - scan rule", err)
	}

	return &rule, nil
}

// CreateChannelRule создает правило канала
func (r *Repository) CreateChannelRule(ctx context.Context, rule *domain.ChannelPricingRule) (*domain.ChannelPricingRule, error) {
	query, args, err := insertRule(channelRulesTable, "channel_id", rule.ChannelID, rule.PricingTerms, rule.IsActive, rule.Effective)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateChannelRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, writeError("CreateChannelRule", err)
	}
	return rule, nil
}

// CloseChannelRule задает конец интервала действия правила канала
func (r *Repository) CloseChannelRule(ctx context.Context, id int64, effectiveTo time.Time) error {
	return r.updateRule(ctx, channelRulesTable, "CloseChannelRule", id, "effective_to", effectiveTo)
}

// SetChannelRuleActive включает или выключает правило канала
func (r *Repository) SetChannelRuleActive(ctx context.Context, id int64, active bool) error {
	return r.updateRule(ctx, channelRulesTable, "SetChannelRuleActive", id, "is_active", active)
}

// ListAreaRules возвращает правила особых зон (areaCode == nil - всех зон)
func (r *Repository) ListAreaRules(ctx context.Context, areaCode *string) ([]domain.AreaPricingRule, error) {
	selectBuilder := psqlbuilder.Select(append([]string{"id", "area_code"}, ruleColumns...)...).
		From(areaRulesTable).
		OrderBy("area_code ASC", "effective_from ASC", "id ASC")
	if areaCode != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"area_code": *areaCode})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAreaRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError("ListAreaRules - execute query", err)
	}
	defer rows.Close()

	rules := make([]domain.AreaPricingRule, 0)
	for rows.Next() {
		var rule domain.AreaPricingRule
		if err := scanRule(rows, &rule.ID, &rule.AreaCode, &rule.PricingTerms, &rule.IsActive, &rule.Effective, &rule.CreatedAt); err != nil {
			return nil, readError("ListAreaRules - scan row", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("ListAreaRules - rows error", err)
	}

	return rules, nil
}

// CreateAreaRule создает правило особой зоны
func (r *Repository) CreateAreaRule(ctx context.Context, rule *domain.AreaPricingRule) (*domain.AreaPricingRule, error) {
	query, args, err := insertRule(areaRulesTable, "area_code", rule.AreaCode, rule.PricingTerms, rule.IsActive, rule.Effective)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAreaRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, writeError("CreateAreaRule", err)
	}
	return rule, nil
}

// CloseAreaRule задает конец интервала действия правила зоны
func (r *Repository) CloseAreaRule(ctx context.Context, id int64, effectiveTo time.Time) error {
	return r.updateRule(ctx, areaRulesTable, "CloseAreaRule", id, "effective_to", effectiveTo)
}

func insertRule(table, scopeColumn string, scope interface{}, terms domain.PricingTerms, active bool, effective domain.EffectivePeriod) (string, []interface{}, error) {
	return psqlbuilder.Insert(table).
		Columns(
			scopeColumn,
			"hourly_rate_per_cleaner",
			"materials_price_per_cleaner",
			"tax_rate",
			"currency",
			"is_active",
			"effective_from",
			"effective_to",
		).
		Values(
			scope,
			terms.HourlyRatePerCleaner,
			terms.MaterialsPricePerCleaner,
			terms.TaxRate,
			terms.Currency,
			active,
			effective.From,
			effective.To,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func (r *Repository) updateRule(ctx context.Context, table, op string, id int64, column string, value interface{}) error {
	query, args, err := psqlbuilder.Update(table).
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(op, err)
	}
	return expectOneRow(result, op)
}

func scanRule(row rowScanner, id, scope interface{}, terms *domain.PricingTerms, active *bool, effective *domain.EffectivePeriod, createdAt *time.Time) error {
	var effectiveTo sql.NullTime

	err := row.Scan(
		id,
		scope,
		&terms.HourlyRatePerCleaner,
		&terms.MaterialsPricePerCleaner,
		&terms.TaxRate,
		&terms.Currency,
		active,
		&effective.From,
		&effectiveTo,
		createdAt,
	)
	if err != nil {
		return err
	}

	if effectiveTo.Valid {
		to := effectiveTo.Time
		effective.To = &to
	}
	return nil
}
