package settings

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

// ListGapRules возвращает правила зазора, глобальное правило первым
func (r *Repository) ListGapRules(ctx context.Context) ([]domain.GapRule, error) {
	query, args, err := psqlbuilder.Select("id", "channel_id", "minimum_gap_minutes").
		From("gap_rules").
		OrderBy("channel_id ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListGapRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError("ListGapRules - execute query", err)
	}
	defer rows.Close()

	rules := make([]domain.GapRule, 0)
	for rows.Next() {
		var g domain.GapRule
		if err := rows.Scan(&g.ID, &g.ChannelID, &g.MinimumGapMinutes); err != nil {
			return nil, readError("ListGapRules - scan row", err)
		}
		rules = append(rules, g)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("ListGapRules - rows error", err)
	}

	return rules, nil
}

// UpsertGapRule создает или обновляет правило зазора канала (channelID == nil - глобальное)
func (r *Repository) UpsertGapRule(ctx context.Context, rule *domain.GapRule) (*domain.GapRule, error) {
	executor := r.executor(ctx)

	// Обновляем существующее правило
	updateBuilder := psqlbuilder.Update("gap_rules").
		Set("minimum_gap_minutes", rule.MinimumGapMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Suffix("RETURNING id")
	if rule.ChannelID == nil {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"channel_id": nil})
	} else {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"channel_id": *rule.ChannelID})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertGapRule - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, writeError("UpsertGapRule - update", err)
	}
	updated := rows.Next()
	if updated {
		if err := rows.Scan(&rule.ID); err != nil {
			rows.Close()
			return nil, readError("UpsertGapRule - scan id", err)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, readError("UpsertGapRule - rows error", err)
	}
	if updated {
		return rule, nil
	}

	// Правила еще нет - создаем
	query, args, err = psqlbuilder.Insert("gap_rules").
		Columns("channel_id", "minimum_gap_minutes").
		Values(rule.ChannelID, rule.MinimumGapMinutes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertGapRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, writeError("UpsertGapRule - insert", err)
	}
	return rule, nil
}
