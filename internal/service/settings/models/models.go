package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// Request модели

// PricingRuleRequest условия нового тарифа канала или особой зоны
type PricingRuleRequest struct {
	HourlyRatePerCleaner     decimal.Decimal `json:"hourlyRatePerCleaner"`
	MaterialsPricePerCleaner decimal.Decimal `json:"materialsPricePerCleaner"`
	TaxRate                  decimal.Decimal `json:"taxRate"`
	Currency                 string          `json:"currency"`
	EffectiveFrom            time.Time       `json:"effectiveFrom"`
	EffectiveTo              *time.Time      `json:"effectiveTo,omitempty"`
}

// ToDomainTerms конвертирует request в условия тарифа
func (r *PricingRuleRequest) ToDomainTerms() domain.PricingTerms {
	currency := r.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.PricingTerms{
		HourlyRatePerCleaner:     r.HourlyRatePerCleaner,
		MaterialsPricePerCleaner: r.MaterialsPricePerCleaner,
		TaxRate:                  r.TaxRate,
		Currency:                 currency,
	}
}

// ToDomainEffective конвертирует request в интервал действия
func (r *PricingRuleRequest) ToDomainEffective() domain.EffectivePeriod {
	return domain.EffectivePeriod{From: r.EffectiveFrom, To: r.EffectiveTo}
}

// SpecialAreaRequest запрос на создание/обновление особой зоны
type SpecialAreaRequest struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	SearchKeywords []string `json:"searchKeywords"`
	IsActive       *bool    `json:"isActive,omitempty"` // по умолчанию true
}

// TimePeriodRequest запрос на создание/обновление периода дня
type TimePeriodRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	StartTime    string `json:"startTime"` // "08:00"
	EndTime      string `json:"endTime"`   // "12:00"
	DisplayOrder int    `json:"displayOrder"`
}

// GapRuleRequest запрос на установку минимального зазора
type GapRuleRequest struct {
	ChannelID         *int64 `json:"channelId,omitempty"` // nil - глобальное правило
	MinimumGapMinutes int    `json:"minimumGapMinutes"`
}

// Response модели

// PricingRuleResponse тариф канала или особой зоны
type PricingRuleResponse struct {
	ID                       int64           `json:"id"`
	Scope                    string          `json:"scope"`
	ChannelID                *int64          `json:"channelId,omitempty"`
	AreaCode                 *string         `json:"areaCode,omitempty"`
	HourlyRatePerCleaner     decimal.Decimal `json:"hourlyRatePerCleaner"`
	MaterialsPricePerCleaner decimal.Decimal `json:"materialsPricePerCleaner"`
	TaxRate                  decimal.Decimal `json:"taxRate"`
	Currency                 string          `json:"currency"`
	IsActive                 bool            `json:"isActive"`
	EffectiveFrom            time.Time       `json:"effectiveFrom"`
	EffectiveTo              *time.Time      `json:"effectiveTo,omitempty"`
	CreatedAt                time.Time       `json:"createdAt"`
}

// PricingRuleListResponse список тарифов
type PricingRuleListResponse struct {
	Rules []PricingRuleResponse `json:"rules"`
}

// SpecialAreaResponse особая зона
type SpecialAreaResponse struct {
	ID             int64    `json:"id"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	SearchKeywords []string `json:"searchKeywords"`
	IsActive       bool     `json:"isActive"`
}

// SpecialAreaListResponse список особых зон
type SpecialAreaListResponse struct {
	Areas []SpecialAreaResponse `json:"areas"`
}

// TimePeriodResponse период дня
type TimePeriodResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	DisplayOrder int    `json:"displayOrder"`
}

// TimePeriodListResponse список периодов дня
type TimePeriodListResponse struct {
	Periods []TimePeriodResponse `json:"periods"`
}

// GapRuleResponse правило минимального зазора
type GapRuleResponse struct {
	ID                int64  `json:"id"`
	ChannelID         *int64 `json:"channelId,omitempty"`
	MinimumGapMinutes int    `json:"minimumGapMinutes"`
}

// GapRuleListResponse список правил зазора
type GapRuleListResponse struct {
	Rules []GapRuleResponse `json:"rules"`
}

// Методы конвертации

// FromChannelRule конвертирует тариф канала в DTO
func FromChannelRule(r *domain.ChannelPricingRule) PricingRuleResponse {
	channelID := r.ChannelID
	return PricingRuleResponse{
		ID:                       r.ID,
		Scope:                    string(domain.ScopeChannel),
		ChannelID:                &channelID,
		HourlyRatePerCleaner:     r.HourlyRatePerCleaner,
		MaterialsPricePerCleaner: r.MaterialsPricePerCleaner,
		TaxRate:                  r.TaxRate,
		Currency:                 r.Currency,
		IsActive:                 r.IsActive,
		EffectiveFrom:            r.Effective.From,
		EffectiveTo:              r.Effective.To,
		CreatedAt:                r.CreatedAt,
	}
}

// FromAreaRule конвертирует тариф особой зоны в DTO
func FromAreaRule(r *domain.AreaPricingRule) PricingRuleResponse {
	areaCode := r.AreaCode
	return PricingRuleResponse{
		ID:                       r.ID,
		Scope:                    string(domain.ScopeArea),
		AreaCode:                 &areaCode,
		HourlyRatePerCleaner:     r.HourlyRatePerCleaner,
		MaterialsPricePerCleaner: r.MaterialsPricePerCleaner,
		TaxRate:                  r.TaxRate,
		Currency:                 r.Currency,
		IsActive:                 r.IsActive,
		EffectiveFrom:            r.Effective.From,
		EffectiveTo:              r.Effective.To,
		CreatedAt:                r.CreatedAt,
	}
}

// FromChannelRuleList конвертирует список тарифов канала в DTO
func FromChannelRuleList(rules []domain.ChannelPricingRule) *PricingRuleListResponse {
	resp := &PricingRuleListResponse{Rules: make([]PricingRuleResponse, 0, len(rules))}
	for i := range rules {
		resp.Rules = append(resp.Rules, FromChannelRule(&rules[i]))
	}
	return resp
}

// FromSpecialArea конвертирует особую зону в DTO
func FromSpecialArea(a *domain.SpecialArea) SpecialAreaResponse {
	keywords := a.SearchKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return SpecialAreaResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		SearchKeywords: keywords,
		IsActive:       a.IsActive,
	}
}

// FromSpecialAreaList конвертирует список особых зон в DTO
func FromSpecialAreaList(areas []domain.SpecialArea) *SpecialAreaListResponse {
	resp := &SpecialAreaListResponse{Areas: make([]SpecialAreaResponse, 0, len(areas))}
	for i := range areas {
		resp.Areas = append(resp.Areas, FromSpecialArea(&areas[i]))
	}
	return resp
}

// FromTimePeriod конвертирует период дня в DTO
func FromTimePeriod(p *domain.TimePeriod) TimePeriodResponse {
	return TimePeriodResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		StartTime:    p.StartTime.String(),
		EndTime:      p.EndTime.String(),
		DisplayOrder: p.DisplayOrder,
	}
}

// FromTimePeriodList конвертирует список периодов в DTO
func FromTimePeriodList(periods []domain.TimePeriod) *TimePeriodListResponse {
	resp := &TimePeriodListResponse{Periods: make([]TimePeriodResponse, 0, len(periods))}
	for i := range periods {
		resp.Periods = append(resp.Periods, FromTimePeriod(&periods[i]))
	}
	return resp
}

// FromGapRule конвертирует правило зазора в DTO
func FromGapRule(g *domain.GapRule) GapRuleResponse {
	return GapRuleResponse{
		ID:                g.ID,
		ChannelID:         g.ChannelID,
		MinimumGapMinutes: g.MinimumGapMinutes,
	}
}

// FromGapRuleList конвертирует список правил зазора в DTO
func FromGapRuleList(rules []domain.GapRule) *GapRuleListResponse {
	resp := &GapRuleListResponse{Rules: make([]GapRuleResponse, 0, len(rules))}
	for i := range rules {
		resp.Rules = append(resp.Rules, FromGapRule(&rules[i]))
	}
	return resp
}
