package quote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/pricing-engine/internal/catalog"
	"github.com/noah-isme/pricing-engine/internal/common"
	"github.com/noah-isme/pricing-engine/internal/pricing"
)

// Handler wires the quote service to HTTP.
type Handler struct {
	Svc               *Service
	Validate          *validator.Validate
	DefaultTaxPercent float64
}

type tableDTO struct {
	Customer  float64 `json:"customer"`
	Business  float64 `json:"business"`
	Affiliate float64 `json:"affiliate"`
	Retailer  struct {
		Gold    float64 `json:"gold"`
		Premium float64 `json:"premium"`
		VIP     float64 `json:"vip"`
	} `json:"retailer"`
	Currency string `json:"currency,omitempty"`
}

type tierDTO struct {
	MinQuantity   int     `json:"minQuantity" validate:"min=0"`
	MaxQuantity   *int    `json:"maxQuantity,omitempty"`
	DiscountType  string  `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64 `json:"discountValue"`
}

type ruleDTO struct {
	Kind       string   `json:"kind" validate:"required,oneof=percentage fixed"`
	Percentage *float64 `json:"percentage,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Label      string   `json:"label,omitempty"`
}

type lineDTO struct {
	SKU            string    `json:"sku,omitempty"`
	PricingTable   *tableDTO `json:"pricingTable,omitempty"`
	Role           string    `json:"userRole" validate:"required"`
	Grade          string    `json:"retailerGrade,omitempty" validate:"omitempty,oneof=gold premium vip"`
	Quantity       int       `json:"quantity" validate:"required,min=1"`
	VolumeTiers    []tierDTO `json:"volumeDiscountTiers,omitempty" validate:"dive"`
	Rules          []ruleDTO `json:"additionalDiscountRules,omitempty" validate:"dive"`
	TaxRatePercent *float64  `json:"taxRatePercent,omitempty"`
}

type cartDTO struct {
	Items          []lineDTO `json:"items" validate:"required,min=1,dive"`
	TaxRatePercent *float64  `json:"taxRatePercent,omitempty"`
	ShippingCost   float64   `json:"shippingCost,omitempty"`
	DiscountAmount float64   `json:"discountAmount,omitempty"`
}

// Quote handles POST /api/v1/pricing/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var payload lineDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid quote request", err.Error())
		return
	}
	in, err := h.toLineInput(payload, h.DefaultTaxPercent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	breakdown, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": breakdown})
}

// Cart handles POST /api/v1/pricing/cart.
func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	var payload cartDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid cart request", err.Error())
		return
	}
	// Tax is applied once at cart level; per-line rates only apply when a
	// line sets one explicitly.
	in := CartInput{Lines: make([]LineInput, 0, len(payload.Items))}
	for _, item := range payload.Items {
		li, err := h.toLineInput(item, 0)
		if err != nil {
			h.writeError(w, err)
			return
		}
		in.Lines = append(in.Lines, li)
	}
	opts, err := h.toCartOptions(payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	in.Options = opts
	result, err := h.Svc.Cart(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

// Table handles GET /api/v1/pricing/tables/{sku}.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "quote service not configured", nil)
		return
	}
	sku := strings.TrimSpace(chi.URLParam(r, "sku"))
	if sku == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "sku is required", nil)
		return
	}
	table, err := h.Svc.Table(r.Context(), sku)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": table})
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "pricing table not found", nil)
	case errors.Is(err, pricing.ErrInvalidQuantity):
		common.JSONError(w, http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be at least 1", nil)
	case errors.Is(err, pricing.ErrInvalidAmount):
		common.JSONError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amounts must be finite numbers", nil)
	default:
		common.WriteError(w, err)
	}
}

func (h *Handler) toLineInput(payload lineDTO, defaultTaxPercent float64) (LineInput, error) {
	if strings.TrimSpace(payload.SKU) == "" && payload.PricingTable == nil {
		return LineInput{}, common.NewAppError("BAD_REQUEST", "either sku or pricingTable is required", http.StatusBadRequest, nil)
	}
	in := LineInput{
		SKU: payload.SKU,
		Context: pricing.Context{
			Role:     pricing.Role(strings.ToLower(strings.TrimSpace(payload.Role))),
			Grade:    pricing.Grade(payload.Grade),
			Quantity: payload.Quantity,
		},
	}
	if payload.PricingTable != nil {
		table, err := toTable(*payload.PricingTable)
		if err != nil {
			return LineInput{}, err
		}
		in.Table = &table
	}
	tiers := make([]pricing.VolumeTier, 0, len(payload.VolumeTiers))
	for _, t := range payload.VolumeTiers {
		value, err := pricing.AmountFromFloat(t.DiscountValue)
		if err != nil {
			return LineInput{}, err
		}
		tiers = append(tiers, pricing.VolumeTier{
			MinQuantity: t.MinQuantity,
			MaxQuantity: t.MaxQuantity,
			Kind:        pricing.Kind(t.DiscountType),
			Value:       value,
		})
	}
	in.Options.VolumeTiers = tiers

	rules := make([]pricing.Rule, 0, len(payload.Rules))
	for _, rd := range payload.Rules {
		rule := pricing.Rule{Kind: pricing.Kind(rd.Kind), Label: rd.Label}
		if rd.Percentage != nil {
			pct, err := pricing.AmountFromFloat(*rd.Percentage)
			if err != nil {
				return LineInput{}, err
			}
			rule.Percent = pct
		}
		if rd.Amount != nil {
			amount, err := pricing.AmountFromFloat(*rd.Amount)
			if err != nil {
				return LineInput{}, err
			}
			rule.Amount = amount
		}
		rules = append(rules, rule)
	}
	in.Options.Rules = rules

	tax, err := taxRate(payload.TaxRatePercent, defaultTaxPercent)
	if err != nil {
		return LineInput{}, err
	}
	in.Options.TaxRatePercent = tax
	return in, nil
}

func (h *Handler) toCartOptions(payload cartDTO) (pricing.CartOptions, error) {
	tax, err := taxRate(payload.TaxRatePercent, h.DefaultTaxPercent)
	if err != nil {
		return pricing.CartOptions{}, err
	}
	shipping, err := pricing.AmountFromFloat(payload.ShippingCost)
	if err != nil {
		return pricing.CartOptions{}, err
	}
	discount, err := pricing.AmountFromFloat(payload.DiscountAmount)
	if err != nil {
		return pricing.CartOptions{}, err
	}
	return pricing.CartOptions{
		TaxRatePercent: tax,
		ShippingCost:   shipping,
		DiscountAmount: discount,
	}, nil
}

func taxRate(override *float64, fallback float64) (decimal.Decimal, error) {
	if override != nil {
		return pricing.AmountFromFloat(*override)
	}
	return pricing.AmountFromFloat(fallback)
}

func toTable(dto tableDTO) (pricing.Table, error) {
	values := []float64{
		dto.Customer, dto.Business, dto.Affiliate,
		dto.Retailer.Gold, dto.Retailer.Premium, dto.Retailer.VIP,
	}
	decimals := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := pricing.AmountFromFloat(v)
		if err != nil {
			return pricing.Table{}, err
		}
		decimals[i] = d
	}
	return pricing.Table{
		Customer:  decimals[0],
		Business:  decimals[1],
		Affiliate: decimals[2],
		Retailer: pricing.RetailerPrices{
			Gold:    decimals[3],
			Premium: decimals[4],
			VIP:     decimals[5],
		},
		Currency: dto.Currency,
	}, nil
}
