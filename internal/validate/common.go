package validate

import (
	"github.com/guptabinit/listform/internal/form"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Common-field keys shared by every listing regardless of category.
const (
	KeyTitle        = "listing_title"
	KeyPricingType  = "pricing_type"
	KeyPriceType    = "price_type"
	KeyPrice        = "price"
	KeyMaxPrice     = "max_price"
	KeyGallery      = "gallery"
	KeyContactName  = "contact_name"
	KeyContactEmail = "contact_email"
)

// Pricing modes a listing configuration can enable.
const (
	PricingPrice    = "price"
	PricingRange    = "range"
	PricingDisabled = "disabled"
)

// Price types selectable under the plain "price" mode.
const (
	PriceFixed      = "fixed"
	PriceNegotiable = "negotiable"
	PriceOnCall     = "on_call"
)

// RequiredCommon recomputes the required common-field key set after a pricing
// change. The caller supplies its base list (which already reflects
// configuration-hidden fields); the price-related keys are stripped and then
// re-added according to the current mode. Plain set union/difference, not a
// fixed schema.
func RequiredCommon(base []string, pricingType, priceType string) []string {
	req := lo.Without(base, KeyPriceType, KeyPrice, KeyMaxPrice)

	switch pricingType {
	case PricingPrice:
		req = lo.Union(req, []string{KeyPriceType})
		if priceType != PriceOnCall {
			req = lo.Union(req, []string{KeyPrice})
		}
	case PricingRange:
		req = lo.Union(req, []string{KeyPrice, KeyMaxPrice})
	}
	return req
}

// MissingCommon returns the required common keys whose values are empty,
// type-aware the same way Missing is (the gallery key holds a list).
func MissingCommon(required []string, state form.State) []string {
	return lo.Filter(required, func(key string, _ int) bool {
		return state.Get(key).IsEmpty()
	})
}

// PriceErrors returns the price keys whose non-empty values do not parse as
// positive decimals, plus max_price when a range has max below the minimum.
func PriceErrors(state form.State) []string {
	var bad []string

	price, priceOK := parsePrice(state.Get(KeyPrice))
	if !priceOK {
		bad = append(bad, KeyPrice)
	}
	maxPrice, maxOK := parsePrice(state.Get(KeyMaxPrice))
	if !maxOK {
		bad = append(bad, KeyMaxPrice)
	}

	if priceOK && maxOK && !state.Get(KeyPrice).IsEmpty() && !state.Get(KeyMaxPrice).IsEmpty() {
		if maxPrice.LessThan(price) {
			bad = append(bad, KeyMaxPrice)
		}
	}
	return bad
}

// parsePrice reports whether the value is an acceptable price: empty values
// are acceptable here (emptiness is the required-check's concern).
func parsePrice(v form.Value) (decimal.Decimal, bool) {
	if v.IsEmpty() {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(v.Scalar())
	if err != nil {
		return decimal.Zero, false
	}
	return d, d.IsPositive()
}
