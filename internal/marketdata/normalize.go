package marketdata

import (
	"encoding/json"
	"strconv"
	"strings"

	domain "product-pricing-service/pkg/types"
)

// Field aliases seen across marketplace scrape payloads. The first present
// alias wins.
var (
	titleKeys     = []string{"title", "name", "itemTitle", "listing_title"}
	priceKeys     = []string{"price", "salePrice", "currentPrice", "buyItNowPrice", "amount", "listing_price"}
	urlKeys       = []string{"url", "link", "itemUrl", "itemWebUrl", "listing_url"}
	sellerKeys    = []string{"seller", "sellerName", "seller_name", "shop"}
	conditionKeys = []string{"condition", "conditionDisplay", "item_condition"}
	shippingKeys  = []string{"shippingCost", "shipping", "shippingPrice", "shipping_cost"}
	locationKeys  = []string{"location", "itemLocation", "city"}
	imageKeys     = []string{"imageUrl", "image", "thumbnail", "image_url"}
	soldKeys      = []string{"isSold", "sold", "is_sold"}
)

// Normalize converts a raw marketplace record into a domain listing. Prices
// that cannot be parsed become 0 and are excluded downstream; missing
// optional fields default to zero values. Normalization never fails.
func Normalize(platform domain.Platform, raw RawListing) domain.Listing {
	l := domain.Listing{
		Platform:  platform,
		Title:     stringField(raw, titleKeys),
		Condition: stringField(raw, conditionKeys),
		URL:       stringField(raw, urlKeys),
		Seller:    stringField(raw, sellerKeys),
		Location:  stringField(raw, locationKeys),
		ImageURL:  stringField(raw, imageKeys),
		IsSold:    boolField(raw, soldKeys),
	}

	if v, ok := anyField(raw, priceKeys); ok {
		l.Price = ParsePrice(v)
	}

	if v, ok := anyField(raw, shippingKeys); ok {
		if cost := ParsePrice(v); cost > 0 {
			l.ShippingCost = &cost
		}
	}

	return l
}

// NormalizeAll converts a record batch from one platform.
func NormalizeAll(platform domain.Platform, raws []RawListing) []domain.Listing {
	listings := make([]domain.Listing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, Normalize(platform, raw))
	}
	return listings
}

// ParsePrice coerces a price-like value (number, or string with currency
// symbols and thousands separators) to a non-negative float. Anything
// unparsable yields 0.
func ParsePrice(v any) float64 {
	price := parsePriceValue(v)
	if price < 0 {
		return 0
	}
	return price
}

func parsePriceValue(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parsePriceString(val)
	case bool, nil:
		return 0
	default:
		return 0
	}
}

func parsePriceString(s string) float64 {
	// Keep digits, dots, and commas; everything else (currency symbols,
	// whitespace, "USD") is stripped.
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	// Commas are thousands separators; drop them.
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

func stringField(raw RawListing, keys []string) string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func anyField(raw RawListing, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func boolField(raw RawListing, keys []string) bool {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case bool:
			return v
		case string:
			if v == "true" || v == "sold" {
				return true
			}
		}
	}
	return false
}
