package analyzer

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fixed defaults applied when no alias resolves and the snapshot has nothing.
const (
	defaultBeds      = 3.0
	defaultBaths     = 2.0
	defaultSqft      = 1500.0
	defaultYearBuilt = 2000
)

// aliasTable maps each canonical attribute to the upstream field names that
// may carry it, in priority order. Entries with dots descend into nested
// objects ("price.value" reads record["price"]["value"]). Adding support for
// a new upstream shape means extending this table, not adding branches.
var aliasTable = map[string][]string{
	"beds":  {"bedrooms", "beds", "bedroomCount", "num_beds"},
	"baths": {"bathrooms", "baths", "bathroomCount", "num_baths"},
	"sqft": {
		"livingArea", "livingAreaValue", "sqft", "living_area",
		"area", "livingArea.value",
	},
	"year": {"yearBuilt", "year_built", "yearBuiltEffective"},
	"price": {
		"price", "listPrice", "list_price", "price.value",
		"listPrice.value", "unformattedPrice",
	},
	"estimate": {
		"zestimate", "estimate", "zestimateValue", "homeValue",
		"zestimate.value", "estimates.zestimate",
	},
	"rent": {
		"rentZestimate", "rent_zestimate", "rentalZestimate",
		"rentZestimate.value",
	},
	"zpid": {"zpid", "zpid_str", "propertyId", "property_id"},
}

// Reconcile resolves canonical property attributes from an arbitrarily shaped
// upstream record. It unwraps a data/property envelope if present, walks the
// alias table per attribute taking the first non-null non-zero value, fills
// fixed defaults, and overrides a still-defaulted field from the snapshot.
// It only errors when the payload holds no usable record at all.
func Reconcile(raw map[string]any, snap *Snapshot) (*PropertyAttributes, error) {
	rec := unwrap(raw)
	if len(rec) == 0 {
		return nil, eris.New("analyzer: empty property record")
	}

	beds := resolveNumber(rec, "beds", defaultBeds)
	baths := resolveNumber(rec, "baths", defaultBaths)
	sqft := resolveNumber(rec, "sqft", defaultSqft)
	year := int(resolveNumber(rec, "year", defaultYearBuilt))
	price := resolveNumber(rec, "price", 0)
	rent := resolveNumber(rec, "rent", 0)
	zpid := resolveString(rec, "zpid")

	if snap != nil {
		if beds == defaultBeds && snap.Beds > 0 {
			beds = snap.Beds
		}
		if baths == defaultBaths && snap.Baths > 0 {
			baths = snap.Baths
		}
		if sqft == defaultSqft && snap.Sqft > 0 {
			sqft = snap.Sqft
		}
		if price == 0 && snap.Price > 0 {
			price = snap.Price
		}
		if rent == 0 && snap.RentEst > 0 {
			rent = snap.RentEst
		}
		if zpid == "" {
			zpid = snap.ZPID
		}
	}

	estimate := resolveNumber(rec, "estimate", 0)
	if estimate == 0 {
		if snap != nil && snap.Zestimate > 0 {
			estimate = snap.Zestimate
		} else {
			estimate = price * 1.1
		}
	}

	zap.L().Debug("analyzer: reconciled property",
		zap.String("zpid", zpid),
		zap.Float64("beds", beds),
		zap.Float64("sqft", sqft),
		zap.Float64("price", price),
		zap.Float64("estimate", estimate))

	return &PropertyAttributes{
		ZPID:      zpid,
		Beds:      beds,
		Baths:     baths,
		Sqft:      sqft,
		YearBuilt: year,
		ListPrice: price,
		Estimate:  estimate,
		RentEst:   rent,
	}, nil
}

// unwrap peels a data or property envelope off the record, one level at a
// time, so both {"data": {"property": {...}}} and bare records resolve.
func unwrap(raw map[string]any) map[string]any {
	rec := raw
	for _, key := range []string{"data", "property"} {
		if inner, ok := rec[key].(map[string]any); ok {
			rec = inner
		}
	}
	return rec
}

func resolveNumber(rec map[string]any, attr string, fallback float64) float64 {
	for _, alias := range aliasTable[attr] {
		if v, ok := lookupPath(rec, alias); ok {
			if n, ok := toNumber(v); ok && n != 0 {
				return n
			}
		}
	}
	return fallback
}

func resolveString(rec map[string]any, attr string) string {
	for _, alias := range aliasTable[attr] {
		if v, ok := lookupPath(rec, alias); ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			case float64:
				if s != 0 {
					return strconv.FormatFloat(s, 'f', -1, 64)
				}
			}
		}
	}
	return ""
}

// lookupPath reads a possibly dotted path out of a nested map.
func lookupPath(rec map[string]any, path string) (any, bool) {
	cur := any(rec)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		clean := strings.TrimSpace(strings.Map(func(r rune) rune {
			if r == '$' || r == ',' {
				return -1
			}
			return r
		}, n))
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
