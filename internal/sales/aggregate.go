package sales

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Item is one priced product line inside a sale.
type Item struct {
	Product   string
	Quantity  float64
	UnitPrice float64
}

func (it Item) LineTotal() float64 { return it.Quantity * it.UnitPrice }

// Group collects every line item sharing one SALE_ID.
type Group struct {
	SaleID string
	Date   string // first non-empty SALE_Date seen
	Items  []Item
}

func (g *Group) Subtotal() float64 {
	var sum float64
	for _, it := range g.Items {
		sum += it.LineTotal()
	}
	return sum
}

// Result is the aggregation outcome: groups keyed by stringified SALE_ID,
// the grand total over all accepted lines, and the skipped-row count.
type Result struct {
	Groups     map[string]*Group
	GrandTotal float64
	ErrorCount int
}

// Aggregate folds decoded sales rows into groups. A row is skipped (and
// counted) when it is not an object, has no SALE_ID, names a product the
// catalog does not know, or carries a non-numeric quantity. No row is
// ever fatal.
func Aggregate(data any, prices map[string]float64) Result {
	res := Result{Groups: make(map[string]*Group)}

	list, ok := data.([]any)
	if !ok {
		log.Error().Msg("sales record JSON must be a list of rows")
		res.ErrorCount = 1
		return res
	}

	for idx, raw := range list {
		row, ok := raw.(map[string]any)
		if !ok {
			log.Warn().Int("row", idx).Msg("sales row is not an object; skipped")
			res.ErrorCount++
			continue
		}

		saleID, hasID := row["SALE_ID"]
		if !hasID || saleID == nil {
			log.Warn().Int("row", idx).Msg("sales row missing SALE_ID; skipped")
			res.ErrorCount++
			continue
		}
		// an explicit empty-string id is accepted and groups under ""
		key := stringifyID(saleID)

		product, ok := row["Product"].(string)
		if !ok || strings.TrimSpace(product) == "" {
			log.Warn().Int("row", idx).Msg("sales row has invalid Product; skipped")
			res.ErrorCount++
			continue
		}
		price, known := prices[product]
		if !known {
			log.Warn().Int("row", idx).Str("product", product).Msg("product not in catalog; skipped")
			res.ErrorCount++
			continue
		}
		qty, ok := toFloat(row["Quantity"])
		if !ok {
			log.Warn().Int("row", idx).Str("product", product).Msg("invalid Quantity; skipped")
			res.ErrorCount++
			continue
		}

		g := res.Groups[key]
		if g == nil {
			g = &Group{SaleID: key}
			res.Groups[key] = g
		}
		if g.Date == "" {
			if d := stringifyID(row["SALE_Date"]); d != "" {
				g.Date = d
			}
		}

		item := Item{Product: product, Quantity: qty, UnitPrice: price}
		g.Items = append(g.Items, item)
		res.GrandTotal += item.LineTotal()
	}
	return res
}

// SortedIDs orders group keys for the report: integer-literal ids first
// in numeric order, then the rest lexically.
func SortedIDs(groups map[string]*Group) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, ierr := strconv.ParseInt(ids[i], 10, 64)
		nj, jerr := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case ierr == nil && jerr == nil:
			return ni < nj
		case ierr == nil:
			return true
		case jerr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}
