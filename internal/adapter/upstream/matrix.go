package upstream

import (
	"sort"
	"strings"
	"time"

	"github.com/yuvia/flight-results/internal/domain"
	"github.com/yuvia/flight-results/internal/infrastructure/timeutil"
)

var matrixAliases = AliasTable{
	"date":     {"date_iso", "date", "depart_date"},
	"dateStr":  {"date_str"},
	"price":    {"price", "value", "amount", "min_price"},
	"currency": {"currency"},
}

// NormalizeMatrix converts a price-matrix payload into calendar entries.
// Accepted payloads are a bare array, {matrix: [...]}, {data: [...]},
// {data: {date: {...}}} and {entries: {date: {...}}}. Entries without an ISO
// date or a positive price are dropped. The result is sorted by date.
func NormalizeMatrix(payload any, currency string) []domain.MatrixEntry {
	items := matrixItems(payload)
	out := make([]domain.MatrixEntry, 0, len(items))
	for _, item := range items {
		if entry, ok := normalizeMatrixEntry(item, currency); ok {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func matrixItems(payload any) []Raw {
	switch p := payload.(type) {
	case []any:
		return objectsOf(p)
	case map[string]any:
		if list, ok := p["matrix"].([]any); ok {
			return objectsOf(list)
		}
		for _, key := range []string{"data", "entries"} {
			switch inner := p[key].(type) {
			case []any:
				return objectsOf(inner)
			case map[string]any:
				return keyedItems(inner)
			}
		}
	}
	return nil
}

// keyedItems flattens {date: {...}} maps, using the key as the date when the entry has none.
func keyedItems(m map[string]any) []Raw {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Raw, 0, len(m))
	for _, k := range keys {
		obj, ok := m[k].(map[string]any)
		if !ok {
			continue
		}
		item := make(Raw, len(obj)+1)
		for field, v := range obj {
			item[field] = v
		}
		if !matrixAliases.Has(item, "date") {
			item["date"] = k
		}
		out = append(out, item)
	}
	return out
}

func normalizeMatrixEntry(item Raw, currency string) (domain.MatrixEntry, bool) {
	date, ok := timeutil.DateOnly(matrixAliases.String(item, "date"))
	if !ok {
		return domain.MatrixEntry{}, false
	}
	price, ok := matrixAliases.Number(item, "price")
	if !ok || price <= 0 {
		return domain.MatrixEntry{}, false
	}

	dateStr := matrixAliases.String(item, "dateStr")
	if dateStr == "" {
		t, _ := time.Parse(domain.DateLayout, date)
		dateStr = timeutil.DisplayDate(t)
	}

	return domain.MatrixEntry{
		Date:     date,
		DateStr:  dateStr,
		Price:    price,
		Currency: strings.ToUpper(firstNonEmpty(matrixAliases.String(item, "currency"), currency, domain.DefaultCurrency)),
	}, true
}
