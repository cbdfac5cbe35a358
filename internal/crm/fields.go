package crm

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names a target attribute of a normalized opportunity.
type Field string

const (
	FieldID              Field = "ID"
	FieldObjectID        Field = "ObjectID"
	FieldOpportunityID   Field = "OpportunityID"
	FieldName            Field = "Name"
	FieldAccountID       Field = "AccountID"
	FieldSalesStage      Field = "SalesStage"
	FieldExpectedRevenue Field = "ExpectedRevenueAmount"
	FieldCurrency        Field = "Currency"
	FieldCloseDate       Field = "CloseDate"
	FieldCreatedOn       Field = "CreatedOn"
	FieldLastChangedOn   Field = "LastChangedOn"
)

// FieldTable maps each target field to the upstream keys that may carry it,
// highest priority first. Dotted keys descend into nested objects.
type FieldTable map[Field][]string

// DefaultFieldTable covers the naming conventions seen across the SAP Sales
// Cloud v2 REST API and the older C4C OData service.
func DefaultFieldTable() FieldTable {
	return FieldTable{
		FieldID:              {"id", "ObjectID", "ID", "OpportunityID"},
		FieldObjectID:        {"ObjectID", "id", "ID"},
		FieldOpportunityID:   {"OpportunityID", "displayId", "OpportunityNumber"},
		FieldName:            {"name", "Name", "Description", "title", "Title"},
		FieldAccountID:       {"account.id", "AccountID", "Account"},
		FieldSalesStage:      {"status", "statusDescription", "SalesStage", "ProcessingStatusCodeText"},
		FieldExpectedRevenue: {"expectedRevenueAmount.content", "ExpectedRevenueAmount", "ExpectedValue", "Amount"},
		FieldCurrency:        {"expectedRevenueAmount.currencyCode", "Currency", "CurrencyCodeText"},
		FieldCloseDate:       {"closeDate", "CloseDate", "ExpectedClosingDate", "ClosingDate"},
		FieldCreatedOn:       {"adminData.createdOn", "CreatedOn", "CreationDateTime"},
		FieldLastChangedOn:   {"adminData.updatedOn", "LastChangedOn", "LastChangeDateTime"},
	}
}

// identifierKeys are the keys whose presence marks a payload as an opportunity
// record rather than an error envelope or an empty object.
var identifierKeys = []string{"id", "ObjectID", "ID"}

// HasIdentifier reports whether record carries one of the primary identifier keys.
func HasIdentifier(record map[string]any) bool {
	for _, key := range identifierKeys {
		if _, ok := stringValue(record[key]); ok {
			return true
		}
	}
	return false
}

// lookup walks a dotted path through nested objects.
func lookup(record map[string]any, path string) (any, bool) {
	var current any = record
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	if s, ok := current.(string); ok && s == "" {
		return nil, false
	}
	return current, true
}

// firstString returns the first candidate that holds a scalar value.
func firstString(record map[string]any, candidates []string) (string, bool) {
	for _, path := range candidates {
		v, ok := lookup(record, path)
		if !ok {
			continue
		}
		if s, ok := stringValue(v); ok {
			return s, true
		}
	}
	return "", false
}

// firstDecimal returns the first candidate that parses as a non-zero number.
func firstDecimal(record map[string]any, candidates []string) (decimal.Decimal, bool) {
	for _, path := range candidates {
		v, ok := lookup(record, path)
		if !ok {
			continue
		}
		if d, ok := decimalValue(v); ok && !d.IsZero() {
			return d, true
		}
	}
	return decimal.Zero, false
}

// firstTime returns the first candidate that parses as a timestamp.
func firstTime(record map[string]any, candidates []string) (time.Time, bool) {
	for _, path := range candidates {
		v, ok := lookup(record, path)
		if !ok {
			continue
		}
		if t, ok := timeValue(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func stringValue(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

func decimalValue(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	}
	return decimal.Zero, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02",
}

func timeValue(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)

	// OData v2 JSON dates: /Date(1690000000000)/ or /Date(1690000000000+0000)/
	if strings.HasPrefix(s, "/Date(") && strings.HasSuffix(s, ")/") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "/Date("), ")/")
		if len(inner) > 1 {
			if i := strings.IndexAny(inner[1:], "+-"); i >= 0 {
				inner = inner[:i+1]
			}
		}
		ms, err := strconv.ParseInt(inner, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
