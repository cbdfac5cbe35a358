// Package crm talks to the SAP CRM opportunity service and turns its loosely
// typed payloads into models.Opportunity values.
package crm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"opportunityrisks/internal/models"
	"opportunityrisks/internal/uuid"
)

// ErrEmptyUpstream is returned by Collection under PolicyFail when the
// upstream response holds no usable opportunities.
var ErrEmptyUpstream = errors.New("crm: upstream returned no usable opportunities")

// EmptyPolicy decides how Collection treats a degenerate upstream response:
// no records at all, or records none of which carry a display name.
type EmptyPolicy string

const (
	PolicyFail        EmptyPolicy = "fail"
	PolicyEmpty       EmptyPolicy = "empty"
	PolicyPlaceholder EmptyPolicy = "placeholder"
)

// ParseEmptyPolicy converts a configuration string into an EmptyPolicy.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch p := EmptyPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFail, PolicyEmpty, PolicyPlaceholder:
		return p, nil
	}
	return "", fmt.Errorf("unknown empty policy %q", s)
}

const (
	defaultCurrency = "USD"
	unnamedSingle   = "Unnamed Opportunity"
)

// Normalizer maps upstream opportunity payloads onto models.Opportunity
// using a single field-priority table. It holds no per-call state and is
// safe for concurrent use.
type Normalizer struct {
	fields FieldTable
	policy EmptyPolicy
	now    func() time.Time
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithEmptyPolicy sets the policy applied by Collection.
func WithEmptyPolicy(p EmptyPolicy) Option {
	return func(n *Normalizer) { n.policy = p }
}

// WithClock overrides the clock used for defaulted timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithFieldTable replaces the candidate keys for the fields present in t.
func WithFieldTable(t FieldTable) Option {
	return func(n *Normalizer) {
		for field, candidates := range t {
			n.fields[field] = candidates
		}
	}
}

// NewNormalizer returns a Normalizer with the default field table and PolicyEmpty.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		fields: DefaultFieldTable(),
		policy: PolicyEmpty,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Policy returns the configured empty-upstream policy.
func (n *Normalizer) Policy() EmptyPolicy { return n.policy }

// ExtractRecords locates the opportunity records inside payload. It checks
// d.results, a bare array, and value (an array, or one wrapped object) in
// that order, and otherwise treats a non-empty object as a single record.
// Anything else yields nil.
func ExtractRecords(payload any) []map[string]any {
	switch p := payload.(type) {
	case []any:
		return objects(p)
	case map[string]any:
		if d, ok := p["d"].(map[string]any); ok {
			if results, ok := d["results"].([]any); ok {
				return objects(results)
			}
		}
		switch value := p["value"].(type) {
		case []any:
			return objects(value)
		case map[string]any:
			// Single-entity envelope, as unwrapped by FetchOne.
			if len(value) == 0 {
				return nil
			}
			return []map[string]any{value}
		}
		if len(p) == 0 {
			return nil
		}
		return []map[string]any{p}
	}
	return nil
}

func objects(items []any) []map[string]any {
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, obj)
		}
	}
	return records
}

// Normalize converts payload into opportunities. It never fails: a payload
// with no recognizable records yields an empty slice. Every returned record
// has a non-empty ID and Name.
func (n *Normalizer) Normalize(payload any) []models.Opportunity {
	opps, _ := n.normalize(payload)
	return opps
}

// Collection normalizes payload and applies the empty-upstream policy when
// the result is degenerate.
func (n *Normalizer) Collection(payload any) ([]models.Opportunity, error) {
	opps, named := n.normalize(payload)
	if len(opps) > 0 && named > 0 {
		return opps, nil
	}

	switch n.policy {
	case PolicyFail:
		return nil, ErrEmptyUpstream
	case PolicyPlaceholder:
		return Placeholders(n.now()), nil
	default:
		return []models.Opportunity{}, nil
	}
}

// normalize returns the records and how many of them carried a real name.
func (n *Normalizer) normalize(payload any) ([]models.Opportunity, int) {
	records := ExtractRecords(payload)
	opps := make([]models.Opportunity, 0, len(records))
	named := 0
	synthesized := make(map[string]int)
	for i, record := range records {
		opp, hasName := n.record(record, "")
		if opp.ID == "" {
			// Identical ID-less records get distinct IDs by occurrence, so
			// every record in one response stays addressable.
			base := synthesizeID(record)
			opp.ID = base
			if seen := synthesized[base]; seen > 0 {
				opp.ID = uuid.FromContent([]byte(fmt.Sprintf("%s#%d", base, seen)))
			}
			synthesized[base]++
		}
		if !hasName {
			opp.Name = fmt.Sprintf("Opportunity %d", i+1)
		} else {
			named++
		}
		opps = append(opps, opp)
	}
	return opps, named
}

// NormalizeOne maps a single-opportunity payload. fallbackID is the last
// identifier candidate, used when the payload names none.
func (n *Normalizer) NormalizeOne(record map[string]any, fallbackID string) models.Opportunity {
	opp, hasName := n.record(record, fallbackID)
	if opp.ID == "" {
		opp.ID = synthesizeID(record)
	}
	if !hasName {
		opp.Name = unnamedSingle
	}
	if raw, err := json.Marshal(record); err == nil {
		opp.RawData = datatypes.JSON(raw)
	}
	return opp
}

func (n *Normalizer) record(record map[string]any, fallbackID string) (models.Opportunity, bool) {
	now := n.now()
	f := n.fields

	var opp models.Opportunity

	// Left empty when the record names no identifier; callers synthesize one.
	if id, ok := firstString(record, f[FieldID]); ok {
		opp.ID = id
	} else {
		opp.ID = fallbackID
	}

	opp.ObjectID, _ = firstString(record, f[FieldObjectID])
	opp.OpportunityID, _ = firstString(record, f[FieldOpportunityID])
	opp.AccountID, _ = firstString(record, f[FieldAccountID])
	opp.SalesStage, _ = firstString(record, f[FieldSalesStage])

	name, hasName := firstString(record, f[FieldName])
	opp.Name = name

	if amount, ok := firstDecimal(record, f[FieldExpectedRevenue]); ok {
		opp.ExpectedRevenueAmount = amount
	} else {
		opp.ExpectedRevenueAmount = decimal.Zero
	}

	if currency, ok := firstString(record, f[FieldCurrency]); ok {
		opp.Currency = currency
	} else {
		opp.Currency = defaultCurrency
	}

	if closeDate, ok := firstTime(record, f[FieldCloseDate]); ok {
		opp.CloseDate = &closeDate
	}

	if created, ok := firstTime(record, f[FieldCreatedOn]); ok {
		opp.CreatedOn = created
	} else {
		opp.CreatedOn = now
	}
	if changed, ok := firstTime(record, f[FieldLastChangedOn]); ok {
		opp.LastChangedOn = changed
	} else {
		opp.LastChangedOn = now
	}

	return opp, hasName
}

// synthesizeID derives a stable identifier from the record's content.
// encoding/json sorts map keys, so equal records hash equally on every fetch.
func synthesizeID(record map[string]any) string {
	raw, err := json.Marshal(record)
	if err != nil {
		return uuid.New()
	}
	return uuid.FromContent(raw)
}
