package crm

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// fieldTableFile is the on-disk shape of a tenant field override:
//
//	fields:
//	  Name: [OpportunityName, name]
//	  ExpectedRevenueAmount: [revenue.value]
type fieldTableFile struct {
	Fields map[string][]string `yaml:"fields"`
}

// knownFields lists every field a table may override.
var knownFields = map[Field]struct{}{
	FieldID: {}, FieldObjectID: {}, FieldOpportunityID: {}, FieldName: {},
	FieldAccountID: {}, FieldSalesStage: {}, FieldExpectedRevenue: {}, FieldCurrency: {},
	FieldCloseDate: {}, FieldCreatedOn: {}, FieldLastChangedOn: {},
}

// LoadFieldTable reads candidate-key overrides from a YAML file. Only the
// fields named in the file are returned; pass the result to WithFieldTable.
func LoadFieldTable(path string) (FieldTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field table: %w", err)
	}
	return ParseFieldTable(data)
}

// ParseFieldTable decodes a YAML field table and rejects unknown fields or
// empty candidate lists.
func ParseFieldTable(data []byte) (FieldTable, error) {
	var file fieldTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse field table: %w", err)
	}

	table := make(FieldTable, len(file.Fields))
	var unknown []string
	for name, candidates := range file.Fields {
		field := Field(name)
		if _, ok := knownFields[field]; !ok {
			unknown = append(unknown, name)
			continue
		}
		cleaned := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if c = strings.TrimSpace(c); c != "" {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("field %s has no candidate keys", name)
		}
		table[field] = cleaned
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown fields in field table: %s", strings.Join(unknown, ", "))
	}
	return table, nil
}
