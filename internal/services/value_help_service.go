package services

import (
	"sort"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
)

// Value help list names as used in the URL.
const (
	ValueHelpImpactLevels      = "impact-levels"
	ValueHelpProbabilityLevels = "probability-levels"
	ValueHelpStatusTypes       = "status-types"
)

type valueHelpService struct {
	lists map[string]func() []models.CodeText
}

// NewValueHelpService creates a new ValueHelpServicer.
func NewValueHelpService() ValueHelpServicer {
	return &valueHelpService{
		lists: map[string]func() []models.CodeText{
			ValueHelpImpactLevels:      models.ImpactLevels,
			ValueHelpProbabilityLevels: models.ProbabilityLevels,
			ValueHelpStatusTypes:       models.StatusTypes,
		},
	}
}

// List returns a fresh copy of the named code list.
func (s *valueHelpService) List(name string) ([]models.CodeText, error) {
	list, ok := s.lists[name]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "unknown value help list "+name)
	}
	return list(), nil
}

// Names returns the available list names, sorted.
func (s *valueHelpService) Names() []string {
	names := make([]string, 0, len(s.lists))
	for name := range s.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
