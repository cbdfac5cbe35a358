package services

import (
	"context"
	"sync"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/models"
)

// fakeFetcher is a scripted SAP CRM.
type fakeFetcher struct {
	mu        sync.Mutex
	all       any
	allErr    error
	one       map[string]any
	oneErr    error
	allCalls  int
	oneCalls  int
	lastOneID string

	// entered and release, when set, hold FetchAll until the test lets it go.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) FetchAll(ctx context.Context) (any, error) {
	if f.release != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.all, f.allErr
}

func (f *fakeFetcher) FetchOne(_ context.Context, id string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oneCalls++
	f.lastOneID = id
	return f.one, f.oneErr
}

// stubOpportunities serves a fixed set of opportunities.
type stubOpportunities struct {
	opps  map[string]models.Opportunity
	err   error
	calls int
}

func newStubOpportunities(opps ...models.Opportunity) *stubOpportunities {
	s := &stubOpportunities{opps: map[string]models.Opportunity{}}
	for _, o := range opps {
		s.opps[o.ID] = o
	}
	return s
}

func (s *stubOpportunities) ListOpportunities(_ context.Context) ([]models.Opportunity, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Opportunity, 0, len(s.opps))
	for _, o := range s.opps {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOpportunities) GetOpportunity(_ context.Context, id string) (*models.Opportunity, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.opps[id]
	if !ok {
		return nil, apperrors.ErrOpportunityNotFound
	}
	return &o, nil
}

func (s *stubOpportunities) RefreshOpportunities(_ context.Context) (int, error) {
	return len(s.opps), s.err
}

func strPtr(s string) *string { return &s }
