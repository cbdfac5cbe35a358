package services

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"opportunityrisks/internal/cache"
	"opportunityrisks/internal/crm"
	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/metrics"
	"opportunityrisks/internal/models"
)

// opportunityListKey is the cache key of the normalized opportunity collection.
const opportunityListKey = "opportunities:list"

// opportunityService reads opportunities from SAP CRM through the normalizer.
type opportunityService struct {
	fetcher    OpportunityFetcher
	normalizer *crm.Normalizer
	cache      cache.Cache
	metrics    *metrics.Registry
	log        *zap.SugaredLogger

	// loads collapses concurrent cache misses into one upstream call.
	loads singleflight.Group
}

// NewOpportunityService creates a new OpportunityServicer. cache and reg may be nil.
func NewOpportunityService(fetcher OpportunityFetcher, normalizer *crm.Normalizer, c cache.Cache, reg *metrics.Registry) OpportunityServicer {
	if c == nil {
		c = cache.Noop{}
	}
	return &opportunityService{
		fetcher:    fetcher,
		normalizer: normalizer,
		cache:      c,
		metrics:    reg,
		log:        logger.Named("opportunities"),
	}
}

// ListOpportunities returns the normalized opportunity collection, served
// from cache when possible.
func (s *opportunityService) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	if opps, ok := s.cached(ctx); ok {
		return opps, nil
	}
	// The shared load outlives any single caller; each caller only stops
	// waiting when its own context ends. The CRM client timeout bounds it.
	loaded := s.loads.DoChan(opportunityListKey, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	select {
	case res := <-loaded:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Opportunity), nil
	case <-ctx.Done():
		return nil, apperrors.Passthrough(apperrors.ErrUpstreamUnavailable, ctx.Err())
	}
}

// GetOpportunity fetches one opportunity by identifier. The single-record
// endpoint is tried first; when it fails or returns nothing usable the
// collection is searched for a record whose ID, ObjectID or OpportunityID matches.
func (s *opportunityService) GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error) {
	if id == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "opportunity id is required")
	}

	record, singleErr := s.fetcher.FetchOne(ctx, id)
	if singleErr == nil && record != nil {
		opp := s.normalizer.NormalizeOne(record, id)
		s.log.Debugw("opportunity resolved via single fetch", "id", id)
		return &opp, nil
	}
	if singleErr != nil {
		s.log.Debugw("single fetch failed, falling back to collection", "id", id, "error", singleErr)
	}

	opps, listErr := s.ListOpportunities(ctx)
	if listErr != nil {
		if singleErr != nil && !errors.Is(listErr, apperrors.ErrUpstreamEmpty) {
			return nil, apperrors.Passthrough(apperrors.ErrUpstreamUnavailable, singleErr)
		}
		return nil, listErr
	}

	for i := range opps {
		if opps[i].Matches(id) {
			return &opps[i], nil
		}
	}
	return nil, apperrors.ErrOpportunityNotFound
}

// RefreshOpportunities drops the cached collection and reloads it from SAP CRM.
func (s *opportunityService) RefreshOpportunities(ctx context.Context) (int, error) {
	s.cache.Delete(ctx, opportunityListKey)
	opps, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(opps), nil
}

func (s *opportunityService) load(ctx context.Context) ([]models.Opportunity, error) {
	payload, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		s.log.Errorw("failed to fetch opportunities from SAP CRM", "error", err)
		return nil, apperrors.Passthrough(apperrors.ErrUpstreamUnavailable, err)
	}

	opps, err := s.normalizer.Collection(payload)
	if err != nil {
		if errors.Is(err, crm.ErrEmptyUpstream) {
			s.log.Warnw("SAP CRM returned no usable opportunities", "policy", s.normalizer.Policy())
			return nil, apperrors.Wrap(apperrors.ErrUpstreamEmpty, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.log.Infow("opportunities normalized", "count", len(opps))
	if s.metrics != nil {
		s.metrics.NormalizedTotal.Add(float64(len(opps)))
	}

	if data, err := json.Marshal(opps); err == nil {
		s.cache.Set(ctx, opportunityListKey, data)
	}
	return opps, nil
}

func (s *opportunityService) cached(ctx context.Context) ([]models.Opportunity, bool) {
	data, ok := s.cache.Get(ctx, opportunityListKey)
	if ok {
		var opps []models.Opportunity
		if err := json.Unmarshal(data, &opps); err == nil {
			s.observeCache("hit")
			return opps, true
		}
		s.cache.Delete(ctx, opportunityListKey)
	}
	s.observeCache("miss")
	return nil, false
}

func (s *opportunityService) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
