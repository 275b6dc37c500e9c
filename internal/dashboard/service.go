package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrInvalidQuery = errors.New("invalid dashboard query")

const cacheTTL = 30 * time.Second

// Service assembles the landing-screen summary. Results are cached in
// Redis for a short TTL; the cache is best-effort and a Redis failure only
// costs a recount.
type Service struct {
	repo  Repository
	cache *redis.Client
	log   zerolog.Logger
}

func NewService(repo Repository, cache *redis.Client, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// Summary shapes the aggregate per role: professionals see their own
// agenda, every other role sees the whole clinic. The role string comes
// from the caller; authentication is out of scope here.
func (s *Service) Summary(ctx context.Context, role string, professionalID uuid.UUID, date string) (*Summary, error) {
	var profFilter *uuid.UUID
	scope := "clinic"
	if role == "professional" {
		if professionalID == uuid.Nil {
			return nil, fmt.Errorf("%w: professional role needs a professional_id", ErrInvalidQuery)
		}
		profFilter = &professionalID
		scope = professionalID.String()
	}

	key := fmt.Sprintf("dash:%s:%s", scope, date)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	counts, err := s.repo.CountByStatus(ctx, date, profFilter)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	pending, err := s.repo.CountTriagePending(ctx, date, profFilter)
	if err != nil {
		return nil, fmt.Errorf("count triage pending: %w", err)
	}

	sum := &Summary{
		Date:          date,
		Scope:         scope,
		Scheduled:     counts["scheduled"],
		Confirmed:     counts["confirmed"],
		Done:          counts["done"],
		Cancelled:     counts["cancelled"],
		NoShow:        counts["no_show"],
		TriagePending: pending,
	}
	for _, n := range counts {
		sum.Total += n
	}

	s.toCache(ctx, key, sum)
	return sum, nil
}

func (s *Service) fromCache(ctx context.Context, key string) *Summary {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}
		return nil
	}
	var sum Summary
	if err := json.Unmarshal(raw, &sum); err != nil {
		return nil
	}
	return &sum
}

func (s *Service) toCache(ctx context.Context, key string, sum *Summary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(sum)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
	}
}
