package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/auth"
	"github.com/DaUnderlord/monday-sippin-sub000/cache"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"
	"github.com/DaUnderlord/monday-sippin-sub000/extractor"
	"github.com/DaUnderlord/monday-sippin-sub000/metrics"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/util"
	"github.com/DaUnderlord/monday-sippin-sub000/validator"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// VisualizeClient calls the AI visualize-play function.
type VisualizeClient interface {
	Visualize(ctx context.Context, token string, payload model.VisualizePayload) (*model.UpstreamResult, error)
}

type VisualizeService interface {
	Resolve(ctx context.Context, req model.VisualizeRequest, creds model.Credentials) (*model.PlaySpec, error)
}

type VisualizeServiceImpl struct {
	client    VisualizeClient
	cfg       *config.ConfigManager
	store     cache.PlaySpecStore
	resolvers []auth.TokenResolver
	metrics   *metrics.Metrics
}

// NewVisualizeService wires the orchestrator. store may be nil. resolvers are
// tried in order to find the token for the AI call.
func NewVisualizeService(client VisualizeClient, cfg *config.ConfigManager, store cache.PlaySpecStore, resolvers ...auth.TokenResolver) VisualizeService {
	return &VisualizeServiceImpl{
		client:    client,
		cfg:       cfg,
		store:     store,
		resolvers: resolvers,
		metrics:   metrics.Get(),
	}
}

// DefaultResolvers is session cookie, then bearer header, then the anonymous
// key from the live config.
func DefaultResolvers(cfg *config.ConfigManager) []auth.TokenResolver {
	return []auth.TokenResolver{
		auth.SessionResolver{},
		auth.BearerResolver{},
		auth.AnonKeyResolver{Key: func() string { return cfg.GetConfig().AnonKey }},
	}
}

func (s *VisualizeServiceImpl) Resolve(ctx context.Context, req model.VisualizeRequest, creds model.Credentials) (*model.PlaySpec, error) {
	text := extractor.Normalize(req.Content)
	envCfg := s.cfg.GetConfig()
	logger := log.With().Str("articleId", req.ArticleID).Logger()

	if !envCfg.PreferAI {
		if spec := s.heuristic(text, req.ArticleID); spec != nil {
			logger.Info().Msg("Visualize fast path hit")
			s.metrics.Visualize(metrics.OutcomeFastPath)
			return spec, nil
		}
	}

	if envCfg.FunctionsUrl == "" {
		logger.Error().Msg("Visualize function URL is not configured")
		s.metrics.Visualize(metrics.OutcomeMissingConfig)
		return nil, customerrors.New(customerrors.ErrMissingConfiguration, nil)
	}

	token, ok := auth.FirstToken(ctx, creds, s.resolvers...)
	if !ok {
		s.metrics.Visualize(metrics.OutcomeUnauthorized)
		return nil, customerrors.New(customerrors.ErrMissingCredentials, nil)
	}

	key := util.ContentKey(cache.PlaySpecKeyPrefix, req.ArticleID, text)
	if s.store != nil {
		if spec, found := s.store.Get(ctx, key); found {
			logger.Info().Msg("Visualize result served from store")
			s.metrics.Visualize(metrics.OutcomeStoreHit)
			return spec, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, config.VisualizeTimeout(envCfg))
	defer cancel()

	start := time.Now()
	res, err := s.client.Visualize(callCtx, token, model.VisualizePayload{
		ArticleID: req.ArticleID,
		Content:   text,
		Symbol:    req.Symbol,
		Timeframe: req.Timeframe,
	})
	s.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded)
		logger.Warn().Err(err).Bool("timeout", timedOut).Msg("Visualize upstream call failed, trying heuristic fallback")
		if spec := s.heuristic(text, req.ArticleID); spec != nil {
			logger.Info().Msg("Visualize heuristic fallback used")
			s.metrics.Visualize(metrics.OutcomeFallback)
			return spec, nil
		}
		s.metrics.Visualize(metrics.OutcomeTimeout)
		return nil, customerrors.New(customerrors.ErrUpstreamTimeout, map[string]any{"reason": err.Error()})
	}

	if !res.IsSuccess() {
		logger.Warn().Int("status", res.StatusCode).Msg("Visualize upstream returned an error")
		s.metrics.Visualize(metrics.OutcomeUpstreamError)
		return nil, customerrors.New(customerrors.ErrUpstreamFailure, map[string]any{
			"status": res.StatusCode,
			"body":   upstreamBody(res.Body),
		})
	}

	spec, err := decodePlaySpec(res.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("Visualize upstream returned an invalid play spec")
		s.metrics.Visualize(metrics.OutcomeInvalid)
		return nil, customerrors.New(customerrors.ErrInvalidPlaySpec, map[string]any{"issues": issuesOf(err)})
	}
	if spec.Context.ArticleID == "" {
		spec.Context.ArticleID = req.ArticleID
	}

	outcome := metrics.OutcomeAI
	if spec.IsEmpty() {
		if merged := s.mergeHeuristic(spec, text, req.ArticleID); merged != nil {
			logger.Info().Msg("Visualize merged heuristic data into empty AI result")
			spec = merged
			outcome = metrics.OutcomeMerged
		}
	}
	s.metrics.Visualize(outcome)

	if s.store != nil && !spec.IsEmpty() {
		s.store.Set(ctx, key, spec)
	}
	return spec, nil
}

// heuristic runs the extractor and keeps the result only if it validates.
func (s *VisualizeServiceImpl) heuristic(text, articleID string) *model.PlaySpec {
	spec := extractor.ExtractPlaySpec(text)
	if spec == nil {
		return nil
	}
	spec.Context.ArticleID = articleID
	if err := validator.ValidatePlaySpec(spec); err != nil {
		log.Warn().Err(err).Msg("Heuristic play spec failed validation")
		return nil
	}
	return spec
}

// drawables are the fields the heuristic fills into an empty AI result.
type drawables struct {
	Levels  []model.Level
	Zones   []model.Zone
	Entries []model.PricePoint
	Stops   []model.PricePoint
	Targets []model.PricePoint
}

// mergeHeuristic returns ai with the heuristic's chartable fields copied in,
// or nil when the heuristic finds nothing or the merge does not validate.
func (s *VisualizeServiceImpl) mergeHeuristic(ai *model.PlaySpec, text, articleID string) *model.PlaySpec {
	heur := extractor.ExtractPlaySpec(text)
	if heur == nil {
		return nil
	}

	var d drawables
	if err := copier.Copy(&d, heur); err != nil {
		return nil
	}
	merged := *ai
	if err := copier.CopyWithOption(&merged, &d, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil
	}
	if merged.Context.ArticleID == "" {
		merged.Context.ArticleID = articleID
	}

	if err := validator.ValidatePlaySpec(&merged); err != nil {
		log.Warn().Err(err).Msg("Merged play spec failed validation, keeping AI result")
		return nil
	}
	return &merged
}

func decodePlaySpec(body []byte) (*model.PlaySpec, error) {
	var spec model.PlaySpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return nil, err
	}
	validator.FillDefaults(&spec)
	if err := validator.ValidatePlaySpec(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// upstreamBody echoes the upstream error body, as JSON when it parses.
func upstreamBody(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}

func issuesOf(err error) []string {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.Issues
	}
	return []string{err.Error()}
}
