package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"clinicmap/config"
	deliverycontext "clinicmap/internal/delivery/context"
	"clinicmap/internal/domain/entity"
	"clinicmap/internal/domain/repository"
	"clinicmap/internal/domain/service"
	"clinicmap/internal/usecase"

	"go.uber.org/fx"
)

// searchService implements the SearchUsecase interface
type searchService struct {
	facilities repository.FacilityRepository
	provider   service.RouteProvider
	maxWorkers int
	logger     *slog.Logger
}

// SearchServiceParams holds dependencies for SearchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	Facilities repository.FacilityRepository
	Provider   service.RouteProvider
	Config     *config.Config
	Logger     *slog.Logger
}

// NewSearchService creates the match-and-enrich pipeline
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	maxWorkers := 1
	if params.Config != nil && params.Config.Search != nil && params.Config.Search.RouteWorkers > 1 {
		maxWorkers = params.Config.Search.RouteWorkers
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &searchService{
		facilities: params.Facilities,
		provider:   params.Provider,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (srv *searchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Search runs one enrichment sweep.
// The sweep is detached from caller cancellation and always covers every match;
// each provider call is still bounded by the provider's own timeout.
func (srv *searchService) Search(ctx context.Context, input usecase.SearchInput) *usecase.SearchResult {
	startTime := time.Now()

	result := &usecase.SearchResult{
		Term:    input.Term,
		Origin:  input.Origin,
		Results: []entity.EnrichedResult{},
	}

	if input.Term == "" || srv.facilities.Len() == 0 {
		result.Duration = time.Since(startTime)

		return result
	}

	matches := srv.facilities.Query(input.Term)
	if len(matches) == 0 {
		srv.log(ctx).Info("No facilities matched", slog.String("term", input.Term))
		result.Duration = time.Since(startTime)

		return result
	}

	sweepCtx := context.WithoutCancel(ctx)
	if srv.workerCount(len(matches)) > 1 {
		result.Results = srv.enrichConcurrently(sweepCtx, input.Origin, matches)
	} else {
		result.Results = srv.enrichSequentially(sweepCtx, input.Origin, matches)
	}
	result.Duration = time.Since(startTime)

	failed := 0
	for _, enriched := range result.Results {
		if enriched.Route.Status != entity.RouteStatusOK {
			failed++
		}
	}

	srv.log(ctx).Info("Search completed",
		slog.String("term", input.Term),
		slog.Int("matches", len(matches)),
		slog.Int("without_route", failed),
		slog.Duration("duration", result.Duration),
	)

	return result
}

func (srv *searchService) enrichSequentially(ctx context.Context, origin entity.Coordinate, matches []entity.Facility) []entity.EnrichedResult {
	results := make([]entity.EnrichedResult, len(matches))
	for i, facility := range matches {
		results[i] = srv.enrich(ctx, origin, facility)
	}

	return results
}

// enrichConcurrently fans out provider calls to a bounded pool and writes each result at its input index
func (srv *searchService) enrichConcurrently(ctx context.Context, origin entity.Coordinate, matches []entity.Facility) []entity.EnrichedResult {
	results := make([]entity.EnrichedResult, len(matches))

	matchCh := make(chan int, len(matches))
	resultCh := make(chan enrichedWithIndex, len(matches))

	workerGroup := srv.spawnEnrichWorkers(ctx, srv.workerCount(len(matches)), matchCh, resultCh, origin, matches)

	for i := range matches {
		matchCh <- i
	}
	close(matchCh)

	collectEnrichedResults(resultCh, results, workerGroup)

	return results
}

func (srv *searchService) enrich(ctx context.Context, origin entity.Coordinate, facility entity.Facility) entity.EnrichedResult {
	outcome := srv.provider.Route(ctx, origin, facility.Location())
	if outcome.Status == entity.RouteStatusAPIError || outcome.Status == entity.RouteStatusTransportError {
		srv.log(ctx).Warn("Route lookup failed",
			slog.String("status", string(outcome.Status)),
			slog.String("code", outcome.ErrorCode),
			slog.String("error", outcome.ErrorMessage),
			slog.Float64("lat", facility.Latitude),
			slog.Float64("lon", facility.Longitude),
		)
	}

	return entity.EnrichedResult{
		Facility: facility,
		Route:    outcome,
	}
}

func (srv *searchService) workerCount(matchCount int) int {
	if matchCount < srv.maxWorkers {
		return matchCount
	}

	return srv.maxWorkers
}

type enrichedWithIndex struct {
	index  int
	result entity.EnrichedResult
}

func (srv *searchService) spawnEnrichWorkers(
	ctx context.Context,
	workerCount int,
	matchCh <-chan int,
	resultCh chan<- enrichedWithIndex,
	origin entity.Coordinate,
	matches []entity.Facility,
) *sync.WaitGroup {
	var workerGroup sync.WaitGroup

	for range workerCount {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for idx := range matchCh {
				resultCh <- enrichedWithIndex{index: idx, result: srv.enrich(ctx, origin, matches[idx])}
			}
		}()
	}

	return &workerGroup
}

func collectEnrichedResults(resultCh chan enrichedWithIndex, results []entity.EnrichedResult, workerGroup *sync.WaitGroup) {
	go func() {
		workerGroup.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		results[res.index] = res.result
	}
}
