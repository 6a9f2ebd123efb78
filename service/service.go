// Package service implements the ledger operations over a key-value store:
// upload a raw trade file, process it into an aggregation result, and derive
// dashboard and daily review views.
//
// Raw uploads are stored under "file:{id}", processed results under
// "result:{id}". Processing is idempotent: reprocessing the same upload
// recomputes and stores byte-identical bytes, and a failed run never
// overwrites a previously stored result.
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradeview"
	"tradeview/kvstore"
	"tradeview/pricefeed"
)

// FileKey is the storage key of a raw uploaded file.
func FileKey(id string) string { return "file:" + id }

// ResultKey is the storage key of a processed aggregation result.
func ResultKey(id string) string { return "result:" + id }

// Service wires the parsing and aggregation engine to its collaborators.
type Service struct {
	store kvstore.Store
	feed  pricefeed.Feed // optional live feed behind the workbook closes
	log   *zap.Logger
}

// New creates a service over the given store. feed may be nil; logger may be
// nil for a silent service.
func New(store kvstore.Store, feed pricefeed.Feed, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, feed: feed, log: logger}
}

// Upload stores a raw trade file and returns its generated file id. The
// content is not parsed here: malformed files are accepted and fail later,
// at processing time.
func (s *Service) Upload(ctx context.Context, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", &tradeview.ValidationError{Field: "file", Reason: "empty upload"}
	}
	id := uuid.NewString()
	if err := s.store.Put(ctx, FileKey(id), raw); err != nil {
		return "", &tradeview.InternalError{Op: "store upload", Err: err}
	}
	s.log.Info("file uploaded", zap.String("fileId", id), zap.Int("bytes", len(raw)))
	return id, nil
}

// Process parses the uploaded file, replays its trades into positions and
// stores the encoded result. The stored result is only written on success,
// so a failing reprocess leaves any earlier good result untouched.
func (s *Service) Process(ctx context.Context, id string) (*tradeview.AggregationResult, error) {
	wb, err := s.loadWorkbook(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := tradeview.Aggregate(wb.Ledger.Records())
	if err != nil {
		s.log.Warn("processing failed", zap.String("fileId", id), zap.Error(err))
		return nil, err
	}

	encoded, err := result.Encode()
	if err != nil {
		return nil, &tradeview.InternalError{Op: "encode result", Err: err}
	}
	if err := s.store.Put(ctx, ResultKey(id), encoded); err != nil {
		return nil, &tradeview.InternalError{Op: "store result", Err: err}
	}
	s.log.Info("file processed",
		zap.String("fileId", id),
		zap.Int("totalTrades", result.TotalTrades),
		zap.Int("positions", len(result.Positions)))
	return result, nil
}

// Dashboard derives summary statistics from the stored result of a processed
// file. Current prices come from the closing prices carried by the uploaded
// workbook, falling back to the live feed; positions without a known price
// degrade instead of failing.
func (s *Service) Dashboard(ctx context.Context, id string) (tradeview.DashboardStats, error) {
	encoded, ok, err := s.store.Get(ctx, ResultKey(id))
	if err != nil {
		return tradeview.DashboardStats{}, &tradeview.InternalError{Op: "load result", Err: err}
	}
	if !ok {
		return tradeview.DashboardStats{}, &tradeview.NotFoundError{Resource: "result", ID: id}
	}
	result, err := tradeview.DecodeAggregationResult(encoded)
	if err != nil {
		return tradeview.DashboardStats{}, &tradeview.InternalError{Op: "decode result", Err: err}
	}

	return tradeview.Summarize(result, pricefeed.Lookup(ctx, s.quoteChain(ctx, id))), nil
}

// Review slices the uploaded ledger to one trading day. A day without trades
// is a valid, explicitly empty review.
func (s *Service) Review(ctx context.Context, id string, on tradeview.Date) (*tradeview.DayReview, error) {
	if on.IsZero() {
		return nil, &tradeview.ValidationError{Field: "date", Reason: "missing review date"}
	}
	wb, err := s.loadWorkbook(ctx, id)
	if err != nil {
		return nil, err
	}
	return tradeview.ReviewDay(wb.Ledger, on)
}

// loadWorkbook fetches and re-parses the raw upload. Parsing is cheap and
// deterministic, so the raw bytes stay the single source of truth.
func (s *Service) loadWorkbook(ctx context.Context, id string) (*tradeview.Workbook, error) {
	if id == "" {
		return nil, &tradeview.ValidationError{Field: "fileId", Reason: "missing file id"}
	}
	raw, ok, err := s.store.Get(ctx, FileKey(id))
	if err != nil {
		return nil, &tradeview.InternalError{Op: "load upload", Err: err}
	}
	if !ok {
		return nil, &tradeview.NotFoundError{Resource: "ledger", ID: id}
	}
	return tradeview.Parse(raw)
}

// quoteChain builds the price source for one file: workbook closes first,
// then the live feed.
func (s *Service) quoteChain(ctx context.Context, id string) pricefeed.Feed {
	chain := pricefeed.Chain{}
	if wb, err := s.loadWorkbook(ctx, id); err == nil && len(wb.Closes) > 0 {
		chain = append(chain, pricefeed.Static(wb.Closes))
	}
	if s.feed != nil {
		chain = append(chain, s.feed)
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}
