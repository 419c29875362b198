package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/api/metrics"
	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
	"github.com/roxiler/storerating-client/internal/forms"
)

const (
	msgLoadStores    = "Error loading stores"
	msgRatingCreated = "Rating submitted successfully!"
	msgRatingUpdated = "Rating updated successfully!"
	msgCreateFailed  = "Error submitting rating"
	msgUpdateFailed  = "Error updating rating"
)

// StoreBoard is the displayed store collection of the user dashboard: the
// last successfully fetched list, the search term it was fetched with and
// a single notice.
type StoreBoard struct {
	api    ports.UserAPI
	logger zerolog.Logger

	mu     sync.RWMutex
	stores []domain.Store
	search string

	Notice forms.Notice
}

func NewStoreBoard(api ports.UserAPI, logger zerolog.Logger) *StoreBoard {
	return &StoreBoard{api: api, logger: logger.With().Str("component", "store_board").Logger()}
}

// Load fetches the list for search and replaces the displayed one wholesale.
// On failure the previous list is kept and the notice reads "Error loading
// stores".
func (b *StoreBoard) Load(ctx context.Context, search string) error {
	stores, err := b.api.Stores(ctx, search)
	if err != nil {
		b.logger.Warn().Err(err).Str("search", search).Msg("load stores")
		b.Notice.Error(msgLoadStores)
		return err
	}

	b.mu.Lock()
	b.stores = stores
	b.search = search
	b.mu.Unlock()
	return nil
}

// Reload fetches again with the current search term.
func (b *StoreBoard) Reload(ctx context.Context) error {
	return b.Load(ctx, b.Search())
}

// Stores returns a copy of the displayed list.
func (b *StoreBoard) Stores() []domain.Store {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Store(nil), b.stores...)
}

// Find returns the displayed store with id.
func (b *StoreBoard) Find(id int64) (domain.Store, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, s := range b.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Store{}, domain.ErrStoreNotFound
}

func (b *StoreBoard) Search() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.search
}

// RatingService decides between creating and updating a rating from the
// store's explicit prior rating, and refreshes the board after every
// successful write. At most one submission per store is in flight.
type RatingService struct {
	api    ports.UserAPI
	board  *StoreBoard
	logger zerolog.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewRatingService(api ports.UserAPI, board *StoreBoard, logger zerolog.Logger) *RatingService {
	return &RatingService{
		api:      api,
		board:    board,
		logger:   logger.With().Str("component", "rating").Logger(),
		inFlight: make(map[int64]struct{}),
	}
}

// Submit applies star v to store. The prior rating is read from the board's
// current copy of the store when it holds one, so a copy taken before the
// last reload cannot turn an update into a second create. It returns the
// decision taken. Out of range values fail with domain.ErrInvalidRating and
// a no-op re-selection issues no call. While a previous submission for the same store is still
// running, Submit returns domain.ErrSubmissionPending without calling out.
//
// After a successful write the board is reloaded; a reload failure is
// reported through the board notice but does not fail the submission.
func (s *RatingService) Submit(ctx context.Context, store domain.Store, v int) (domain.RatingDecision, error) {
	if !domain.ValidRating(v) {
		return "", domain.ErrInvalidRating
	}
	if current, err := s.board.Find(store.ID); err == nil {
		store = current
	}

	decision := domain.Decide(domain.PriorRatingOf(store), v)
	if decision == domain.DecisionNoop {
		metrics.RatingSubmissionsTotal.WithLabelValues(string(decision), "ok").Inc()
		return decision, nil
	}

	if !s.acquire(store.ID) {
		metrics.RatingSubmissionsTotal.WithLabelValues(string(decision), "dropped").Inc()
		s.logger.Debug().Int64("store_id", store.ID).Msg("submission dropped while another is pending")
		return decision, domain.ErrSubmissionPending
	}
	defer s.release(store.ID)

	var err error
	if decision == domain.DecisionCreate {
		err = s.api.CreateRating(ctx, store.ID, v)
	} else {
		err = s.api.UpdateRating(ctx, store.ID, v)
	}
	if err != nil {
		metrics.RatingSubmissionsTotal.WithLabelValues(string(decision), "failed").Inc()
		s.logger.Warn().Err(err).Int64("store_id", store.ID).Str("decision", string(decision)).Msg("rating rejected")
		s.board.Notice.Error(failureMessage(err, decision))
		return decision, err
	}

	metrics.RatingSubmissionsTotal.WithLabelValues(string(decision), "ok").Inc()
	s.logger.Info().Int64("store_id", store.ID).Str("decision", string(decision)).Int("rating", v).Msg("rating saved")

	if err := s.board.Reload(ctx); err != nil {
		return decision, nil
	}
	if decision == domain.DecisionCreate {
		s.board.Notice.Info(msgRatingCreated)
	} else {
		s.board.Notice.Info(msgRatingUpdated)
	}
	return decision, nil
}

// SubmitByID submits v for a store displayed on the board.
func (s *RatingService) SubmitByID(ctx context.Context, storeID int64, v int) (domain.RatingDecision, error) {
	if !domain.ValidRating(v) {
		return "", domain.ErrInvalidRating
	}
	store, err := s.board.Find(storeID)
	if err != nil {
		return "", err
	}
	return s.Submit(ctx, store, v)
}

func (s *RatingService) acquire(storeID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[storeID]; busy {
		return false
	}
	s.inFlight[storeID] = struct{}{}
	return true
}

func (s *RatingService) release(storeID int64) {
	s.mu.Lock()
	delete(s.inFlight, storeID)
	s.mu.Unlock()
}

// failureMessage is the verbatim server message of a failed write.
func failureMessage(err error, decision domain.RatingDecision) string {
	if f, ok := domain.AsFailure(err); ok && f.Message != "" {
		return f.Message
	}
	if decision == domain.DecisionCreate {
		return msgCreateFailed
	}
	return msgUpdateFailed
}
