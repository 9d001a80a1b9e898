package tracker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/cryptotrack/crypto-tracker/internal/api"
	"github.com/cryptotrack/crypto-tracker/internal/infra"
	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// Search behavior
const (
	SearchDebounce   = 300 * time.Millisecond
	MinQueryLength   = 2
	MaxSearchResults = 10
)

// User-facing messages per failure class. A single message is shown at a
// time: the newest failure replaces it and the next successful operation
// clears it.
const (
	MsgTimeout      = "Connection timed out. The server may be busy."
	MsgNoResponse   = "No response from server. Check your network connection."
	MsgTransport    = "Could not reach the server. Please try again."
	MsgUnexpected   = "Unexpected server response."
	MsgFallbackData = "Live prices are unavailable. Showing default data."
	MsgListFailed   = "Failed to load cryptocurrencies."
	MsgSearchFailed = "Search failed. Please try again."
	MsgAddFailed    = "Failed to add cryptocurrency."
	MsgRemoveFailed = "Failed to remove cryptocurrency."
)

// Service coordinates the backend client, the poll loop, and debounced
// search. State mutations happen behind mu; the UI receives immutable State
// snapshots through the update callback.
type Service struct {
	backend      api.Backend
	pollInterval time.Duration
	poll         *infra.Scheduler
	debounce     *infra.Debouncer

	mu         sync.Mutex
	state      State
	listSeq    uint64 // newest issued list request
	listDone   uint64 // newest applied list response
	searchSeq  uint64 // newest issued search request
	searchDone uint64 // newest applied search response

	onUpdate func(State) // callback for UI updates
	stopOnce sync.Once
}

// NewService creates a tracker that polls backend every pollInterval once
// started.
func NewService(backend api.Backend, pollInterval time.Duration) *Service {
	s := &Service{
		backend:      backend,
		pollInterval: pollInterval,
		debounce:     infra.NewDebouncer(SearchDebounce),
		state: State{
			Conn:    model.ConnStateInitializing,
			Loading: true,
		},
	}
	s.poll = infra.NewScheduler(pollInterval, func() {
		s.RefreshList(context.Background())
	})
	return s
}

// SetUpdateCallback sets the callback function for state updates
func (s *Service) SetUpdateCallback(callback func(State)) {
	s.mu.Lock()
	s.onUpdate = callback
	s.mu.Unlock()
}

// GetState returns a snapshot of the current state
func (s *Service) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start launches the startup probe and arms the poll timer. The timer runs
// regardless of probe outcome so a backend that comes up later is picked up
// on the next tick.
func (s *Service) Start() {
	log.Printf("Tracker starting, poll interval %s", s.pollInterval)

	go s.bootstrap()

	if err := s.poll.Start(); err != nil {
		log.Printf("Failed to start poll scheduler: %v", err)
	}
}

// Stop disarms the poll timer and any pending debounced search. Repeated
// calls are no-ops.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		log.Printf("Tracker stopping")
		s.poll.Stop()
		s.debounce.Stop()
	})
}

// bootstrap runs the connectivity probe and, when it succeeds, the first
// list fetch. A failed probe leaves the coin table empty until the poll
// timer tries again.
func (s *Service) bootstrap() {
	if err := s.backend.Ping(context.Background()); err != nil {
		log.Printf("Connectivity probe failed: %v", err)
		s.mu.Lock()
		s.state.Conn = model.ConnStateDisconnected
		s.state.ErrorMessage = messageFor(err, MsgTransport)
		s.mu.Unlock()
		s.notifyUpdate()
		return
	}

	log.Printf("Backend reachable, fetching initial list")
	s.mu.Lock()
	s.state.Conn = model.ConnStateConnected
	s.mu.Unlock()
	s.notifyUpdate()

	s.RefreshList(context.Background())

	s.mu.Lock()
	s.state.Conn = model.ConnStatePolling
	s.mu.Unlock()
	s.notifyUpdate()
}

// RefreshList fetches the tracked coin list and replaces the table
// wholesale, default coins first. Responses apply in issue order: one that
// settles after a newer response has been applied is discarded.
func (s *Service) RefreshList(ctx context.Context) {
	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.mu.Unlock()

	coins, err := s.backend.FetchCoins(ctx)

	s.mu.Lock()
	if seq <= s.listDone {
		s.mu.Unlock()
		log.Printf("Discarding stale list response (request %d, newest applied %d)", seq, s.listDone)
		return
	}
	s.listDone = seq
	s.state.Loading = false

	switch {
	case err == nil:
		model.SortDefaultFirst(coins)
		s.state.Coins = coins
		s.state.ErrorMessage = ""
		s.state.LastUpdated = time.Now()
		log.Printf("List refreshed: %d coins", len(coins))
	case errors.Is(err, api.ErrFallbackData):
		model.SortDefaultFirst(coins)
		s.state.Coins = coins
		s.state.ErrorMessage = MsgFallbackData
		s.state.LastUpdated = time.Now()
		log.Printf("List refreshed from fallback data: %d coins", len(coins))
	default:
		// Keep the previous table; only the message changes.
		s.state.ErrorMessage = messageFor(err, MsgListFailed)
		log.Printf("List refresh failed: %v", err)
	}
	s.mu.Unlock()

	s.notifyUpdate()
}

// Search runs a backend search for query and applies the defensive substring
// filter capped at MaxSearchResults. Queries shorter than MinQueryLength
// never touch the network and only clear stale candidates.
func (s *Service) Search(ctx context.Context, query string) {
	if len(query) < MinQueryLength {
		s.mu.Lock()
		s.state.Results = nil
		s.mu.Unlock()
		s.notifyUpdate()
		return
	}

	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.mu.Unlock()

	results, err := s.backend.Search(ctx, query)

	s.mu.Lock()
	if seq <= s.searchDone {
		s.mu.Unlock()
		log.Printf("Discarding stale search response for %q (request %d, newest applied %d)", query, seq, s.searchDone)
		return
	}
	s.searchDone = seq

	if err != nil {
		s.state.Results = nil
		s.state.ErrorMessage = messageFor(err, MsgSearchFailed)
		log.Printf("Search for %q failed: %v", query, err)
	} else {
		s.state.Results = model.FilterResults(results, query, MaxSearchResults)
		s.state.ErrorMessage = ""
	}
	s.mu.Unlock()

	s.notifyUpdate()
}

// QueueSearch schedules a debounced search so a burst of keystrokes inside
// the window produces at most one backend call, carrying the final text.
func (s *Service) QueueSearch(query string) {
	s.debounce.Do(func() {
		s.Search(context.Background(), query)
	})
}

// ClearSearch cancels any pending debounced search and drops current
// candidates.
func (s *Service) ClearSearch() {
	s.debounce.Stop()

	s.mu.Lock()
	s.state.Results = nil
	s.mu.Unlock()

	s.notifyUpdate()
}

// AddCoin asks the backend to track symbol. Success clears search state and
// triggers exactly one full list re-fetch; the returned error tells the
// caller whether to close its dialog.
func (s *Service) AddCoin(ctx context.Context, symbol string) error {
	log.Printf("Adding %s", symbol)

	message, err := s.backend.Add(ctx, symbol)
	if err != nil {
		log.Printf("Add %s failed: %v", symbol, err)
		s.mu.Lock()
		s.state.ErrorMessage = messageFor(err, MsgAddFailed)
		s.mu.Unlock()
		s.notifyUpdate()
		return err
	}

	log.Printf("Add %s confirmed: %s", symbol, message)
	s.mu.Lock()
	s.state.Results = nil
	s.state.ErrorMessage = ""
	s.mu.Unlock()
	s.notifyUpdate()

	s.RefreshList(ctx)
	return nil
}

// RemoveCoin asks the backend to stop tracking symbol. Default coins are
// refused by the backend; its message is surfaced verbatim.
func (s *Service) RemoveCoin(ctx context.Context, symbol string) error {
	log.Printf("Removing %s", symbol)

	message, err := s.backend.Remove(ctx, symbol)
	if err != nil {
		log.Printf("Remove %s failed: %v", symbol, err)
		s.mu.Lock()
		s.state.ErrorMessage = messageFor(err, MsgRemoveFailed)
		s.mu.Unlock()
		s.notifyUpdate()
		return err
	}

	log.Printf("Remove %s confirmed: %s", symbol, message)
	s.mu.Lock()
	s.state.ErrorMessage = ""
	s.mu.Unlock()
	s.notifyUpdate()

	s.RefreshList(ctx)
	return nil
}

// notifyUpdate publishes a fresh snapshot to the update callback. The
// callback runs outside mu so it may call back into the service.
func (s *Service) notifyUpdate() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	callback := s.onUpdate
	s.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// snapshotLocked copies the state so the UI never sees shared slices.
// Callers must hold mu.
func (s *Service) snapshotLocked() State {
	snapshot := s.state
	snapshot.Coins = append([]model.Coin(nil), s.state.Coins...)
	snapshot.Results = append([]model.SearchResult(nil), s.state.Results...)
	return snapshot
}

// messageFor maps a backend error to the user-facing message for the
// operation. Backend-reported error text wins; otherwise the failure class
// picks a fixed string, with fallback as the last resort.
func messageFor(err error, fallback string) string {
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		return fallback
	}

	switch reqErr.Kind {
	case api.KindTimeout:
		return MsgTimeout
	case api.KindNetwork:
		return MsgNoResponse
	case api.KindTransport:
		return MsgTransport
	case api.KindUnexpected:
		return MsgUnexpected
	case api.KindServer:
		if reqErr.Message != "" {
			return reqErr.Message
		}
	}
	return fallback
}
