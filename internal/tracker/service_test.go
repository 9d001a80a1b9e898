package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cryptotrack/crypto-tracker/internal/api"
	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// fakeBackend is a scriptable api.Backend for service tests
type fakeBackend struct {
	mu sync.Mutex

	pingErr   error
	coins     []model.Coin
	coinsErr  error
	results   []model.SearchResult
	searchErr error
	addErr    error
	removeErr error

	listCalls     int
	searchQueries []string
	addSymbols    []string
	removeSymbols []string
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeBackend) FetchCoins(ctx context.Context) ([]model.Coin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]model.Coin(nil), f.coins...), f.coinsErr
}

func (f *fakeBackend) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchQueries = append(f.searchQueries, query)
	return append([]model.SearchResult(nil), f.results...), f.searchErr
}

func (f *fakeBackend) Add(ctx context.Context, symbol string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addSymbols = append(f.addSymbols, symbol)
	if f.addErr != nil {
		return "", f.addErr
	}
	return symbol + " added successfully", nil
}

func (f *fakeBackend) Remove(ctx context.Context, symbol string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeSymbols = append(f.removeSymbols, symbol)
	if f.removeErr != nil {
		return "", f.removeErr
	}
	return symbol + " removed successfully", nil
}

func (f *fakeBackend) getListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeBackend) getSearchQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchQueries...)
}

// waitFor polls condition until it holds or the attempts run out.
func waitFor(t *testing.T, condition func() bool, message string) {
	t.Helper()

	maxAttempts := 50
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if condition() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for: %s", message)
}

func TestNewService(t *testing.T) {
	service := NewService(&fakeBackend{}, time.Hour)

	state := service.GetState()
	if state.Conn != model.ConnStateInitializing {
		t.Errorf("Expected initial conn state Initializing, got %s", state.Conn)
	}
	if !state.Loading {
		t.Error("Expected loading flag to start set")
	}
	if len(state.Coins) != 0 {
		t.Errorf("Expected no coins initially, got %d", len(state.Coins))
	}
	if state.ErrorMessage != "" {
		t.Errorf("Expected no error initially, got '%s'", state.ErrorMessage)
	}
}

func TestStart_ProbeSucceeds(t *testing.T) {
	backend := &fakeBackend{
		coins: []model.Coin{
			{Symbol: "PEPE", IsDefault: false},
			{Symbol: "BTC", IsDefault: true},
			{Symbol: "ETH", IsDefault: true},
		},
	}
	service := NewService(backend, time.Hour)
	defer service.Stop()

	service.Start()

	waitFor(t, func() bool {
		return service.GetState().Conn == model.ConnStatePolling
	}, "conn state to reach Polling")

	state := service.GetState()
	if state.Loading {
		t.Error("Expected loading flag to clear after the first fetch")
	}
	if state.ErrorMessage != "" {
		t.Errorf("Expected no error, got '%s'", state.ErrorMessage)
	}
	if backend.getListCalls() != 1 {
		t.Errorf("Expected exactly 1 list fetch during bootstrap, got %d", backend.getListCalls())
	}

	expected := []string{"BTC", "ETH", "PEPE"}
	if len(state.Coins) != len(expected) {
		t.Fatalf("Expected %d coins, got %d", len(expected), len(state.Coins))
	}
	for i, symbol := range expected {
		if state.Coins[i].Symbol != symbol {
			t.Errorf("Expected coins[%d] to be %s, got %s", i, symbol, state.Coins[i].Symbol)
		}
	}
	if state.LastUpdated.IsZero() {
		t.Error("Expected LastUpdated to be stamped")
	}
}

func TestStart_ProbeFails(t *testing.T) {
	backend := &fakeBackend{
		pingErr: &api.RequestError{Op: "ping", Kind: api.KindTimeout, Err: context.DeadlineExceeded},
	}
	service := NewService(backend, time.Hour)
	defer service.Stop()

	service.Start()

	waitFor(t, func() bool {
		return service.GetState().Conn == model.ConnStateDisconnected
	}, "conn state to reach Disconnected")

	state := service.GetState()
	if state.ErrorMessage != MsgTimeout {
		t.Errorf("Expected '%s', got '%s'", MsgTimeout, state.ErrorMessage)
	}
	if backend.getListCalls() != 0 {
		t.Errorf("Expected no list fetch after a failed probe, got %d", backend.getListCalls())
	}
	if !state.Loading {
		t.Error("Expected loading flag to stay set until the first list call settles")
	}
}

func TestStart_ProbeWrongSentinel(t *testing.T) {
	backend := &fakeBackend{
		pingErr: &api.RequestError{Op: "ping", Kind: api.KindUnexpected, Message: `unexpected ping status "degraded"`},
	}
	service := NewService(backend, time.Hour)
	defer service.Stop()

	service.Start()

	waitFor(t, func() bool {
		return service.GetState().Conn == model.ConnStateDisconnected
	}, "conn state to reach Disconnected")

	if got := service.GetState().ErrorMessage; got != MsgUnexpected {
		t.Errorf("Expected '%s', got '%s'", MsgUnexpected, got)
	}
	if backend.getListCalls() != 0 {
		t.Errorf("Expected no list fetch after a bad sentinel, got %d", backend.getListCalls())
	}
}

func TestStart_PollFiresDespiteFailedProbe(t *testing.T) {
	backend := &fakeBackend{
		pingErr: &api.RequestError{Op: "ping", Kind: api.KindNetwork, Err: errors.New("connection refused")},
	}
	service := NewService(backend, 200*time.Millisecond)
	defer service.Stop()

	service.Start()

	// The bootstrap fetch is skipped, but the poll timer must still fire.
	waitFor(t, func() bool {
		return backend.getListCalls() >= 1
	}, "poll timer to trigger a list fetch")
}

func TestRefreshList_SortsDefaultFirst(t *testing.T) {
	backend := &fakeBackend{
		coins: []model.Coin{
			{Symbol: "SHIB", IsDefault: false},
			{Symbol: "BTC", IsDefault: true},
			{Symbol: "PEPE", IsDefault: false},
			{Symbol: "LTC", IsDefault: true},
		},
	}
	service := NewService(backend, time.Hour)

	service.RefreshList(context.Background())

	state := service.GetState()
	expected := []string{"BTC", "LTC", "SHIB", "PEPE"}
	for i, symbol := range expected {
		if state.Coins[i].Symbol != symbol {
			t.Errorf("Expected coins[%d] to be %s, got %s", i, symbol, state.Coins[i].Symbol)
		}
	}
	if state.Loading {
		t.Error("Expected loading flag to clear once the list call settled")
	}
}

func TestRefreshList_FallbackData(t *testing.T) {
	backend := &fakeBackend{
		coins: []model.Coin{
			{Symbol: "BTC", IsDefault: true},
			{Symbol: "ETH", IsDefault: true},
		},
		coinsErr: api.ErrFallbackData,
	}
	service := NewService(backend, time.Hour)

	service.RefreshList(context.Background())

	state := service.GetState()
	if len(state.Coins) != 2 {
		t.Fatalf("Expected 2 fallback coins, got %d", len(state.Coins))
	}
	if state.ErrorMessage != MsgFallbackData {
		t.Errorf("Expected '%s', got '%s'", MsgFallbackData, state.ErrorMessage)
	}
	if state.LastUpdated.IsZero() {
		t.Error("Expected LastUpdated to be stamped for fallback data")
	}
}

func TestRefreshList_FailureKeepsPreviousList(t *testing.T) {
	backend := &fakeBackend{
		coins: []model.Coin{
			{Symbol: "BTC", IsDefault: true},
		},
	}
	service := NewService(backend, time.Hour)

	service.RefreshList(context.Background())

	// Now the backend starts reporting an error with its own text.
	backend.mu.Lock()
	backend.coinsErr = &api.RequestError{
		Op: "list", Kind: api.KindServer, StatusCode: http.StatusBadGateway, Message: "upstream unavailable",
	}
	backend.mu.Unlock()

	service.RefreshList(context.Background())

	state := service.GetState()
	if len(state.Coins) != 1 || state.Coins[0].Symbol != "BTC" {
		t.Errorf("Expected previous list to survive the failure, got %v", state.Coins)
	}
	if state.ErrorMessage != "upstream unavailable" {
		t.Errorf("Expected backend text to be surfaced verbatim, got '%s'", state.ErrorMessage)
	}

	// A timeout replaces the message with the fixed timeout string.
	backend.mu.Lock()
	backend.coinsErr = &api.RequestError{Op: "list", Kind: api.KindTimeout, Err: context.DeadlineExceeded}
	backend.mu.Unlock()

	service.RefreshList(context.Background())

	if got := service.GetState().ErrorMessage; got != MsgTimeout {
		t.Errorf("Expected '%s', got '%s'", MsgTimeout, got)
	}
}

func TestRefreshList_SuccessClearsError(t *testing.T) {
	backend := &fakeBackend{
		coinsErr: &api.RequestError{Op: "list", Kind: api.KindTimeout, Err: context.DeadlineExceeded},
	}
	service := NewService(backend, time.Hour)

	service.RefreshList(context.Background())
	if service.GetState().ErrorMessage == "" {
		t.Fatal("Expected an error message after a failed fetch")
	}

	backend.mu.Lock()
	backend.coinsErr = nil
	backend.coins = []model.Coin{{Symbol: "BTC", IsDefault: true}}
	backend.mu.Unlock()

	service.RefreshList(context.Background())

	if got := service.GetState().ErrorMessage; got != "" {
		t.Errorf("Expected error to clear on success, got '%s'", got)
	}
}

// gatedBackend hands each FetchCoins call a private reply gate so tests can
// settle overlapping responses out of order.
type gatedBackend struct {
	fakeBackend
	calls chan chan listReply
}

type listReply struct {
	coins []model.Coin
	err   error
}

func (g *gatedBackend) FetchCoins(ctx context.Context) ([]model.Coin, error) {
	gate := make(chan listReply)
	g.calls <- gate
	reply := <-gate
	return reply.coins, reply.err
}

func TestRefreshList_StaleResponseDiscarded(t *testing.T) {
	backend := &gatedBackend{calls: make(chan chan listReply, 2)}
	service := NewService(backend, time.Hour)

	// First request goes out and stalls.
	go service.RefreshList(context.Background())
	firstGate := <-backend.calls

	// Second request overtakes it.
	go service.RefreshList(context.Background())
	secondGate := <-backend.calls

	secondGate <- listReply{coins: []model.Coin{{Symbol: "ETH", IsDefault: true}}}

	waitFor(t, func() bool {
		state := service.GetState()
		return len(state.Coins) == 1 && state.Coins[0].Symbol == "ETH"
	}, "second response to apply")

	// The stale first response settles late and must be discarded.
	firstGate <- listReply{coins: []model.Coin{{Symbol: "BTC", IsDefault: true}}}
	time.Sleep(200 * time.Millisecond)

	state := service.GetState()
	if len(state.Coins) != 1 || state.Coins[0].Symbol != "ETH" {
		t.Errorf("Expected stale response to be discarded, got %v", state.Coins)
	}
}

func TestSearch_ShortQuerySkipsNetwork(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{{Symbol: "BTC", Name: "Bitcoin"}},
	}
	service := NewService(backend, time.Hour)

	// Seed candidates with a real search first.
	service.Search(context.Background(), "bt")
	if len(service.GetState().Results) != 1 {
		t.Fatal("Expected seeded candidates before the short query")
	}

	service.Search(context.Background(), "b")

	state := service.GetState()
	if len(state.Results) != 0 {
		t.Errorf("Expected short query to clear candidates, got %d", len(state.Results))
	}
	if queries := backend.getSearchQueries(); len(queries) != 1 {
		t.Errorf("Expected short query to skip the network, got queries %v", queries)
	}
}

func TestSearch_FiltersBackendResults(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{
			{Symbol: "BTC", Name: "Bitcoin"},
			{Symbol: "ETH", Name: "Ethereum"},
		},
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "bt")

	state := service.GetState()
	if len(state.Results) != 1 {
		t.Fatalf("Expected 1 filtered result, got %d", len(state.Results))
	}
	if state.Results[0].Symbol != "BTC" {
		t.Errorf("Expected BTC to survive the filter, got %s", state.Results[0].Symbol)
	}
}

func TestSearch_CapsResults(t *testing.T) {
	backend := &fakeBackend{}
	for i := 0; i < 25; i++ {
		backend.results = append(backend.results, model.SearchResult{
			Symbol: fmt.Sprintf("COIN%d", i),
			Name:   fmt.Sprintf("Coin Number %d", i),
		})
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "coin")

	if got := len(service.GetState().Results); got != MaxSearchResults {
		t.Errorf("Expected results capped at %d, got %d", MaxSearchResults, got)
	}
}

func TestSearch_FailureClearsCandidates(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{{Symbol: "BTC", Name: "Bitcoin"}},
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "bt")
	if len(service.GetState().Results) != 1 {
		t.Fatal("Expected seeded candidates before the failure")
	}

	backend.mu.Lock()
	backend.searchErr = &api.RequestError{Op: "search", Kind: api.KindServer, StatusCode: 500, Message: "An unexpected error occurred"}
	backend.mu.Unlock()

	service.Search(context.Background(), "eth")

	state := service.GetState()
	if len(state.Results) != 0 {
		t.Errorf("Expected candidates cleared on failure, got %d", len(state.Results))
	}
	if state.ErrorMessage != "An unexpected error occurred" {
		t.Errorf("Expected backend error text, got '%s'", state.ErrorMessage)
	}
}

func TestQueueSearch_CollapsesBursts(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{{Symbol: "DOGE", Name: "Dogecoin"}},
	}
	service := NewService(backend, time.Hour)
	defer service.Stop()

	// Simulated typing burst, all inside the debounce window.
	service.QueueSearch("d")
	service.QueueSearch("do")
	service.QueueSearch("dog")
	service.QueueSearch("doge")

	waitFor(t, func() bool {
		return len(backend.getSearchQueries()) == 1
	}, "debounced search to fire once")

	queries := backend.getSearchQueries()
	if queries[0] != "doge" {
		t.Errorf("Expected the final text 'doge' to win, got '%s'", queries[0])
	}

	// No trailing extra calls after the window.
	time.Sleep(2 * SearchDebounce)
	if got := len(backend.getSearchQueries()); got != 1 {
		t.Errorf("Expected exactly 1 search call, got %d", got)
	}
}

func TestClearSearch(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{{Symbol: "BTC", Name: "Bitcoin"}},
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "bt")
	service.QueueSearch("eth") // pending debounced call
	service.ClearSearch()

	if got := len(service.GetState().Results); got != 0 {
		t.Errorf("Expected candidates cleared, got %d", got)
	}

	time.Sleep(2 * SearchDebounce)
	if queries := backend.getSearchQueries(); len(queries) != 1 {
		t.Errorf("Expected the pending debounced search to be cancelled, got queries %v", queries)
	}
}

func TestAddCoin_Success(t *testing.T) {
	backend := &fakeBackend{
		coins:   []model.Coin{{Symbol: "BTC", IsDefault: true}, {Symbol: "XMR"}},
		results: []model.SearchResult{{Symbol: "XMR", Name: "Monero"}},
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "mone")
	if len(service.GetState().Results) != 1 {
		t.Fatal("Expected candidates before the add")
	}

	err := service.AddCoin(context.Background(), "XMR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	state := service.GetState()
	if len(state.Results) != 0 {
		t.Errorf("Expected candidates cleared after a successful add, got %d", len(state.Results))
	}
	if state.ErrorMessage != "" {
		t.Errorf("Expected no error message, got '%s'", state.ErrorMessage)
	}
	if backend.getListCalls() != 1 {
		t.Errorf("Expected exactly one list re-fetch after the add, got %d", backend.getListCalls())
	}
	if len(state.Coins) != 2 {
		t.Errorf("Expected the re-fetched list, got %v", state.Coins)
	}
}

func TestAddCoin_Failure(t *testing.T) {
	backend := &fakeBackend{
		results: []model.SearchResult{{Symbol: "XMR", Name: "Monero"}},
		addErr: &api.RequestError{
			Op: "add", Kind: api.KindServer, StatusCode: http.StatusBadRequest, Message: "XMR is already being tracked",
		},
	}
	service := NewService(backend, time.Hour)

	service.Search(context.Background(), "mone")

	err := service.AddCoin(context.Background(), "XMR")
	if err == nil {
		t.Fatal("Expected an error from the failed add")
	}

	state := service.GetState()
	if state.ErrorMessage != "XMR is already being tracked" {
		t.Errorf("Expected backend text to be surfaced, got '%s'", state.ErrorMessage)
	}
	if len(state.Results) != 1 {
		t.Errorf("Expected candidates untouched on failure, got %d", len(state.Results))
	}
	if backend.getListCalls() != 0 {
		t.Errorf("Expected no re-fetch after a failed add, got %d", backend.getListCalls())
	}
}

func TestRemoveCoin_Success(t *testing.T) {
	backend := &fakeBackend{
		coins: []model.Coin{{Symbol: "BTC", IsDefault: true}},
	}
	service := NewService(backend, time.Hour)

	err := service.RemoveCoin(context.Background(), "XMR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if backend.getListCalls() != 1 {
		t.Errorf("Expected exactly one list re-fetch after the remove, got %d", backend.getListCalls())
	}
}

func TestRemoveCoin_DefaultRefused(t *testing.T) {
	backend := &fakeBackend{
		removeErr: &api.RequestError{
			Op: "remove", Kind: api.KindServer, StatusCode: http.StatusBadRequest, Message: "Cannot remove default cryptocurrencies",
		},
	}
	service := NewService(backend, time.Hour)

	err := service.RemoveCoin(context.Background(), "BTC")
	if err == nil {
		t.Fatal("Expected an error for a default coin")
	}

	if got := service.GetState().ErrorMessage; got != "Cannot remove default cryptocurrencies" {
		t.Errorf("Expected backend refusal verbatim, got '%s'", got)
	}
	if backend.getListCalls() != 0 {
		t.Errorf("Expected no re-fetch after a refused remove, got %d", backend.getListCalls())
	}
}

func TestStop_Idempotent(t *testing.T) {
	service := NewService(&fakeBackend{}, time.Hour)
	service.Start()

	// Must not panic
	service.Stop()
	service.Stop()
}

func TestUpdateCallback(t *testing.T) {
	service := NewService(&fakeBackend{}, time.Hour)

	var mu sync.Mutex
	var received []State

	service.SetUpdateCallback(func(state State) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, state)
	})

	service.ClearSearch()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("Expected 1 callback invocation, got %d", len(received))
	}
	if received[0].Conn != model.ConnStateInitializing {
		t.Errorf("Expected snapshot to carry conn state, got %s", received[0].Conn)
	}
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		expected string
	}{
		{"timeout", &api.RequestError{Kind: api.KindTimeout}, MsgListFailed, MsgTimeout},
		{"network", &api.RequestError{Kind: api.KindNetwork}, MsgListFailed, MsgNoResponse},
		{"transport", &api.RequestError{Kind: api.KindTransport}, MsgListFailed, MsgTransport},
		{"unexpected", &api.RequestError{Kind: api.KindUnexpected}, MsgListFailed, MsgUnexpected},
		{"server with text", &api.RequestError{Kind: api.KindServer, Message: "nope"}, MsgAddFailed, "nope"},
		{"server without text", &api.RequestError{Kind: api.KindServer}, MsgAddFailed, MsgAddFailed},
		{"plain error", errors.New("boom"), MsgSearchFailed, MsgSearchFailed},
	}

	for _, test := range tests {
		if got := messageFor(test.err, test.fallback); got != test.expected {
			t.Errorf("messageFor(%s) = '%s', expected '%s'", test.name, got, test.expected)
		}
	}
}
