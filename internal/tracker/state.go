package tracker

import (
	"time"

	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// State is one immutable snapshot of dashboard state handed to the UI.
// Slices are copies, so receivers may hold on to them across updates.
type State struct {
	Conn         model.ConnState
	Coins        []model.Coin
	Results      []model.SearchResult
	ErrorMessage string    // transient message, empty when all is well
	Loading      bool      // true until the first list call settles
	LastUpdated  time.Time // zero until the first list fetch lands
}
