package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cryptotrack/crypto-tracker/internal/model"
	"github.com/cryptotrack/crypto-tracker/internal/tracker"
)

// AddCoinDialog lets the user search the full backend catalog and pick a
// candidate to track
type AddCoinDialog struct {
	window       fyne.Window
	localization *Localization
	dialog       *dialog.CustomDialog

	// UI components
	queryEntry  *widget.Entry
	hintLabel   *widget.Label
	resultsList *widget.List

	results []model.SearchResult
	open    bool

	// Callbacks
	onQuery  func(query string)
	onPick   func(symbol string)
	onClosed func()
}

// NewAddCoinDialog creates a new add-coin dialog
func NewAddCoinDialog(window fyne.Window, localization *Localization, onQuery func(string), onPick func(string), onClosed func()) *AddCoinDialog {
	ad := &AddCoinDialog{
		window:       window,
		localization: localization,
		onQuery:      onQuery,
		onPick:       onPick,
		onClosed:     onClosed,
	}

	ad.createUI()
	return ad
}

// createUI creates the dialog UI
func (ad *AddCoinDialog) createUI() {
	// Query entry shares the debounced search coordinator with the toolbar
	ad.queryEntry = widget.NewEntry()
	ad.queryEntry.SetPlaceHolder(ad.localization.GetText(KeySearchPlaceholder))
	ad.queryEntry.OnChanged = func(text string) {
		if ad.onQuery != nil {
			ad.onQuery(text)
		}
	}

	ad.hintLabel = widget.NewLabel(ad.localization.GetText(KeyAddCoinHint))

	// Candidate list
	ad.resultsList = widget.NewList(
		func() int {
			return len(ad.results)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ad.results) {
				return
			}
			if label, ok := obj.(*widget.Label); ok {
				result := ad.results[id]
				label.SetText(result.Symbol + MiddleDotSeparator + result.Name)
			}
		},
	)
	ad.resultsList.OnSelected = func(id widget.ListItemID) {
		ad.resultsList.UnselectAll()
		if id >= len(ad.results) {
			return
		}
		if ad.onPick != nil {
			ad.onPick(ad.results[id].Symbol)
		}
	}

	content := container.NewBorder(
		container.NewVBox(ad.queryEntry, ad.hintLabel), // top
		nil, // bottom
		nil, // left
		nil, // right
		ad.resultsList, // center - candidate list
	)

	ad.dialog = dialog.NewCustom(
		ad.localization.GetText(KeyAddCoinTitle),
		ad.localization.GetText(KeyCancel),
		content,
		ad.window,
	)
	ad.dialog.SetOnClosed(func() {
		ad.open = false
		if ad.onClosed != nil {
			ad.onClosed()
		}
	})

	ad.dialog.Resize(fyne.NewSize(AddDialogWidth, AddDialogHeight))
}

// Show displays the dialog with a blank query
func (ad *AddCoinDialog) Show() {
	ad.open = true
	ad.results = nil
	ad.hintLabel.SetText(ad.localization.GetText(KeyAddCoinHint))
	ad.queryEntry.SetText("")
	ad.resultsList.Refresh()

	ad.dialog.Show()
	ad.window.Canvas().Focus(ad.queryEntry)
}

// Hide closes the dialog
func (ad *AddCoinDialog) Hide() {
	ad.dialog.Hide()
}

// IsOpen reports whether the dialog is currently shown
func (ad *AddCoinDialog) IsOpen() bool {
	return ad.open
}

// UpdateResults replaces the candidate list. Must run on the UI thread.
func (ad *AddCoinDialog) UpdateResults(results []model.SearchResult) {
	ad.results = results

	query := strings.TrimSpace(ad.queryEntry.Text)
	if len(query) >= tracker.MinQueryLength && len(results) == 0 {
		ad.hintLabel.SetText(ad.localization.GetText(KeyNoResults))
	} else {
		ad.hintLabel.SetText(ad.localization.GetText(KeyAddCoinHint))
	}

	ad.resultsList.Refresh()
}
