package ui

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cryptotrack/crypto-tracker/internal/config"
	"github.com/cryptotrack/crypto-tracker/internal/model"
	"github.com/cryptotrack/crypto-tracker/internal/tracker"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	trackerSvc   *tracker.Service
	settings     *config.Settings
	localization *Localization

	// Toolbar
	searchEntry *widget.Entry
	addBtn      *widget.Button
	refreshBtn  *widget.Button

	// Coin table
	coinList *widget.List

	// Status bar
	connLabel    *widget.Label
	updatedLabel *widget.Label

	// Search candidate pop-up anchored under the toolbar entry
	searchPopup *widget.PopUp

	// Add-coin dialog, recreated on each open so its texts track the language
	addDialog *AddCoinDialog

	// Latest tracker snapshot rendered by the list
	stateMutex sync.Mutex
	state      tracker.State

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, trackerSvc *tracker.Service, settings *config.Settings) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		trackerSvc:   trackerSvc,
		settings:     settings,
		localization: localization,
		state:        trackerSvc.GetState(),
	}

	log.Printf("RootUI initialized with tracker service: %v", ui.trackerSvc != nil)

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for tracker state updates
	ui.trackerSvc.SetUpdateCallback(ui.onStateUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Create search entry
	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.searchEntry.OnChanged = ui.onSearchChanged
	// Skip the debounce window when user presses Enter in the search field
	ui.searchEntry.OnSubmitted = func(text string) {
		go ui.trackerSvc.Search(context.Background(), strings.TrimSpace(text))
	}

	// Create add button
	ui.addBtn = widget.NewButton(ui.localization.GetText(KeyAddCoin), ui.onShowAddDialog)

	// Create refresh button
	ui.refreshBtn = widget.NewButton(IconRefresh, ui.onManualRefresh)
	ui.refreshBtn.Importance = widget.LowImportance

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create logo
	logo, err := LoadLogoResource()
	var logoImage *canvas.Image
	if err == nil {
		logoImage = canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
	} else {
		// Fallback to text if logo loading fails
		logoImage = nil
	}

	// Create top panel (search row) with logo
	actionBox := container.NewHBox(ui.refreshBtn, ui.addBtn)
	var topPanel *fyne.Container
	if logoImage != nil {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(logoImage, settingsBtn), actionBox, ui.searchEntry)
	} else {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(settingsBtn), actionBox, ui.searchEntry)
	}

	// Create notification panel under the search row (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Combine search row and notification panel at the top
	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Create coin list
	ui.coinList = widget.NewList(
		func() int {
			return len(ui.visibleCoins())
		},
		func() fyne.CanvasObject { return ui.createCoinItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateCoinItem(id, obj) },
	)

	// Create status bar with connection state and last-updated stamp
	ui.connLabel = widget.NewLabel(ui.state.Conn.String())
	ui.updatedLabel = widget.NewLabel(DashPlaceholder)
	ui.updatedLabel.Alignment = fyne.TextAlignTrailing
	statusBar := container.NewBorder(nil, nil, ui.connLabel, ui.updatedLabel)

	// Wrap the list so a pull gesture triggers a manual refresh
	listArea := NewPullToRefreshWidget(ui.coinList, ui.onManualRefresh)

	// Create main layout
	content := container.NewBorder(
		topCombined, // top
		statusBar,   // bottom
		nil,         // left
		nil,         // right
		listArea,    // center - coin table
	)

	ui.window.SetContent(content)

	// Render the seeded snapshot
	ui.applyState(ui.state)

	// UI setup completed
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Refresh menu item
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.onManualRefresh)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), refreshItem, settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	// Update window title
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	// Update UI elements
	ui.searchEntry.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.addBtn.SetText(ui.localization.GetText(KeyAddCoin))

	// Redraw labels that carry localized fragments
	ui.applyState(ui.currentState())
}

// onSearchChanged routes toolbar and dialog keystrokes into the debounced
// search coordinator
func (ui *RootUI) onSearchChanged(text string) {
	query := strings.TrimSpace(text)
	if len(query) < tracker.MinQueryLength {
		// Short queries never touch the network
		ui.trackerSvc.ClearSearch()
		return
	}

	ui.trackerSvc.QueueSearch(query)
}

// onManualRefresh triggers an immediate list re-fetch outside the poll timer
func (ui *RootUI) onManualRefresh() {
	log.Printf("Manual refresh requested")
	go ui.trackerSvc.RefreshList(context.Background())
}

// showNotification displays a message in the notification panel under the
// search row. When spinning is true, a spinner is shown to indicate
// background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		// Language may have changed
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
	sd.Show()
}

// onShowAddDialog opens the add-coin dialog. The dialog is built fresh each
// time so its texts follow the current language.
func (ui *RootUI) onShowAddDialog() {
	ui.hideSearchPopup()

	ui.addDialog = NewAddCoinDialog(ui.window, ui.localization,
		ui.onSearchChanged,
		func(symbol string) {
			ui.onPickCandidate(symbol, true)
		},
		func() {
			// Dropping search state keeps the toolbar pop-up from replaying
			// the dialog's candidates
			ui.trackerSvc.ClearSearch()
		},
	)
	ui.addDialog.Show()
}

// onPickCandidate adds the picked symbol to the tracked set. On success the
// add dialog closes and all search state clears; on failure both stay as
// they are and the banner carries the message.
func (ui *RootUI) onPickCandidate(symbol string, fromDialog bool) {
	log.Printf("Candidate picked: %s (dialog=%v)", symbol, fromDialog)

	go func() {
		if err := ui.trackerSvc.AddCoin(context.Background(), symbol); err != nil {
			log.Printf("Error adding coin %s: %v", symbol, err)
			return
		}

		fyne.Do(func() {
			if fromDialog && ui.addDialog != nil {
				ui.addDialog.Hide()
			}
			ui.hideSearchPopup()
			ui.searchEntry.SetText("")
			ui.showToast(symbol + " " + ui.localization.GetText(KeyCoinAdded))
		})
	}()
}

// onRemoveCoin asks the tracker to stop following symbol. The backend
// refuses default coins; its message lands in the banner.
func (ui *RootUI) onRemoveCoin(symbol string) {
	log.Printf("onRemoveCoin called for %s", symbol)

	go func() {
		if err := ui.trackerSvc.RemoveCoin(context.Background(), symbol); err != nil {
			log.Printf("Error removing coin %s: %v", symbol, err)
			return
		}

		fyne.Do(func() {
			ui.showToast(symbol + " " + ui.localization.GetText(KeyCoinRemoved))
		})
	}()
}

// showToast pops a short confirmation that hides itself. Must run on the UI
// thread.
func (ui *RootUI) showToast(message string) {
	toastPopup := widget.NewPopUp(widget.NewLabel(message), ui.window.Canvas())
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			toastPopup.Hide()
		})
	}()
}

// createCoinItem creates a new coin item widget
func (ui *RootUI) createCoinItem() fyne.CanvasObject {
	// Create placeholder coin row - will be updated in updateCoinItem
	coinRow := NewCoinRow(model.Coin{Symbol: DashPlaceholder, Name: "Loading..."})
	coinRow.SetOnRemove(ui.onRemoveCoin)
	return coinRow
}

// updateCoinItem updates a coin item with current data
func (ui *RootUI) updateCoinItem(id widget.ListItemID, item fyne.CanvasObject) {
	coins := ui.visibleCoins()
	if id >= len(coins) {
		return
	}

	// Cast to CoinRow and update
	if coinRow, ok := item.(*CoinRow); ok {
		// Re-set the callback every time the row is recycled
		coinRow.SetOnRemove(ui.onRemoveCoin)
		coinRow.UpdateCoin(coins[id])
	}
}

// visibleCoins returns the coin slice from the latest snapshot. Snapshots
// carry copies, so the list may render without holding the tracker lock.
func (ui *RootUI) visibleCoins() []model.Coin {
	ui.stateMutex.Lock()
	defer ui.stateMutex.Unlock()
	return ui.state.Coins
}

// currentState returns the latest tracker snapshot
func (ui *RootUI) currentState() tracker.State {
	ui.stateMutex.Lock()
	defer ui.stateMutex.Unlock()
	return ui.state
}

// debouncedCanvasRefresh limits full-canvas refreshes to one per debounce
// window
func (ui *RootUI) debouncedCanvasRefresh() {
	ui.uiUpdateMutex.Lock()
	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		ui.uiUpdateMutex.Unlock()
		return // Skip update if too soon
	}
	ui.lastUIUpdate = now
	ui.uiUpdateMutex.Unlock()

	fyne.Do(func() {
		ui.window.Canvas().Refresh(ui.window.Content())
	})
}

// onStateUpdate handles state updates from the tracker service
func (ui *RootUI) onStateUpdate(state tracker.State) {
	log.Printf("State update received: conn=%s coins=%d results=%d loading=%v err=%q",
		state.Conn, len(state.Coins), len(state.Results), state.Loading, state.ErrorMessage)

	ui.stateMutex.Lock()
	ui.state = state
	ui.stateMutex.Unlock()

	// Banner shows the newest failure, or initial-load progress; the spinner
	// never runs while an error is displayed
	switch {
	case state.ErrorMessage != "":
		ui.showNotification(IconError+" "+state.ErrorMessage, false)
	case state.Loading:
		ui.showNotification(ui.localization.GetText(KeyLoading), true)
	default:
		ui.hideNotification()
	}

	// Apply the snapshot to widgets - must be done in UI thread
	fyne.Do(func() {
		ui.applyState(state)
	})

	// Use debounced canvas refresh to prevent excessive redraws
	ui.debouncedCanvasRefresh()
}

// applyState renders a tracker snapshot. Must run on the UI thread.
func (ui *RootUI) applyState(state tracker.State) {
	ui.coinList.Refresh()

	// Connection state label colored by liveness
	ui.connLabel.SetText(state.Conn.String())
	if state.Conn.IsOnline() {
		ui.connLabel.Importance = widget.SuccessImportance
	} else {
		ui.connLabel.Importance = widget.DangerImportance
	}
	ui.connLabel.Refresh()

	// Last updated stamp
	if state.LastUpdated.IsZero() {
		ui.updatedLabel.SetText(DashPlaceholder)
	} else {
		ui.updatedLabel.SetText(ui.localization.GetText(KeyLastUpdated) + ": " + state.LastUpdated.Format(LastUpdatedFormat))
	}

	// Route search candidates to the add dialog when it is open, otherwise
	// to the pop-up under the toolbar entry
	if ui.addDialog != nil && ui.addDialog.IsOpen() {
		ui.hideSearchPopup()
		ui.addDialog.UpdateResults(state.Results)
		return
	}

	ui.updateSearchPopup(state.Results)
}

// updateSearchPopup rebuilds the candidate pop-up anchored under the toolbar
// search entry. Must run on the UI thread.
func (ui *RootUI) updateSearchPopup(results []model.SearchResult) {
	ui.hideSearchPopup()

	if len(results) == 0 {
		return
	}

	// Candidates for text the user has already shortened or cleared stay
	// hidden
	if len(strings.TrimSpace(ui.searchEntry.Text)) < tracker.MinQueryLength {
		return
	}

	box := container.NewVBox()
	for _, result := range results {
		candidate := result // Capture for closure
		item := widget.NewButton(candidate.Symbol+MiddleDotSeparator+candidate.Name, func() {
			ui.onPickCandidate(candidate.Symbol, false)
		})
		item.Alignment = widget.ButtonAlignLeading
		item.Importance = widget.LowImportance
		box.Add(item)
	}

	ui.searchPopup = widget.NewPopUp(box, ui.window.Canvas())

	entryPos := fyne.CurrentApp().Driver().AbsolutePositionForObject(ui.searchEntry)
	entrySize := ui.searchEntry.Size()
	ui.searchPopup.ShowAtPosition(fyne.NewPos(entryPos.X, entryPos.Y+entrySize.Height))

	width := entrySize.Width
	if width < SearchPopupMinWidth {
		width = SearchPopupMinWidth
	}
	ui.searchPopup.Resize(fyne.NewSize(width, ui.searchPopup.MinSize().Height))
}

// hideSearchPopup dismisses the candidate pop-up if present
func (ui *RootUI) hideSearchPopup() {
	if ui.searchPopup != nil {
		ui.searchPopup.Hide()
		ui.searchPopup = nil
	}
}
