package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cryptotrack/crypto-tracker/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiURLEntry       *widget.Entry
	pollIntervalEntry *widget.Entry
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Backend base URL
	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder("http://localhost:5000/api")

	// Poll interval in seconds
	sd.pollIntervalEntry = widget.NewEntry()
	sd.pollIntervalEntry.SetPlaceHolder(
		strconv.Itoa(config.MinPollIntervalSec) + "-" + strconv.Itoa(config.MaxPollIntervalSec))

	// Language selection
	languageOptions := []string{}
	languageLabels := sd.settings.GetLanguageOptions()
	for code := range languageLabels {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	// Custom formatting for language display
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Connection Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyBackendURL)+":"),
		sd.apiURLEntry,

		widget.NewLabel(sd.localization.GetText(KeyPollInterval)+":"),
		sd.pollIntervalEntry,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.pollIntervalEntry.SetText(strconv.Itoa(sd.settings.GetPollIntervalSec()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save backend URL
	apiURL := sd.apiURLEntry.Text
	if apiURL != "" {
		sd.settings.SetAPIBaseURL(apiURL)
	}

	// Validate and save poll interval; SetPollIntervalSec clamps the range
	intervalStr := sd.pollIntervalEntry.Text
	if intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil {
			sd.settings.SetPollIntervalSec(interval)
		}
	}

	// Save language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	// Show confirmation; URL and interval are read once at startup
	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved)+"\n"+sd.localization.GetText(KeyRestartNote),
		sd.window,
	)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
