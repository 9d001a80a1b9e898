package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconSearch   = "🔍"
	IconPinned   = "📌"
	IconClose    = "×"
	IconUp       = "▲"
	IconDown     = "▼"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	LastUpdatedFormat  = "15:04:05"
)

// Layout sizing (CoinRow / lists)
const (
	SymbolLabelWidth float32 = 90
	PriceLabelWidth  float32 = 110
	ChangeLabelWidth float32 = 80
	CapLabelWidth    float32 = 110

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 52
	RowDefaultH  float32 = 48
)

// Dialog sizing
const (
	AddDialogWidth       float32 = 420
	AddDialogHeight      float32 = 380
	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 320
)

// Search candidate pop-up sizing
const (
	SearchPopupMinWidth float32 = 260
)

// Toast notification behavior
const (
	ToastAutoHide = 5 * time.Second
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
