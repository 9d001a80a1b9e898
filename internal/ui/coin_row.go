package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/cryptotrack/crypto-tracker/internal/model"
)

// CoinRow represents a compact coin row widget
type CoinRow struct {
	widget.BaseWidget

	coin model.Coin

	// UI components
	symbolLabel   *widget.Label
	nameLabel     *widget.Label
	priceLabel    *widget.Label
	change24Label *widget.Label
	change7Label  *widget.Label
	capLabel      *widget.Label

	// Action buttons
	removeBtn *widget.Button

	// Callbacks
	onRemove func(symbol string)
}

// NewCoinRow creates a new coin row widget
func NewCoinRow(coin model.Coin) *CoinRow {
	cr := &CoinRow{
		coin: coin,
	}
	cr.ExtendBaseWidget(cr)
	cr.createUI()
	cr.updateFromCoin()
	return cr
}

// SetOnRemove sets the remove action callback
func (cr *CoinRow) SetOnRemove(onRemove func(symbol string)) {
	if onRemove == nil {
		log.Printf("Warning: onRemove callback is nil for coin %s", cr.coin.Symbol)
	}
	cr.onRemove = onRemove
}

// UpdateCoin updates the row with new coin data
func (cr *CoinRow) UpdateCoin(coin model.Coin) {
	cr.coin = coin
	cr.updateFromCoin()
	cr.Refresh()
}

// createUI creates the UI components
func (cr *CoinRow) createUI() {
	// Create labels
	cr.symbolLabel = widget.NewLabel("")
	cr.symbolLabel.TextStyle = fyne.TextStyle{Bold: true}
	cr.symbolLabel.Alignment = fyne.TextAlignLeading

	cr.nameLabel = widget.NewLabel("")
	cr.nameLabel.Alignment = fyne.TextAlignLeading
	cr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	cr.priceLabel = widget.NewLabel("")
	cr.priceLabel.Alignment = fyne.TextAlignTrailing
	cr.priceLabel.TextStyle = fyne.TextStyle{Monospace: true}

	cr.change24Label = widget.NewLabel("")
	cr.change24Label.Alignment = fyne.TextAlignTrailing

	cr.change7Label = widget.NewLabel("")
	cr.change7Label.Alignment = fyne.TextAlignTrailing

	cr.capLabel = widget.NewLabel("")
	cr.capLabel.Alignment = fyne.TextAlignTrailing

	// Create remove button
	cr.removeBtn = widget.NewButton(IconClose, func() {
		// Get current coin state dynamically - not from closure!
		currentCoin := cr.coin
		log.Printf("Remove button clicked for coin %s", currentCoin.Symbol)
		if cr.onRemove != nil {
			cr.onRemove(currentCoin.Symbol)
		} else {
			log.Printf("onRemove callback is nil for coin %s", currentCoin.Symbol)
		}
	})
	cr.removeBtn.Importance = widget.LowImportance
}

// updateFromCoin updates UI components based on coin data
func (cr *CoinRow) updateFromCoin() {
	// Default coins carry a pin marker and cannot be removed
	if cr.coin.IsDefault {
		cr.symbolLabel.SetText(IconPinned + " " + cr.coin.Symbol)
		cr.removeBtn.Disable()
	} else {
		cr.symbolLabel.SetText(cr.coin.Symbol)
		cr.removeBtn.Enable()
	}

	cr.nameLabel.SetText(cr.coin.Name)
	cr.priceLabel.SetText(cr.coin.FormattedPrice())
	cr.capLabel.SetText(cr.coin.FormattedMarketCap())

	cr.setChangeLabel(cr.change24Label, cr.coin.Change24h, cr.coin.FormattedChange24h())
	cr.setChangeLabel(cr.change7Label, cr.coin.Change7d, cr.coin.FormattedChange7d())
}

// setChangeLabel colors a percent-change label by sign
func (cr *CoinRow) setChangeLabel(label *widget.Label, change float64, text string) {
	switch {
	case change > 0:
		label.Importance = widget.SuccessImportance
		label.SetText(IconUp + " " + text)
	case change < 0:
		label.Importance = widget.DangerImportance
		label.SetText(IconDown + " " + text)
	default:
		label.Importance = widget.MediumImportance
		label.SetText(text)
	}
}

// CreateRenderer creates the widget renderer
func (cr *CoinRow) CreateRenderer() fyne.WidgetRenderer {
	return &coinRowRenderer{coinRow: cr}
}

// coinRowRenderer renders the coin row widget
type coinRowRenderer struct {
	coinRow *CoinRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *coinRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		// Ensure minimum size to prevent layout issues
		if size.Width < RowMinWidth {
			size.Width = RowMinWidth
		}
		if size.Height < RowMinHeight {
			size.Height = RowMinHeight
		}
		r.layout.Resize(size)
	}
}

// MinSize returns the minimum size
func (r *coinRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	// Ensure minimum size is reasonable to prevent layout issues
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *coinRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}

	if r.layout != nil {
		r.layout.Refresh()
	}
}

// Objects returns the container objects
func (r *coinRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *coinRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *coinRowRenderer) createLayout() {
	cr := r.coinRow

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	// Left side: pinned marker and symbol at fixed width, coin name
	// occupying the remaining space with ellipsis truncation
	leftCluster := fixedWidth(SymbolLabelWidth, cr.symbolLabel)

	// Right side: numeric columns at fixed widths so rows align vertically
	dataRow := container.NewHBox(
		fixedWidth(PriceLabelWidth, cr.priceLabel),
		fixedWidth(ChangeLabelWidth, cr.change24Label),
		fixedWidth(ChangeLabelWidth, cr.change7Label),
		fixedWidth(CapLabelWidth, cr.capLabel),
	)

	// Border layout here guarantees the remove button is flush to the row's
	// right edge with no extra gap.
	rightCluster := container.NewBorder(nil, nil, nil, cr.removeBtn, dataRow)

	// Border with center expandable name and both clusters pinned.
	mainContent := container.NewBorder(nil, nil, leftCluster, rightCluster, cr.nameLabel)

	separator := widget.NewSeparator()

	r.layout = container.NewVBox(
		mainContent,
		separator,
	)

	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
}
