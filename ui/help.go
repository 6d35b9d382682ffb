package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const helpText = `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Navigation:[-]
  [white]↑ / ↓[-]       Move through the list
  [white]Enter[-]       Open the selected item or run the action
  [white]gg / G[-]      First / last item
  [white]] / [[-]       Next / previous page
  [white]PgDn/PgUp[-]   Next / previous page (alternative)
  [white]ESC[-]         Back to the previous screen

[lightgreen]General:[-]
  [white]/[-]           Open search
  [white]?[-]           Show this help panel
  [white]q / Ctrl+C[-]  Exit program

[lightgreen]Forms:[-]
  [white]Tab[-]         Next field
  [white]ESC[-]         Cancel

[yellow]Press ESC or ? to close this help panel[-]
`

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	app       *App
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView(app *App) *HelpView {
	hv := &HelpView{
		app: app,
	}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help (ESC to close) ").
		SetBorderColor(tcell.ColorYellow)

	return hv
}

// Show marks the help view active and focuses it
func (hv *HelpView) Show() {
	hv.isActive = true
	hv.app.tviewApp.SetFocus(hv.textView)
}

// Close hides the help view
func (hv *HelpView) Close() {
	hv.isActive = false
	hv.app.closeOverlay()
}

// IsActive returns whether the help view is active
func (hv *HelpView) IsActive() bool {
	return hv.isActive
}

// GetContainer returns the help view container
func (hv *HelpView) GetContainer() *tview.Flex {
	return hv.container
}
