package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/yhkl-dev/cmusic/config"
	"github.com/yhkl-dev/cmusic/library"
	"github.com/yhkl-dev/cmusic/spotify"
)

const overlayPage = "overlay"

// App represents the TUI application
type App struct {
	tviewApp *tview.Application
	cfg      *config.Config
	session  *library.Session
	library  library.Library
	ctx      context.Context
	cancel   context.CancelFunc
	logger   zerolog.Logger
	pageSize int

	rootFlex  *tview.Flex
	pages     *tview.Pages
	header    *tview.TextView
	statusBar *tview.TextView
	helpView  *HelpView
	keys      *KeyBindingManager

	stack   []screen
	overlay bool // a modal or the help panel is shown over the current screen

	busy    atomic.Bool
	fatalMu sync.Mutex
	fatal   error
}

// NewApp creates the TUI over a connected session
func NewApp(ctx context.Context, cfg *config.Config, session *library.Session, logger zerolog.Logger) *App {
	ctx, cancel := context.WithCancel(ctx)
	return &App{
		tviewApp: tview.NewApplication(),
		cfg:      cfg,
		session:  session,
		library:  session.Library(),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		pageSize: cfg.UI.PageSize,
	}
}

// Run starts the application and blocks until it stops. It returns the fatal
// error that stopped it, if any.
func (a *App) Run() error {
	a.createLayout()
	a.setupKeyBindings()
	a.push(a.homeScreen())

	a.logger.Info().Str("user", a.session.User().Name()).Msg("starting cmusic")
	err := a.tviewApp.Run()
	a.cancel()
	if err != nil {
		return err
	}
	return a.fatalError()
}

// Stop stops the application
func (a *App) Stop() {
	a.cancel()
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

func (a *App) fatalError() error {
	a.fatalMu.Lock()
	defer a.fatalMu.Unlock()
	return a.fatal
}

// createLayout sets up the header, the screen stack and the status bar
func (a *App) createLayout() {
	a.header = tview.NewTextView().
		SetDynamicColors(true)
	a.header.SetBorder(false)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(true)
	a.statusBar.SetBorder(false)

	a.pages = tview.NewPages()
	a.helpView = NewHelpView(a)

	a.rootFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.tviewApp.SetRoot(a.rootFlex, true)
}

// setupKeyBindings registers the global keys and installs the input capture
func (a *App) setupKeyBindings() {
	a.keys = NewKeyBindingManager()
	a.keys.RegisterKeyBinding(KeyAction{name: "search", handler: a.showSearch}, nil, []rune{'/'})
	a.keys.RegisterKeyBinding(KeyAction{name: "help", handler: a.showHelp}, nil, []rune{'?'})
	a.keys.RegisterKeyBinding(KeyAction{name: "back", handler: a.back}, []tcell.Key{tcell.KeyEscape}, nil)
	a.keys.RegisterKeyBinding(KeyAction{name: "quit", handler: a.Stop}, []tcell.Key{tcell.KeyCtrlC}, []rune{'q'})
	a.keys.RegisterKeyBinding(KeyAction{name: "goEnd", handler: a.goEnd}, []tcell.Key{tcell.KeyEnd}, []rune{'G'})
	a.keys.RegisterSequence(KeyAction{name: "goStart", handler: a.goStart}, "gg")
	a.keys.RegisterKeyBinding(KeyAction{name: "nextPage", handler: a.nextPage}, []tcell.Key{tcell.KeyPgDn}, []rune{']'})
	a.keys.RegisterKeyBinding(KeyAction{name: "previousPage", handler: a.previousPage}, []tcell.Key{tcell.KeyPgUp}, []rune{'['})

	a.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Handle overlays first
		if a.helpView.IsActive() {
			if event.Key() == tcell.KeyEscape || event.Rune() == '?' {
				a.helpView.Close()
				return nil
			}
			return event
		}
		if a.overlay {
			return event
		}
		// Forms receive every key except Esc and Ctrl+C
		if _, ok := a.current().(*formScreen); ok {
			if event.Key() != tcell.KeyEscape && event.Key() != tcell.KeyCtrlC {
				return event
			}
		}
		if a.keys.HandleKey(event) {
			return nil
		}
		return event
	})
}

// current returns the screen on top of the stack
func (a *App) current() screen {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func pageName(depth int) string {
	return fmt.Sprintf("screen-%d", depth)
}

// push shows s above the current screen
func (a *App) push(s screen) {
	a.stack = append(a.stack, s)
	a.pages.AddAndSwitchToPage(pageName(len(a.stack)), s.root(), true)
	a.tviewApp.SetFocus(s.focus())
	a.updateHeader()
	if l, ok := s.(*listScreen); ok {
		l.load(0)
	}
}

// replace swaps the current screen for s
func (a *App) replace(s screen) {
	if len(a.stack) > 1 {
		a.pages.RemovePage(pageName(len(a.stack)))
		a.stack = a.stack[:len(a.stack)-1]
	}
	a.push(s)
}

// back returns to the previous screen; the home screen stays
func (a *App) back() {
	if len(a.stack) <= 1 {
		return
	}
	a.pages.RemovePage(pageName(len(a.stack)))
	a.stack = a.stack[:len(a.stack)-1]
	s := a.current()
	a.pages.SwitchToPage(pageName(len(a.stack)))
	a.tviewApp.SetFocus(s.focus())
	a.updateHeader()
	if r, ok := s.(refresher); ok {
		r.refresh()
	}
}

// updateHeader renders the breadcrumb of open screens
func (a *App) updateHeader() {
	trail := ""
	for i, s := range a.stack {
		if i > 0 {
			trail += " [darkgray]>[-] "
		}
		trail += tview.Escape(s.title())
	}
	a.header.SetText(fmt.Sprintf("[yellow::b]cmusic[-:-:-] [darkgray]%s |[-] %s",
		tview.Escape(a.session.User().Name()), trail))
}

func (a *App) goStart() {
	if s, ok := a.current().(scrollable); ok {
		s.top()
	}
}

func (a *App) goEnd() {
	if s, ok := a.current().(scrollable); ok {
		s.bottom()
	}
}

func (a *App) nextPage() {
	if s, ok := a.current().(*listScreen); ok {
		s.nextPage()
	}
}

func (a *App) previousPage() {
	if s, ok := a.current().(*listScreen); ok {
		s.previousPage()
	}
}

// showOverlay places p centered above the current screen
func (a *App) showOverlay(p tview.Primitive, width, height int) {
	modal := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexColumn).
			AddItem(nil, 0, 1, false).
			AddItem(p, width, 0, true).
			AddItem(nil, 0, 1, false), height, 0, true).
		AddItem(nil, 0, 1, false)

	a.overlay = true
	a.pages.AddPage(overlayPage, modal, true, true)
	a.tviewApp.SetFocus(p)
}

// closeOverlay removes the overlay and gives focus back to the current screen
func (a *App) closeOverlay() {
	a.overlay = false
	a.pages.RemovePage(overlayPage)
	if s := a.current(); s != nil {
		a.tviewApp.SetFocus(s.focus())
	}
}

// confirm asks a yes/no question; onYes runs only on "Yes"
func (a *App) confirm(text string, onYes func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(_ int, label string) {
			a.closeOverlay()
			if label == "Yes" {
				onYes()
			}
		})
	a.overlay = true
	a.pages.AddPage(overlayPage, modal, false, true)
	a.tviewApp.SetFocus(modal)
}

func (a *App) showHelp() {
	a.showOverlay(a.helpView.GetContainer(), 64, 24)
	a.helpView.Show()
}

// setStatus shows text in the status bar; it must run on the UI goroutine
func (a *App) setStatus(text string) {
	a.statusBar.SetText(text)
}

func (a *App) notify(text string) {
	a.setStatus("[green]" + tview.Escape(text))
}

// fail reports err. API errors stay in the status bar; anything else stops the application.
func (a *App) fail(what string, err error) {
	switch {
	case spotify.IsRecoverable(err):
		a.logger.Warn().Err(err).Str("action", what).Msg("request failed")
		a.setStatus("[red]" + tview.Escape(fmt.Sprintf("%s failed: %v", what, err)))
	case errors.Is(err, context.Canceled):
	default:
		a.logger.Error().Err(err).Str("action", what).Msg("fatal error")
		a.fatalMu.Lock()
		a.fatal = fmt.Errorf("%s: %w", what, err)
		a.fatalMu.Unlock()
		a.Stop()
	}
}

// run executes fetch off the UI goroutine and hands its result to show on it.
// Only one request is in flight; a second action while busy is refused.
func run[T any](a *App, what string, fetch func(ctx context.Context) (T, error), show func(T)) {
	if !a.busy.CompareAndSwap(false, true) {
		a.setStatus("[yellow]Busy, please wait...")
		return
	}
	a.setStatus("[yellow]" + tview.Escape(what) + "...")

	go func() {
		start := time.Now()
		v, err := fetch(a.ctx)
		a.busy.Store(false)
		a.logger.Debug().Str("action", what).Dur("duration", time.Since(start)).Err(err).Msg("action finished")

		a.tviewApp.QueueUpdateDraw(func() {
			if err != nil {
				a.fail(what, err)
				return
			}
			a.setStatus("")
			show(v)
		})
	}()
}

// do is run for actions without a result
func do(a *App, what string, action func(ctx context.Context) error, done func()) {
	run(a, what, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, action(ctx)
	}, func(struct{}) { done() })
}
