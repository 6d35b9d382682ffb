package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/yhkl-dev/cmusic/domain"
)

// screen is one entry of the navigation stack
type screen interface {
	title() string
	root() tview.Primitive
	focus() tview.Primitive
}

type scrollable interface {
	top()
	bottom()
}

// refresher screens rebuild themselves when they become current again
type refresher interface {
	refresh()
}

// entry is one selectable row of a list screen
type entry struct {
	label  string
	detail string
	open   func()
}

// pageInfo locates a page of entries inside a collection
type pageInfo struct {
	offset int
	limit  int
	total  int
}

func (p pageInfo) isLast() bool {
	return p.offset+p.limit >= p.total
}

func (p pageInfo) previous() int {
	return max(0, p.offset-p.limit)
}

func infoOf[T any](page *domain.Page[T], offset int) pageInfo {
	return pageInfo{offset: offset, limit: page.Limit, total: page.Total}
}

// entriesOf maps the items of page to entries
func entriesOf[T any](page *domain.Page[T], offset int, toEntry func(T) entry) ([]entry, pageInfo) {
	entries := make([]entry, len(page.Items))
	for i, item := range page.Items {
		entries[i] = toEntry(item)
	}
	return entries, infoOf(page, offset)
}

// pageLoader fetches the entries of the page starting at offset
type pageLoader func(ctx context.Context, offset int) ([]entry, pageInfo, error)

// remote pages through an API collection
func remote[T any](fetch func(ctx context.Context, offset int) (*domain.Page[T], error), toEntry func(T) entry) pageLoader {
	return func(ctx context.Context, offset int) ([]entry, pageInfo, error) {
		page, err := fetch(ctx, offset)
		if err != nil {
			return nil, pageInfo{}, err
		}
		entries, info := entriesOf(page, offset, toEntry)
		return entries, info, nil
	}
}

// local pages through items already in memory, size entries at a time
func local[T any](items []T, size int, toEntry func(T) entry) pageLoader {
	return func(_ context.Context, offset int) ([]entry, pageInfo, error) {
		end := min(offset+size, len(items))
		entries := make([]entry, 0, max(0, end-offset))
		for _, item := range items[min(offset, end):end] {
			entries = append(entries, toEntry(item))
		}
		return entries, pageInfo{offset: offset, limit: size, total: len(items)}, nil
	}
}

// fromSession pages through a collection cached by the session, read afresh on every load
func fromSession[T any](items func() []T, size int, toEntry func(T) entry) pageLoader {
	return func(ctx context.Context, offset int) ([]entry, pageInfo, error) {
		return local(items(), size, toEntry)(ctx, offset)
	}
}

// aggregated fetches a whole collection once, then pages through it locally
func aggregated[T any](size int, fetch func(ctx context.Context) ([]T, error), toEntry func(T) entry) pageLoader {
	var items []T
	loaded := false
	return func(ctx context.Context, offset int) ([]entry, pageInfo, error) {
		if !loaded {
			all, err := fetch(ctx)
			if err != nil {
				return nil, pageInfo{}, err
			}
			items, loaded = all, true
		}
		return local(items, size, toEntry)(ctx, offset)
	}
}

type pageResult struct {
	entries []entry
	info    pageInfo
}

// listScreen shows one page of entries; ] and [ move between pages
type listScreen struct {
	app     *App
	name    string
	empty   string
	list    *tview.List
	loader  pageLoader
	info    pageInfo
	entries []entry
	loaded  bool
	live    bool // reload on return, for lists read from the session
}

func (a *App) newListScreen(name, empty string, loader pageLoader) *listScreen {
	s := &listScreen{
		app:    a,
		name:   name,
		empty:  empty,
		loader: loader,
		list: tview.NewList().
			ShowSecondaryText(true).
			SetHighlightFullLine(true).
			SetSecondaryTextColor(tcell.ColorGray),
	}
	s.list.SetBorder(true).SetTitle(" " + tview.Escape(name) + " ")
	return s
}

func (s *listScreen) title() string          { return s.name }
func (s *listScreen) root() tview.Primitive  { return s.list }
func (s *listScreen) focus() tview.Primitive { return s.list }

func (s *listScreen) top() {
	s.list.SetCurrentItem(0)
}

func (s *listScreen) bottom() {
	s.list.SetCurrentItem(-1)
}

// load fetches and renders the page at offset
func (s *listScreen) load(offset int) {
	run(s.app, "Loading "+s.name, func(ctx context.Context) (pageResult, error) {
		entries, info, err := s.loader(ctx, offset)
		return pageResult{entries, info}, err
	}, func(r pageResult) {
		s.render(r.entries, r.info)
	})
}

func (s *listScreen) refresh() {
	if s.live && s.loaded {
		s.load(s.info.offset)
	}
}

func (s *listScreen) nextPage() {
	if !s.loaded || s.info.isLast() {
		s.app.setStatus("[yellow]Already on the last page")
		return
	}
	s.load(s.info.offset + s.info.limit)
}

func (s *listScreen) previousPage() {
	if !s.loaded || s.info.offset == 0 {
		s.app.setStatus("[yellow]Already on the first page")
		return
	}
	s.load(s.info.previous())
}

func (s *listScreen) render(entries []entry, info pageInfo) {
	s.entries, s.info, s.loaded = entries, info, true
	s.list.Clear()
	for _, e := range entries {
		s.list.AddItem(tview.Escape(e.label), tview.Escape(e.detail), 0, e.open)
	}
	s.list.SetTitle(fmt.Sprintf(" %s (%s) ", tview.Escape(s.name), FormatPageInfo(info.offset, len(entries), info.total)))
	if len(entries) == 0 {
		s.app.setStatus("[yellow]" + tview.Escape(s.empty))
	}
}

// detailScreen shows a record and the actions available on it
type detailScreen struct {
	name    string
	flex    *tview.Flex
	text    *tview.TextView
	actions *tview.List
	build   func(d *detailScreen)
}

// newDetailScreen calls build to fill in the text and actions, and again on every refresh
func newDetailScreen(name string, build func(d *detailScreen)) *detailScreen {
	d := &detailScreen{
		name:    name,
		text:    tview.NewTextView().SetWrap(true),
		actions: tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true),
		build:   build,
	}
	d.text.SetBorder(true).SetTitle(" " + tview.Escape(name) + " ")
	d.actions.SetBorder(true).SetTitle(" Actions ")
	d.flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(d.text, 0, 1, false).
		AddItem(d.actions, 0, 1, true)
	d.refresh()
	return d
}

func (d *detailScreen) title() string          { return d.name }
func (d *detailScreen) root() tview.Primitive  { return d.flex }
func (d *detailScreen) focus() tview.Primitive { return d.actions }

func (d *detailScreen) top()    { d.actions.SetCurrentItem(0) }
func (d *detailScreen) bottom() { d.actions.SetCurrentItem(-1) }

func (d *detailScreen) refresh() {
	current := d.actions.GetCurrentItem()
	d.actions.Clear()
	d.build(d)
	if current < d.actions.GetItemCount() {
		d.actions.SetCurrentItem(current)
	}
}

func (d *detailScreen) details(text string) {
	d.text.SetText(text)
}

func (d *detailScreen) action(label string, selected func()) {
	d.actions.AddItem(label, "", 0, selected)
}

// formScreen wraps a form; Esc leaves it
type formScreen struct {
	name string
	form *tview.Form
}

func (a *App) newFormScreen(name string, form *tview.Form) *formScreen {
	form.SetBorder(true).SetTitle(" " + tview.Escape(name) + " (ESC to cancel) ")
	form.SetCancelFunc(a.back)
	return &formScreen{name: name, form: form}
}

func (f *formScreen) title() string          { return f.name }
func (f *formScreen) root() tview.Primitive  { return f.form }
func (f *formScreen) focus() tview.Primitive { return f.form }
