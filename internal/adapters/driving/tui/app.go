package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/views/itemform"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/views/itemlist"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/views/settings"
)

// watchStarted carries the change channel once the watcher is running.
type watchStarted struct {
	changes <-chan struct{}
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	listView     *itemlist.View
	formView     *itemform.View
	settingsView *settings.View

	// changes is nil until the watcher has started.
	changes <-chan struct{}

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	h := help.New()
	h.ShowAll = true

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       keymap.DefaultKeyMap(),
		help:         h,
		listView:     itemlist.NewView(s, ports.Items),
		formView:     itemform.NewView(s, ports.Items),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewList,
	}, nil
}

// WithContext sets the context for the app. Cancelling it stops the
// change watcher.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("basket"),
		a.listView.Init(),
	}
	if a.ports.Settings != nil {
		cmds = append(cmds, a.settingsView.Init())
	}
	if a.ports.Watcher != nil {
		cmds = append(cmds, a.startWatcher())
	}
	return tea.Batch(cmds...)
}

func (a *App) startWatcher() tea.Cmd {
	ctx, w := a.ctx, a.ports.Watcher
	return func() tea.Msg {
		changes, err := w.Watch(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching store: %w", err)}
		}
		return watchStarted{changes: changes}
	}
}

// waitForChange blocks until the store changes. A closed channel ends the loop.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.StoreChanged{}
	}
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardToCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ItemSelected:
		a.currentView = messages.ViewEdit
		return a, a.formView.StartEdit(msg.ID)

	case messages.ItemLoaded:
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.ItemSaved:
		a.formView, cmd = a.formView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.currentView = messages.ViewList
		return a, tea.Batch(cmd, a.listView.Reload())

	case messages.ItemsLoaded, messages.ItemToggled, messages.ItemDeleted:
		a.listView, cmd = a.listView.Update(msg)
		a.err = a.listView.Err()
		return a, cmd

	case watchStarted:
		a.changes = msg.changes
		return a, waitForChange(a.changes)

	case messages.StoreChanged:
		a.listView, cmd = a.listView.Update(msg)
		return a, tea.Batch(cmd, waitForChange(a.changes))

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.listView.SetShowImages(msg.Settings.UI.ShowImages)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewList {
			a.listView, cmd = a.listView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forwardToCurrent(msg)
}

// switchTo activates a view and returns its initialisation command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewCreate:
		return a.formView.StartCreate()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewList, messages.ViewEdit, messages.ViewHelp:
	}
	return nil
}

func (a *App) forwardToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewList:
		a.listView, cmd = a.listView.Update(msg)
	case messages.ViewCreate, messages.ViewEdit:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok {
			if keymap.Matches(km.String(), a.keymap.Back) || keymap.Matches(km.String(), a.keymap.Help) {
				a.currentView = messages.ViewList
			}
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCreate, messages.ViewEdit:
		return a.formView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewList:
	}
	return a.listView.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.help.View(a.keymap))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("[esc] back to list"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// ListView returns the item list view.
func (a *App) ListView() *itemlist.View {
	return a.listView
}

// FormView returns the item form view.
func (a *App) FormView() *itemform.View {
	return a.formView
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.listView.SetDimensions(width, height)
	a.formView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
