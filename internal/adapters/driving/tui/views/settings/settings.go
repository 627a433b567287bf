// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// Option identifies a toggleable setting.
type Option int

const (
	OptionShowImages Option = iota
	OptionConfirmDelete
	optionCount
)

// String returns the option label.
func (o Option) String() string {
	switch o {
	case OptionShowImages:
		return "Show image markers"
	case OptionConfirmDelete:
		return "Confirm before delete (CLI)"
	case optionCount:
	}
	return "unknown"
}

// Key constants for key handling.
const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keySpace = " "
)

var errServiceUnavailable = errors.New("settings service not available")

// View is the settings view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	selected int

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errServiceUnavailable}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewList}
		}
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < int(optionCount)-1 {
			v.selected++
		}
	case keyEnter, keySpace:
		return v, v.toggle(Option(v.selected))
	}
	return v, nil
}

// toggle flips the selected option and persists it.
func (v *View) toggle(opt Option) tea.Cmd {
	if v.settings == nil {
		return nil
	}
	current := v.settings.UI
	svc := v.settingsService

	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errServiceUnavailable}
		}
		var err error
		switch opt {
		case OptionShowImages:
			err = svc.SetShowImages(!current.ShowImages)
		case OptionConfirmDelete:
			err = svc.SetConfirmDelete(!current.ConfirmDelete)
		case optionCount:
		}
		return messages.SettingsSaved{Err: err}
	}
}

func (v *View) enabled(opt Option) bool {
	switch opt {
	case OptionShowImages:
		return v.settings.UI.ShowImages
	case OptionConfirmDelete:
		return v.settings.UI.ConfirmDelete
	case optionCount:
	}
	return false
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i := Option(0); i < optionCount; i++ {
		mark := "[ ]"
		if v.enabled(i) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, i.String())
		if int(i) == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	dataDir := v.settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "default (~/.basket/data)"
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Data:"))
	b.WriteString(v.styles.Muted.Render(dataDir))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Change with: basket settings set storage.data_dir <dir>"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Help.Render("up/down: select | space/enter: toggle | esc: back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings, or nil.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the selected option.
func (v *View) Selected() Option {
	return Option(v.selected)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
