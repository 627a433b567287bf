// Package itemform provides the create and edit item form for the TUI.
// One component serves both modes; edit mode resolves its item by ID.
package itemform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// NameRequired is the notice shown when saving without a name.
const NameRequired = "Name is required"

// Mode selects whether the form creates or edits.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

const (
	fieldName = iota
	fieldImage
	fieldCount
)

var errServiceUnavailable = errors.New("item service not available")

// View is the item form.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	statusBar   *status.Bar
	itemService driving.ItemService

	mode    Mode
	item    *domain.Item
	fields  [fieldCount]*input.Field
	focus   int
	loading bool
	saving  bool
	err     error
	width   int
	height  int
}

// NewView creates a new item form.
func NewView(s *styles.Styles, itemService driving.ItemService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.FormHelp())

	v := &View{
		styles:      s,
		keymap:      km,
		statusBar:   bar,
		itemService: itemService,
	}
	v.fields[fieldName] = input.NewField(s, "Name", "e.g. oat milk")
	v.fields[fieldImage] = input.NewField(s, "Image", "file path or URI (optional)")
	return v
}

// Init focuses the name field.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.fields[fieldName].Init(), v.focusField(fieldName))
}

// StartCreate clears the form for a new item.
func (v *View) StartCreate() tea.Cmd {
	v.mode = ModeCreate
	v.item = nil
	v.reset()
	return v.Init()
}

// StartEdit switches to edit mode and loads the item with the given ID.
func (v *View) StartEdit(id int64) tea.Cmd {
	v.mode = ModeEdit
	v.item = nil
	v.reset()
	v.loading = true
	return tea.Batch(v.Init(), v.loadItem(id))
}

func (v *View) reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.err = nil
	v.saving = false
	v.loading = false
	v.statusBar.Clear()
}

func (v *View) loadItem(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.itemService == nil {
			return messages.ItemLoaded{Err: errServiceUnavailable}
		}
		item, err := v.itemService.Get(context.Background(), id)
		return messages.ItemLoaded{Item: item, Err: err}
	}
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ItemLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setErr(msg.Err)
			return v, nil
		}
		v.item = msg.Item
		v.fields[fieldName].SetValue(msg.Item.Name)
		v.fields[fieldImage].SetValue(msg.Item.Image())
		return v, nil

	case messages.ItemSaved:
		v.saving = false
		if msg.Err != nil {
			v.setErr(msg.Err)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewList} }
	case keymap.Matches(k, v.keymap.NextField):
		next := (v.focus + 1) % fieldCount
		if k == "shift+tab" {
			next = (v.focus + fieldCount - 1) % fieldCount
		}
		return v, v.focusField(next)
	case keymap.Matches(k, v.keymap.Save):
		return v, v.save()
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) focusField(i int) tea.Cmd {
	v.focus = i
	for j, f := range v.fields {
		if j != i {
			f.Blur()
		}
	}
	return v.fields[i].Focus()
}

// save validates the inputs and returns the command that persists them.
// A blank name only shows a notice; nothing is sent to the service.
func (v *View) save() tea.Cmd {
	if v.saving || v.loading {
		return nil
	}
	if v.mode == ModeEdit && v.item == nil {
		return nil
	}

	name := strings.TrimSpace(v.fields[fieldName].Value())
	if name == "" {
		v.notice(NameRequired)
		return v.focusField(fieldName)
	}

	image, err := domain.ImageRef(v.fields[fieldImage].Value())
	if err != nil {
		v.setErr(err)
		return nil
	}

	v.saving = true
	v.statusBar.Clear()
	svc := v.itemService

	if v.mode == ModeCreate {
		return func() tea.Msg {
			if svc == nil {
				return messages.ItemSaved{Err: errServiceUnavailable}
			}
			item, err := svc.Create(context.Background(), name, image)
			return messages.ItemSaved{Item: item, Err: err}
		}
	}

	updated := v.item.Clone()
	updated.Name = name
	updated.ImageURL = image
	return func() tea.Msg {
		if svc == nil {
			return messages.ItemSaved{Err: errServiceUnavailable}
		}
		err := svc.Update(context.Background(), updated)
		return messages.ItemSaved{Item: &updated, Err: err}
	}
}

func (v *View) notice(text string) {
	v.statusBar.SetState(status.StateNotice)
	v.statusBar.SetMessage(text)
}

func (v *View) setErr(err error) {
	v.err = err
	if errors.Is(err, domain.ErrValidationRejected) {
		v.notice(NameRequired)
		return
	}
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	title := "New item"
	if v.mode == ModeEdit {
		title = "Edit item"
		if v.item != nil {
			title = fmt.Sprintf("Edit item #%d", v.item.ID)
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n\n")
	} else {
		for _, f := range v.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
		if v.mode == ModeEdit && v.item != nil && v.item.Purchased {
			b.WriteString(v.styles.Muted.Render("Already in the cart."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.statusBar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusBar.SetWidth(width)
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Mode returns the current form mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Item returns the item being edited, or nil.
func (v *View) Item() *domain.Item {
	return v.item
}

// Name returns the current name input.
func (v *View) Name() string {
	return v.fields[fieldName].Value()
}

// ImageInput returns the current image input.
func (v *View) ImageInput() string {
	return v.fields[fieldImage].Value()
}

// FocusedField returns the index of the focused input (0 name, 1 image).
func (v *View) FocusedField() int {
	return v.focus
}

// Notice returns the transient notice, if any.
func (v *View) Notice() string {
	if v.statusBar.State() != status.StateNotice {
		return ""
	}
	return v.statusBar.Message()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
