// Package itemlist provides the shopping list view: the grouped list of
// items with toggle, edit, add and delete actions.
package itemlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
)

// EmptyMessage is shown when the list has no items.
const EmptyMessage = "Your list is empty. Press [a] to add an item."

// errServiceUnavailable is reported when the view has no item service.
var errServiceUnavailable = errors.New("item service not available")

// View is the shopping list view.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	statusBar   *status.Bar
	itemService driving.ItemService

	groups     domain.ItemGroups
	rows       []domain.Item
	selected   int
	showImages bool
	width      int
	height     int
	ready      bool
	loading    bool
	err        error
}

// NewView creates a new list view.
func NewView(s *styles.Styles, itemService driving.ItemService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.ListHelp())

	return &View{
		styles:      s,
		keymap:      km,
		statusBar:   bar,
		itemService: itemService,
		showImages:  true,
	}
}

// Init initialises the view and loads items.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload returns a command that reloads the list from the service.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	v.statusBar.SetState(status.StateLoading)
	return v.loadItems()
}

func (v *View) loadItems() tea.Cmd {
	return func() tea.Msg {
		if v.itemService == nil {
			return messages.ItemsLoaded{Err: errServiceUnavailable}
		}
		groups, err := v.itemService.Grouped(context.Background())
		return messages.ItemsLoaded{Groups: groups, Err: err}
	}
}

// Update handles messages for the list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ItemsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.setErr(msg.Err)
			return v, nil
		}
		v.setGroups(msg.Groups)
		v.err = nil
		v.statusBar.Clear()
		return v, nil

	case messages.ItemToggled:
		if msg.Err != nil {
			v.setErr(msg.Err)
			return v, nil
		}
		return v, v.Reload()

	case messages.ItemDeleted:
		if msg.Err != nil {
			v.setErr(msg.Err)
			return v, nil
		}
		return v, v.Reload()

	case messages.StoreChanged:
		return v, v.Reload()

	case messages.ErrorOccurred:
		v.setErr(msg.Err)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.rows)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if item, ok := v.current(); ok {
			return v, v.toggleItem(item.ID)
		}
	case keymap.Matches(k, v.keymap.Edit):
		if item, ok := v.current(); ok {
			id := item.ID
			return v, func() tea.Msg { return messages.ItemSelected{ID: id} }
		}
	case keymap.Matches(k, v.keymap.Add):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewCreate} }
	case keymap.Matches(k, v.keymap.Delete):
		if item, ok := v.current(); ok {
			return v, v.deleteItem(item.ID)
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Reload()
	case keymap.Matches(k, v.keymap.Settings):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSettings} }
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

// toggleItem returns a command that flips the purchased flag of an item.
func (v *View) toggleItem(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.itemService == nil {
			return messages.ItemToggled{Err: errServiceUnavailable}
		}
		item, err := v.itemService.TogglePurchased(context.Background(), id)
		return messages.ItemToggled{Item: item, Err: err}
	}
}

// deleteItem returns a command that deletes an item.
func (v *View) deleteItem(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.itemService == nil {
			return messages.ItemDeleted{ID: id, Err: errServiceUnavailable}
		}
		err := v.itemService.Delete(context.Background(), id)
		return messages.ItemDeleted{ID: id, Err: err}
	}
}

// setGroups replaces the list and keeps the cursor on the same item when it
// is still present.
func (v *View) setGroups(groups domain.ItemGroups) {
	var prevID int64
	if item, ok := v.current(); ok {
		prevID = item.ID
	}

	v.groups = groups
	v.rows = groups.Ordered()

	for i := range v.rows {
		if v.rows[i].ID == prevID {
			v.selected = i
			break
		}
	}
	if v.selected >= len(v.rows) {
		v.selected = len(v.rows) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	v.statusBar.SetCounts(groups.Len(), len(groups.Unpurchased))
}

func (v *View) setErr(err error) {
	v.err = err
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

func (v *View) current() (domain.Item, bool) {
	if v.selected < 0 || v.selected >= len(v.rows) {
		return domain.Item{}, false
	}
	return v.rows[v.selected], true
}

// View renders the list view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Shopping list"))
	b.WriteString("\n\n")

	switch {
	case v.loading && len(v.rows) == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil && len(v.rows) == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.groups.Empty():
		b.WriteString(v.styles.Muted.Render(EmptyMessage))
		b.WriteString("\n")
	default:
		v.renderGroup(&b, "To buy", v.groups.Unpurchased, 0)
		v.renderGroup(&b, "In cart", v.groups.Purchased, len(v.groups.Unpurchased))
	}

	b.WriteString("\n")
	b.WriteString(v.statusBar.View())
	return b.String()
}

// renderGroup renders one heading and its rows. offset is the index of the
// group's first row in v.rows.
func (v *View) renderGroup(b *strings.Builder, heading string, items []domain.Item, offset int) {
	if len(items) == 0 {
		return
	}
	b.WriteString(v.styles.Heading.Render(fmt.Sprintf("%s (%d)", heading, len(items))))
	b.WriteString("\n")
	for i := range items {
		b.WriteString(v.renderItem(offset+i, &items[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// renderItem renders a single item line.
func (v *View) renderItem(index int, item *domain.Item) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	mark := "[ ]"
	if item.Purchased {
		mark = "[x]"
	}

	name := item.Name
	maxNameLen := v.width - 16
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen-3]) + "..."
	}

	suffix := ""
	if v.showImages && item.HasImage() {
		suffix = " [img]"
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s %s%s", indicator, mark, name, suffix))
	}
	nameStyle := v.styles.Normal
	if item.Purchased {
		nameStyle = v.styles.Purchased
	}
	return v.styles.Normal.Render(indicator+mark+" ") +
		nameStyle.Render(name) +
		v.styles.Muted.Render(suffix)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusBar.SetWidth(width)
}

// SetShowImages toggles the image marker.
func (v *View) SetShowImages(show bool) {
	v.showImages = show
}

// Groups returns the current grouped list.
func (v *View) Groups() domain.ItemGroups {
	return v.groups
}

// Rows returns the items in display order.
func (v *View) Rows() []domain.Item {
	return v.rows
}

// SelectedIndex returns the index of the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Loading reports whether a reload is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
