package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/basket-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

func newTestApp(t *testing.T, items *MockItemService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Items: items, Settings: &MockSettingsService{}})
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Items: &MockItemService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewList, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingItemService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Items: &MockItemService{}})
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(&Ports{Items: &MockItemService{}})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_ItemsLoaded_ShowsList(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	app.Update(messages.ItemsLoaded{Groups: domain.GroupItems([]domain.Item{
		{ID: 1, Name: "milk"},
		{ID: 2, Name: "bread", Purchased: true},
	})})

	view := app.View()
	assert.Contains(t, view, "milk")
	assert.Contains(t, view, "bread")
	assert.Equal(t, 2, app.ListView().Groups().Len())
}

func TestApp_ItemsLoaded_Error(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	app.Update(messages.ItemsLoaded{Err: domain.ErrStoreUnavailable})

	assert.ErrorIs(t, app.Err(), domain.ErrStoreUnavailable)
}

func TestApp_ViewChanged_Create(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewCreate})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewCreate, app.CurrentView())
	assert.Contains(t, app.View(), "New item")
}

func TestApp_ItemSelected_OpensEdit(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(messages.ItemSelected{ID: 4})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewEdit, app.CurrentView())

	app.Update(messages.ItemLoaded{Item: &domain.Item{ID: 4, Name: "tea"}})
	assert.Equal(t, "tea", app.FormView().Name())
	assert.Contains(t, app.View(), "Edit item #4")
}

func TestApp_ItemSaved_ReturnsToList(t *testing.T) {
	app := newTestApp(t, &MockItemService{})
	app.Update(messages.ViewChanged{View: messages.ViewCreate})

	_, cmd := app.Update(messages.ItemSaved{Item: &domain.Item{ID: 1, Name: "milk"}})

	assert.NotNil(t, cmd)
	assert.Equal(t, messages.ViewList, app.CurrentView())
	assert.True(t, app.ListView().Loading())
}

func TestApp_ItemSaved_ErrorStaysOnForm(t *testing.T) {
	app := newTestApp(t, &MockItemService{})
	app.Update(messages.ViewChanged{View: messages.ViewCreate})

	app.Update(messages.ItemSaved{Err: domain.ErrStoreUnavailable})

	assert.Equal(t, messages.ViewCreate, app.CurrentView())
	assert.ErrorIs(t, app.Err(), domain.ErrStoreUnavailable)
}

func TestApp_KeyMsg_CtrlC(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_KeyMsg_ForwardedToList(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewCreate}, cmd())
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t, &MockItemService{})
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	view := app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "toggle")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewList, app.CurrentView())
}

func TestApp_SettingsView(t *testing.T) {
	app := newTestApp(t, &MockItemService{})

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSettings})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewSettings, app.CurrentView())
	assert.Contains(t, app.View(), "Show image markers")
}

func TestApp_SettingsLoaded_UpdatesList(t *testing.T) {
	app := newTestApp(t, &MockItemService{})
	image := "file:///milk.png"
	app.Update(messages.ItemsLoaded{Groups: domain.GroupItems([]domain.Item{
		{ID: 1, Name: "milk", ImageURL: &image},
	})})
	require.Contains(t, app.View(), "[img]")

	settings := domain.DefaultAppSettings()
	settings.UI.ShowImages = false
	app.Update(messages.SettingsLoaded{Settings: &settings})

	assert.NotContains(t, app.View(), "[img]")
}

func TestApp_Watcher_ReloadsOnChange(t *testing.T) {
	changes := make(chan struct{}, 1)
	app, err := NewApp(&Ports{
		Items: &MockItemService{},
		Watcher: &MockWatcher{WatchFunc: func(ctx context.Context) (<-chan struct{}, error) {
			return changes, nil
		}},
	})
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	started := app.startWatcher()()
	_, wait := app.Update(started)
	require.NotNil(t, wait)

	changes <- struct{}{}
	msg := wait()
	assert.Equal(t, messages.StoreChanged{}, msg)

	_, cmd := app.Update(msg)
	assert.NotNil(t, cmd)
	assert.True(t, app.ListView().Loading())

	close(changes)
	assert.Nil(t, waitForChange(changes)())
}

func TestApp_Watcher_Error(t *testing.T) {
	app, err := NewApp(&Ports{
		Items: &MockItemService{},
		Watcher: &MockWatcher{WatchFunc: func(ctx context.Context) (<-chan struct{}, error) {
			return nil, errors.New("no inotify")
		}},
	})
	require.NoError(t, err)
	app.SetDimensions(80, 24)

	app.Update(app.startWatcher()())

	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "watching store")
}
