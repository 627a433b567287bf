// Package cli provides the cobra command tree for basket.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/basket-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Options carries the global flags into service construction.
type Options struct {
	DataDir   string
	Ephemeral bool
}

// StoreInfo describes the backing store for diagnostics.
type StoreInfo interface {
	Path() string
	Version(ctx context.Context) (int, error)
}

// Services holds the wired core services used by commands.
type Services struct {
	Items    driving.ItemService
	Settings driving.SettingsService
	Watcher  driven.ChangeWatcher

	// Store is nil for the in-memory store.
	Store StoreInfo

	// ConfigPath is where settings are persisted.
	ConfigPath string

	// Close releases the store. May be nil.
	Close func() error
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	itemService     driving.ItemService
	settingsService driving.SettingsService
	changeWatcher   driven.ChangeWatcher
	storeInfo       StoreInfo
	configPath      string

	bootstrap    Bootstrap
	closeService func() error

	verbose   bool
	dataDir   string
	ephemeral bool
)

// stdinIsTerminal reports whether stdin is interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// skipServices marks commands that run without core services.
const skipServices = "basket/skip-services"

var rootCmd = &cobra.Command{
	Use:   "basket",
	Short: "A shopping list for the terminal",
	Long: `basket keeps a shopping list in a local SQLite database.

Run without arguments on a terminal to open the interactive UI, or use the
item subcommands for scripting.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	RunE:              runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the database (default ~/.basket/data)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the list in memory only")
}

// Execute runs the root command and releases the store afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := teardownServices(); err == nil {
		err = cerr
	}
	return err
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services after flag parsing.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs already-built services.
func SetServices(s *Services) {
	if s == nil {
		itemService, settingsService, changeWatcher, storeInfo = nil, nil, nil, nil
		configPath, closeService = "", nil
		return
	}
	itemService = s.Items
	settingsService = s.Settings
	changeWatcher = s.Watcher
	storeInfo = s.Store
	configPath = s.ConfigPath
	closeService = s.Close
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	svc, err := bootstrap(cmd.Context(), Options{DataDir: dataDir, Ephemeral: ephemeral})
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(svc)
	return nil
}

func teardownServices() error {
	if closeService == nil {
		return nil
	}
	err := closeService()
	closeService = nil
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && stdinIsTerminal() {
		return runTUI(cmd, args)
	}
	return cmd.Help()
}

func requireItems() (driving.ItemService, error) {
	if itemService == nil {
		return nil, errors.New("item service not configured")
	}
	return itemService, nil
}
