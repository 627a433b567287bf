package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the store and configuration",
	Long: `Open the store, apply any pending schema migration and report where
the list and settings live.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if configPath != "" {
		cmd.Printf("Config:  %s\n", configPath)
	}

	if storeInfo == nil {
		cmd.Println("Store:   in-memory (changes are not saved)")
	} else {
		cmd.Printf("Store:   %s\n", storeInfo.Path())
		v, err := storeInfo.Version(ctx)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		cmd.Printf("Schema:  version %d\n", v)
	}

	groups, err := items.Grouped(ctx)
	if err != nil {
		return fmt.Errorf("reading items: %w", err)
	}
	cmd.Printf("Items:   %d to buy, %d in cart\n", len(groups.Unpurchased), len(groups.Purchased))
	cmd.Println("OK")
	return nil
}
