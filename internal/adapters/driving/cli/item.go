package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
)

var (
	itemImage      string
	itemName       string
	itemClearImage bool
	itemRaw        bool
	itemJSON       bool
	itemYes        bool
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage shopping list items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an item to the list",
	Long: `Add an item to the list.

The image may be a URI or a filesystem path; paths are stored as file:// URIs.

Examples:
  basket item add milk
  basket item add "rye bread" --image ~/photos/rye.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runItemAdd,
}

var itemListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List items",
	Long: `List items grouped as shown in the interactive UI: items still to buy
sorted by name, then items in the cart, newest first.

Use --raw for the store order (unpurchased first, then by id).`,
	Args: cobra.NoArgs,
	RunE: runItemList,
}

var itemGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemGet,
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the name or image of an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemEdit,
}

var itemToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Move an item in or out of the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemToggle,
}

var itemRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an item",
	Long: `Remove an item from the list. Removing an item that does not exist
is not an error.

When run on a terminal and confirm_delete is enabled, asks before removing.`,
	Args: cobra.ExactArgs(1),
	RunE: runItemRemove,
}

func init() {
	itemAddCmd.Flags().StringVarP(&itemImage, "image", "i", "", "image URI or file path")

	itemListCmd.Flags().BoolVar(&itemRaw, "raw", false, "use store order instead of grouping")
	itemListCmd.Flags().BoolVar(&itemJSON, "json", false, "output as JSON")
	itemGetCmd.Flags().BoolVar(&itemJSON, "json", false, "output as JSON")

	itemEditCmd.Flags().StringVarP(&itemName, "name", "n", "", "new name")
	itemEditCmd.Flags().StringVarP(&itemImage, "image", "i", "", "new image URI or file path")
	itemEditCmd.Flags().BoolVar(&itemClearImage, "clear-image", false, "remove the image")
	itemEditCmd.MarkFlagsMutuallyExclusive("image", "clear-image")

	itemRemoveCmd.Flags().BoolVarP(&itemYes, "yes", "y", false, "do not ask for confirmation")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemGetCmd)
	itemCmd.AddCommand(itemEditCmd)
	itemCmd.AddCommand(itemToggleCmd)
	itemCmd.AddCommand(itemRemoveCmd)
	rootCmd.AddCommand(itemCmd)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}

	image, err := domain.ImageRef(itemImage)
	if err != nil {
		return err
	}

	item, err := items.Create(cmd.Context(), args[0], image)
	if err != nil {
		return fmt.Errorf("adding item: %w", err)
	}

	cmd.Printf("Added %s\n", item)
	return nil
}

func runItemList(cmd *cobra.Command, _ []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}

	if itemRaw {
		all, err := items.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing items: %w", err)
		}
		if itemJSON {
			return printJSON(cmd, all)
		}
		for _, item := range all {
			cmd.Println(formatItem(item))
		}
		return nil
	}

	groups, err := items.Grouped(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	if itemJSON {
		return printJSON(cmd, groups.Ordered())
	}

	if groups.Empty() {
		cmd.Println("Your list is empty. Add something with 'basket item add <name>'.")
		return nil
	}

	cmd.Printf("To buy (%d)\n", len(groups.Unpurchased))
	for _, item := range groups.Unpurchased {
		cmd.Printf("  %s\n", formatItem(item))
	}
	if len(groups.Purchased) > 0 {
		cmd.Println()
		cmd.Printf("In cart (%d)\n", len(groups.Purchased))
		for _, item := range groups.Purchased {
			cmd.Printf("  %s\n", formatItem(item))
		}
	}
	return nil
}

func runItemGet(cmd *cobra.Command, args []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := items.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("getting item: %w", err)
	}
	if itemJSON {
		return printJSON(cmd, item)
	}

	cmd.Printf("ID:        %d\n", item.ID)
	cmd.Printf("Name:      %s\n", item.Name)
	cmd.Printf("Purchased: %s\n", yesNo(item.Purchased))
	if item.HasImage() {
		cmd.Printf("Image:     %s\n", item.Image())
	}
	return nil
}

func runItemEdit(cmd *cobra.Command, args []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	nameSet := cmd.Flags().Changed("name")
	imageSet := cmd.Flags().Changed("image")
	if !nameSet && !imageSet && !itemClearImage {
		return errors.New("nothing to change: use --name, --image or --clear-image")
	}

	item, err := items.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("getting item: %w", err)
	}

	if nameSet {
		item.Name = itemName
	}
	switch {
	case itemClearImage:
		item.ImageURL = nil
	case imageSet:
		image, err := domain.ImageRef(itemImage)
		if err != nil {
			return err
		}
		item.ImageURL = image
	}

	if err := items.Update(cmd.Context(), *item); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	cmd.Printf("Updated %s\n", item)
	return nil
}

func runItemToggle(cmd *cobra.Command, args []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	item, err := items.TogglePurchased(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("toggling item: %w", err)
	}

	if item.Purchased {
		cmd.Printf("In cart: %s\n", item.Name)
	} else {
		cmd.Printf("Back on the list: %s\n", item.Name)
	}
	return nil
}

func runItemRemove(cmd *cobra.Command, args []string) error {
	items, err := requireItems()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if !itemYes && shouldConfirmDelete() {
		label := fmt.Sprintf("#%d", id)
		if item, err := items.Get(cmd.Context(), id); err == nil {
			label = fmt.Sprintf("#%d %s", item.ID, item.Name)
		}
		cmd.Printf("Remove %s? [y/N]: ", label)
		if !confirmed(bufio.NewReader(cmd.InOrStdin())) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := items.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("removing item: %w", err)
	}

	cmd.Printf("Removed item %d\n", id)
	return nil
}

// shouldConfirmDelete asks only on a terminal and when the setting is on.
func shouldConfirmDelete() bool {
	if !stdinIsTerminal() {
		return false
	}
	if settingsService == nil {
		return true
	}
	settings, err := settingsService.Get()
	if err != nil {
		return true
	}
	return settings.UI.ConfirmDelete
}

func confirmed(reader *bufio.Reader) bool {
	answer := strings.ToLower(readLine(reader))
	return answer == "y" || answer == "yes"
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func formatItem(item domain.Item) string {
	mark := "[ ]"
	if item.Purchased {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %4d  %s", mark, item.ID, item.Name)
	if item.HasImage() {
		line += "  (" + item.Image() + ")"
	}
	return line
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
