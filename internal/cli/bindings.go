package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/hotkeys"
)

var sxhkdOut bool

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the configured hotkey bindings",
	Long: `Lists the action-to-chord bindings from the configuration. With --sxhkd
the output is an sxhkdrc snippet whose command side triggers this
daemon, ready to paste into ~/.config/sxhkd/sxhkdrc.`,
	RunE: runBindings,
}

func init() {
	bindingsCmd.Flags().BoolVar(&sxhkdOut, "sxhkd", false, "emit an sxhkdrc snippet")
	rootCmd.AddCommand(bindingsCmd)
}

func runBindings(cmd *cobra.Command, args []string) error {
	bindings, err := hotkeys.FromConfig(cfg.Bindings)
	if err != nil {
		return err
	}

	if sxhkdOut {
		fmt.Print(hotkeys.Sxhkd(bindings))
		return nil
	}

	if len(bindings) == 0 {
		fmt.Println("No bindings configured.")
		return nil
	}

	for _, action := range domain.Actions() {
		chord, ok := bindings[action]
		if !ok {
			continue
		}
		fmt.Printf("%-16s %-14s %s\n", action, chord, hotkeys.Describe(action))
	}

	return nil
}
