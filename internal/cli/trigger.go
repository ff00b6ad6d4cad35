package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/trigger"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger <action>",
	Short: "Send an action to the running daemon",
	Long: `Sends one action over the daemon's trigger socket. This is the command
side of a hotkey binding: bind a key to "keytune trigger nextTrack" and
the daemon does the rest.

Actions: ` + strings.Join(actionNames(), ", ") + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrigger,
}

func init() {
	rootCmd.AddCommand(triggerCmd)
}

func runTrigger(cmd *cobra.Command, args []string) error {
	action := args[0]
	if !domain.ValidAction(action) {
		return fmt.Errorf("unknown action %q (valid: %s)", action, strings.Join(actionNames(), ", "))
	}

	client := trigger.NewClient(cfg.Socket.ResolvePath())
	resp, err := client.Send(action, nil)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errors.New(resp.Error)
	}

	// showTrack is the one action whose result belongs on stdout too.
	if action == string(domain.ActionShowTrack) && len(resp.Data) > 0 {
		var track trigger.TrackResponse
		if err := json.Unmarshal(resp.Data, &track); err == nil && track.Line != "" {
			fmt.Println(track.Line)
		}
	}

	return nil
}

func actionNames() []string {
	actions := domain.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
