package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/httptape/httptape/pkg/tape"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recorded transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tape.NewFileStore(tapeDir, newLogger())
		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
