package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/httptape/httptape/pkg/tape"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded transaction as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tape.NewFileStore(tapeDir, newLogger())
		tx, err := store.Get(args[0])
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
