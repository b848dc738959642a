package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/httptape/httptape/pkg/tape"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show tape directory usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tape.NewFileStore(tapeDir, newLogger())
		stats, err := store.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("transactions: %d\n", stats.Count)
		fmt.Printf("total size:   %d bytes\n", stats.TotalBytes)
		if !stats.Oldest.IsZero() {
			fmt.Printf("oldest:       %s\n", stats.Oldest.Format("2006-01-02 15:04:05"))
			fmt.Printf("newest:       %s\n", stats.Newest.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
