package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/httptape/httptape/pkg/tape"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded transactions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := tape.NewFileStore(tapeDir, newLogger())
		txs, err := store.List()
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Println("no transactions recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tMETHOD\tURL\tSTATUS\tRECORDED")
		for _, tx := range txs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				tx.ID, tx.Request.Method, tx.Request.URL,
				tx.Response.Status, tx.Timestamp.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
