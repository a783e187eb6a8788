package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drei/progrich/internal/config"
	"github.com/drei/progrich/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded run durations",
	Long:  "Show recorded run durations (label, duration, status, timestamp), most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		clear, _ := cmd.Flags().GetBool("clear")

		settings, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, err := config.DBPath()
		if err != nil {
			return err
		}
		st, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if clear {
			if err := st.Clear(); err != nil {
				return err
			}
			fmt.Println("history cleared")
			return nil
		}

		runs, err := st.List(settings.HistoryLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			status := "ok"
			if !r.OK {
				status = "failed"
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", r.Label, r.Duration.Round(time.Millisecond), status, r.CreatedAt)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("clear", false, "delete all recorded runs")
	rootCmd.AddCommand(historyCmd)
}
