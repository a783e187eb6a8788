package cli

import (
	"github.com/spf13/cobra"

	"github.com/drei/progrich/internal/cli/ui"
	"github.com/drei/progrich/internal/config"
	"github.com/drei/progrich/internal/history"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse recorded runs interactively",
	RunE: func(_ *cobra.Command, _ []string) error {
		dbPath, err := config.DBPath()
		if err != nil {
			return err
		}
		st, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		p := ui.NewProgram(st)
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
