package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drei/progrich"
	"github.com/drei/progrich/internal/config"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show every widget once",
	RunE: func(cmd *cobra.Command, args []string) error {
		fast, _ := cmd.Flags().GetBool("fast")
		step := 40 * time.Millisecond
		if fast {
			step = time.Millisecond
		}

		settings, err := config.Load()
		if err != nil {
			return err
		}
		applyColorSetting(settings)
		mgr := progrich.NewManager(progrich.WithFPS(settings.FPS))

		spin := progrich.NewSpinner("Preparing dataset",
			progrich.WithSpinnerManager(mgr),
			progrich.WithSpinnerFrames(spinnerFrames(settings.Spinner)),
		)
		if err := spin.Start(); err != nil {
			return err
		}
		time.Sleep(20 * step)
		spin.Update("Shuffling samples")
		time.Sleep(20 * step)
		if err := spin.Success("Dataset ready"); err != nil {
			return err
		}

		const epochs, steps = 3, 40
		total := progrich.NewProgressBar("  Total", epochs,
			progrich.WithBarManager(mgr),
			progrich.WithBarPersist(),
		)
		if err := total.Start(); err != nil {
			return err
		}
		for epoch := 1; epoch <= epochs; epoch++ {
			bar := progrich.NewProgressBar(
				fmt.Sprintf("Epoch %d - Train", epoch), steps,
				progrich.WithGroup(total),
				progrich.WithPrefix(fmt.Sprintf("[%d/%d] ", epoch, epochs)),
			)
			if err := bar.Start(); err != nil {
				return err
			}
			for i := 0; i < steps; i++ {
				time.Sleep(step)
				_ = bar.Advance(1)
			}
			if err := bar.Stop(); err != nil {
				return err
			}
			_ = total.Advance(1)
		}
		if err := total.Stop(); err != nil {
			return err
		}

		upload := progrich.NewSpinner("Uploading checkpoint",
			progrich.WithSpinnerManager(mgr),
		)
		if err := upload.Start(); err != nil {
			return err
		}
		time.Sleep(25 * step)
		return upload.Fail("Upload failed: connection reset")
	},
}

func init() {
	demoCmd.Flags().Bool("fast", false, "run the demo without the sleeps")
	rootCmd.AddCommand(demoCmd)
}
