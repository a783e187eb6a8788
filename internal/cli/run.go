package cli

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/drei/progrich"
	"github.com/drei/progrich/internal/config"
	"github.com/drei/progrich/internal/history"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command...>",
	Short: "Run a command behind a live status line",
	Long: "Run a command while showing a spinner, record how long it took, " +
		"and show an ETA progress bar on later runs of the same command",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		noRecord, _ := cmd.Flags().GetBool("no-record")

		settings, err := config.Load()
		if err != nil {
			return err
		}
		applyColorSetting(settings)

		argv := args
		if len(args) == 1 {
			argv, err = shellquote.Split(args[0])
			if err != nil {
				return fmt.Errorf("parse command: %w", err)
			}
		}
		if len(argv) == 0 {
			return fmt.Errorf("empty command")
		}
		if label == "" {
			label = strings.Join(argv, " ")
		}

		st := openHistory()
		if st != nil {
			defer func() { _ = st.Close() }()
		}

		// Widgets render on stderr so the child's stdout stays clean for pipes.
		mgr := progrich.NewManager(
			progrich.WithOutput(os.Stderr),
			progrich.WithFPS(settings.FPS),
		)

		spin := progrich.NewSpinner(label,
			progrich.WithSpinnerManager(mgr),
			progrich.WithSpinnerFrames(spinnerFrames(settings.Spinner)),
		)
		if err := spin.Start(); err != nil {
			return err
		}
		stopETA := startETABar(mgr, st, label)

		start := time.Now()
		runErr := runCommand(argv, cmd.OutOrStdout())
		elapsed := time.Since(start)
		stopETA()

		if st != nil && !noRecord {
			if err := st.Record(label, elapsed, runErr == nil); err != nil {
				slog.Warn("could not record run", "label", label, "err", err)
			}
		}

		result := fmt.Sprintf("%s (%s)", label, progrich.FormatClock(elapsed))
		if runErr != nil {
			_ = spin.Fail(result)
			return fmt.Errorf("command failed: %w", runErr)
		}
		_ = spin.Success(result)
		return nil
	},
}

func init() {
	runCmd.Flags().String("label", "", "history label (default: the command itself)")
	runCmd.Flags().Bool("no-record", false, "do not record the run duration")
	rootCmd.AddCommand(runCmd)
}

// openHistory opens the run-history store; failures only disable the ETA
// feature, they never fail the run itself.
func openHistory() *history.Store {
	dbPath, err := config.DBPath()
	if err != nil {
		slog.Warn("history disabled", "err", err)
		return nil
	}
	st, err := history.Open(dbPath)
	if err != nil {
		slog.Warn("history disabled", "err", err)
		return nil
	}
	return st
}

// startETABar adds a countdown progress bar under the spinner when earlier
// runs of label are recorded. The returned func stops the bar.
func startETABar(mgr *progrich.Manager, st *history.Store, label string) func() {
	if st == nil {
		return func() {}
	}
	est, ok, err := st.Estimate(label)
	if err != nil {
		slog.Warn("estimate failed", "label", label, "err", err)
		return func() {}
	}
	if !ok || est <= 0 {
		return func() {}
	}

	total := math.Ceil(est.Seconds())
	bar := progrich.NewProgressBar("ETA", total,
		progrich.WithBarManager(mgr),
		progrich.WithEstimate(est),
	)
	if err := bar.Start(); err != nil {
		return func() {}
	}
	quit := make(chan struct{})
	go func() {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-quit:
				return
			case <-t.C:
				// Runs past the estimate just sit at the end of the bar.
				_ = bar.Advance(1)
			}
		}
	}()
	return func() {
		close(quit)
		if !bar.Done() {
			_ = bar.Stop()
		}
	}
}

// runCommand executes argv under a PTY so child programs keep their
// interactive output, relaying everything to out. It falls back to plain
// pipes where PTYs are unavailable.
func runCommand(argv []string, out io.Writer) error {
	c := exec.Command(argv[0], argv[1:]...)
	f, err := pty.Start(c)
	if err != nil {
		slog.Debug("pty unavailable, using pipes", "err", err)
		c = exec.Command(argv[0], argv[1:]...)
		c.Stdout = out
		c.Stderr = os.Stderr
		return c.Run()
	}
	defer func() { _ = f.Close() }()
	copied := make(chan struct{})
	go func() {
		// The PTY read errors out once the child exits; that is the
		// normal end of stream.
		_, _ = io.Copy(out, f)
		close(copied)
	}()
	err = c.Wait()
	<-copied
	return err
}
