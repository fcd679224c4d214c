package main

import (
	"fmt"
	"os"
	"os/signal"
	"snapcheck/internal/pathutil"
	"syscall"

	"github.com/spf13/cobra"
)

// watchCmd reports snapshot files as tests write them
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Report snapshot files as they are written or removed",
	Long: `Watches dir (default ".") and every directory below it, printing one line
per snapshot file once writes to it have settled. Run it next to
"go test" or "snapctl update" to see which snapshots a run touched.

Example:
  snapctl watch ./pkg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := pathutil.AssertIsDir(dir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sw, err := newSnapshotWatcher(dir, cfg.Snapshot.Marker, logger, func(e snapshotEvent) {
		if e.Removed {
			fmt.Fprintf(out, "removed %s\n", e.Path)
			return
		}
		fmt.Fprintf(out, "written %s: %s\n", e.Path, e.Summary)
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sw.Start(ctx); err != nil {
		sw.Stop()
		return err
	}
	<-ctx.Done()
	sw.Stop()

	stats := sw.Stats()
	logger.Info("watch stopped")
	fmt.Fprintf(cmd.ErrOrStderr(), "%d written, %d removed\n", stats.Written, stats.Removed)
	return nil
}
