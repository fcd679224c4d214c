package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"snapcheck/internal/pathutil"
	"snapcheck/pkg/diff"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var listJobs int

// listCmd lists snapshot files below a directory
var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List snapshot files with size and MD5",
	Long: `Finds every file carrying the snapshot marker below dir (default ".")
and prints its path, size and MD5 checksum.

Example:
  snapctl list ./pkg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listJobs, "jobs", "j", 8, "Number of files hashed in parallel")
}

type snapshotEntry struct {
	Path    string
	Summary string
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := pathutil.AssertIsDir(dir); err != nil {
		return err
	}

	entries, err := findSnapshots(cmd.Context(), dir, cfg.Snapshot.Marker, listJobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s: %s\n", e.Path, e.Summary)
	}
	logger.Debug("listed snapshots", zap.String("dir", dir), zap.Int("count", len(entries)))
	return nil
}

// findSnapshots globs for marker files and hashes them concurrently.
func findSnapshots(ctx context.Context, dir, marker string, jobs int) ([]snapshotEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pattern := "**/*" + doublestar.EscapeMeta(marker) + "*"
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", dir, err)
	}
	sort.Strings(matches)

	entries := make([]snapshotEntry, len(matches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, rel := range matches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, filepath.FromSlash(rel))
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			entries[i] = snapshotEntry{Path: path, Summary: diff.Summary(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
