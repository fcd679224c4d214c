package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"snapcheck/pkg/diff"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	diffStyle string
	diffStat  bool
	diffColor string
)

// diffCmd renders the difference between two files
var diffCmd = &cobra.Command{
	Use:   "diff <got> <expected>",
	Short: "Show the difference between two files",
	Long: `Renders the difference between two files the way a failing snapshot
assertion would.

Styles:
  - unified: classic unified diff (default, or snapshot.diff from the config)
  - ndiff:   line delta with ? guides under changed characters
  - binary:  size and MD5 of both files`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffStyle, "style", "", "Diff style: unified, ndiff or binary")
	diffCmd.Flags().BoolVar(&diffStat, "stat", false, "Print only the number of added and removed lines")
	diffCmd.Flags().StringVar(&diffColor, "color", "auto", "Colorize output: auto, always or never")
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	guideStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func runDiff(cmd *cobra.Command, args []string) error {
	gotFile, expectedFile := args[0], args[1]
	got, err := os.ReadFile(gotFile)
	if err != nil {
		return err
	}
	expected, err := os.ReadFile(expectedFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if bytes.Equal(got, expected) {
		fmt.Fprintln(out, "Files are identical")
		return nil
	}

	style := diffStyle
	if style == "" {
		style = cfg.Snapshot.Diff
	}

	unified := diff.ForEngine(diff.NewEngine(diff.WithContextLines(cfg.Snapshot.ContextLines)))
	if diffStat {
		added, removed, err := diff.Stat(unified(string(got), string(expected), gotFile, expectedFile))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d insertions(+), %d deletions(-)\n", added, removed)
		return nil
	}

	if style != diff.StyleBinary && diff.OnlyNewlines(string(got), string(expected)) {
		fmt.Fprintln(out, diff.Newlines(string(got), string(expected)))
		return nil
	}

	render := unified
	if style != diff.StyleUnified {
		if render, err = diff.ByName(style); err != nil {
			return err
		}
	}
	text := render(string(got), string(expected), gotFile, expectedFile)

	color, err := useColor(out, diffColor)
	if err != nil {
		return err
	}
	if color {
		text = colorize(text)
	}
	fmt.Fprintln(out, text)
	return nil
}

func useColor(w io.Writer, mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", mode)
	}
}

func colorize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			lines[i] = headerStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Render(line)
		case strings.HasPrefix(line, "? "):
			lines[i] = guideStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
