package main

import (
	"fmt"
	"io"
	"os"
	"snapcheck/pkg/htmlutil"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	htmlSelector   string
	htmlNoValidate bool
	htmlNoPretty   bool
)

// htmlCmd runs the HTML snapshot stages on a file
var htmlCmd = &cobra.Command{
	Use:   "html <file>",
	Short: "Validate, select and pretty-print HTML like an HTML snapshot",
	Long: `Runs the stages an HTML snapshot assertion applies before comparing:
validation, optional CSS selection and pretty-printing. Use "-" to read stdin.

Example:
  snapctl html page.html --selector "main > article"`,
	Args: cobra.ExactArgs(1),
	RunE: runHTML,
}

func init() {
	htmlCmd.Flags().StringVar(&htmlSelector, "selector", "", "Keep only elements matching this CSS selector")
	htmlCmd.Flags().BoolVar(&htmlNoValidate, "no-validate", false, "Skip validation")
	htmlCmd.Flags().BoolVar(&htmlNoPretty, "no-pretty", false, "Print the markup without pretty-printing")
}

func runHTML(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}
	text := string(data)

	if cfg.HTML.Validate && !htmlNoValidate {
		if err := htmlutil.Validate(text); err != nil {
			return err
		}
	}
	if htmlSelector != "" {
		if text, err = htmlutil.Select(text, htmlSelector); err != nil {
			return err
		}
		logger.Debug("selected elements", zap.String("selector", htmlSelector))
	}
	if cfg.HTML.Pretty && !htmlNoPretty {
		if text, err = htmlutil.Pretty(text); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
