package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateRun string

// goBinary is replaced in tests.
var goBinary = "go"

// updateCmd reruns tests in lenient mode
var updateCmd = &cobra.Command{
	Use:   "update [packages...]",
	Short: "Run go test and accept every missing or changed snapshot",
	Long: `Runs "go test" with the strict variable (RAISE_SNAPSHOT_ERRORS unless
configured otherwise) set to "0". Every missing or changed snapshot is
rewritten and no assertion fails; review the result with your VCS.

Example:
  snapctl update ./pkg/... --run TestRender`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateRun, "run", "", "Only run tests matching this regexp")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	testArgs := updateArgs(args, updateRun)
	env := updateEnv(os.Environ(), cfg.Snapshot.StrictEnv)

	logger.Info("accepting snapshots",
		zap.Strings("args", testArgs),
		zap.String("env", cfg.Snapshot.StrictEnv+"=0"),
	)

	c := exec.CommandContext(cmd.Context(), goBinary, testArgs...)
	c.Env = env
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}

// updateArgs builds the go test command line. Results are never cached, a
// cached pass would write nothing.
func updateArgs(packages []string, run string) []string {
	if len(packages) == 0 {
		packages = []string{"./..."}
	}
	args := []string{"test", "-count=1"}
	if run != "" {
		args = append(args, "-run", run)
	}
	return append(args, packages...)
}

// updateEnv sets the strict variable to "0" and tells the tests which
// variable that is.
func updateEnv(env []string, strictEnv string) []string {
	env = setEnvKey(env, strictEnv, "0")
	if !hasEnvKey(env, "SNAPCHECK_STRICT_ENV") {
		env = append(env, "SNAPCHECK_STRICT_ENV="+strictEnv)
	}
	return env
}
