// Package policy decides between strict and lenient snapshot handling.
//
// The decision is read from the environment on every call so a test run can
// flip it for a sub-scope (t.Setenv) without restarting the process.
package policy

import "os"

// Strict reports whether snapshot mismatches and missing baselines must fail.
// The values "0" and "false" select lenient mode; anything else, including an
// unset variable, selects strict mode.
func Strict(envVar string) bool {
	switch os.Getenv(envVar) {
	case "0", "false":
		return false
	default:
		return true
	}
}
