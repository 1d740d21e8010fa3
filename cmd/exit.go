package cmd

import (
	"errors"

	"github.com/KaramelBytes/resultkit-cli/internal/analysis"
	"github.com/KaramelBytes/resultkit-cli/internal/combine"
)

// Process exit statuses.
const (
	exitOK           = 0
	exitUsage        = 1
	exitTargetExists = 2
	exitBadOptions   = 2
	exitNoSourceJSON = 3
)

// exitCode maps an error returned by a command to the process exit status.
// Anything unclassified (usage, unknown labels, I/O) exits with 1.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var te *combine.TargetExistsError
	if errors.As(err, &te) {
		return exitTargetExists
	}
	var me *combine.SourceConfigMissingError
	if errors.As(err, &me) {
		return exitNoSourceJSON
	}
	if errors.Is(err, analysis.ErrMatchWithQuantile) {
		return exitBadOptions
	}
	return exitUsage
}
