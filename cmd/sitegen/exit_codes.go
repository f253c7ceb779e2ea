package main

import (
	"errors"
	"os"

	sitegen "github.com/artlife/sitegen"
	"github.com/artlife/sitegen/internal/config"
	"github.com/artlife/sitegen/internal/content"
	"github.com/artlife/sitegen/internal/feed"
)

// Exit codes for the sitegen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, or verification hits
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // Missing input, permission denied, bad config
	ExitFetch   = 4 // Feed fetch or parse failures
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Feed errors (exit 4)
	if errors.Is(err, feed.ErrFeedTooLarge) ||
		errors.Is(err, feed.ErrUnsafeXML) ||
		errors.Is(err, feed.ErrNoFeeds) {
		return ExitFetch
	}

	// I/O and content errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, content.ErrMissingControl) ||
		errors.Is(err, sitegen.ErrMissingBlock) ||
		errors.Is(err, sitegen.ErrBlockOutsideTree) ||
		errors.Is(err, sitegen.ErrNoPages) ||
		errors.Is(err, sitegen.ErrOutputDir) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) {
		return ExitIO
	}

	return ExitGeneral
}
