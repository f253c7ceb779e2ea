package sitegen

import (
	"errors"

	"github.com/artlife/sitegen/internal/content"
)

// Sentinel errors for library operations. The content-tree errors are
// re-exported so callers can match them without importing internal
// packages.
var (
	ErrMissingBlock     = content.ErrMissingBlock
	ErrBlockOutsideTree = content.ErrBlockOutsideTree
	ErrNoPages          = errors.New("control file defines no pages")
	ErrOutputDir        = errors.New("failed to prepare output directory")
	ErrWriteAsset       = errors.New("failed to write asset")
	ErrWritePage        = errors.New("failed to write page")
)
