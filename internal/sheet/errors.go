// =============================================================================
// Order Sheet - Workbook Error Taxonomy
// =============================================================================
//
// File-level failures propagate to the caller as typed errors so commands can
// report them distinctly; row-level problems never surface here, malformed
// rows are skipped and logged by the codec.
//
// =============================================================================

package sheet

import "errors"

// ErrMissingFile indicates the backing workbook does not exist. Reads treat
// this as an empty catalog; writes create the file with its header.
var ErrMissingFile = errors.New("workbook file does not exist")

// ErrCorruptCatalog indicates the workbook container could not be read at
// all. The operation aborts with no partial state applied.
var ErrCorruptCatalog = errors.New("workbook is unreadable")
