// This file provides type aliases for the progress types defined in
// internal/progress so callers of the fibonacci package can use them without
// an extra import.

package fibonacci

import "github.com/agbru/numkit/internal/progress"

// Type aliases for types defined in internal/progress.
type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback
)
