package bundle

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	ErrMissingTiming = &apperr.Error{
		Message: "manifest section %d is missing %s",
	}

	ErrReadManifest = &apperr.Error{
		Message: "unable to read manifest %s",
	}
)
