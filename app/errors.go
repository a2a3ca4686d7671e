package app

import "github.com/tourstudio/tourstudio/internal/apperr"

var errMissingArg = &apperr.Error{
	Message: "missing %s argument",
}
