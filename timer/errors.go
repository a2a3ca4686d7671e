package timer

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	ErrAlreadyRunning = &apperr.Error{
		Message: "the timer is already running",
	}

	ErrNotRunning = &apperr.Error{
		Message: "the timer is not running",
	}

	ErrNothingToClose = &apperr.Error{
		Message: "start the timer before closing a section",
	}

	ErrSectionIndex = &apperr.Error{
		Message: "section %d does not exist (have %d)",
	}
)
