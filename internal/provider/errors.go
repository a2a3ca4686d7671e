package provider

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	ErrHTTPStatus = &apperr.Error{
		Message: "%s: unexpected status %d: %s",
	}

	ErrEmptyResponse = &apperr.Error{
		Message: "%s returned an empty response",
	}

	ErrEmptyAudio = &apperr.Error{
		Message: "no audio to send",
	}

	ErrEmptyText = &apperr.Error{
		Message: "no text to send",
	}
)
