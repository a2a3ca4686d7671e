package studio

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	errBusy = &apperr.Error{
		Message: "wait for the %d pending request(s) to finish first",
	}

	errPostCmd = &apperr.Error{
		Message: "unable to parse export.post_cmd option",
	}

	errNoNarration = &apperr.Error{
		Message: "section %d has no narration yet",
	}

	errNoPlayer = &apperr.Error{
		Message: "audio playback is not available",
	}

	errNoVoices = &apperr.Error{
		Message: "no voices are available for this account",
	}
)
