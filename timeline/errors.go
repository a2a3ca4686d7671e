package timeline

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	ErrUnsupportedFrameRate = &apperr.Error{
		Message: "unsupported frame rate %d: choose one of 24, 25, 30 or 60",
	}

	ErrMalformedSection = &apperr.Error{
		Message: "section %d has invalid timing (start %s, end %s, duration %s)",
	}
)
