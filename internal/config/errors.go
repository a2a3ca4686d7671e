package config

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errUnknownProvider = &apperr.Error{
		Message: "unknown %s provider %q (expected one of: %s)",
	}

	errInvalidFPS = &apperr.Error{
		Message: "export fps must be one of 24, 25, 30 or 60, got %d",
	}

	errInvalidTimeout = &apperr.Error{
		Message: "request timeout must be between %v and %v",
	}

	errInvalidVoiceSetting = &apperr.Error{
		Message: "elevenlabs %s must be between 0 and 1, got %v",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "unknown log level %q",
	}

	errPromptFailed = &apperr.Error{
		Message: "user prompt failed",
	}
)
