package production

import "github.com/tourstudio/tourstudio/internal/apperr"

var (
	ErrNoTranscriber = &apperr.Error{
		Message: "no transcription service is configured: set providers.transcription and its API key",
	}

	ErrNoScriptWriter = &apperr.Error{
		Message: "no script writer is configured: set providers.script and its API key",
	}

	ErrNoSynthesizer = &apperr.Error{
		Message: "speech synthesis is not configured: set ELEVENLABS_API_KEY",
	}

	ErrNoSoundDesigner = &apperr.Error{
		Message: "sound effect generation is not configured: set ELEVENLABS_API_KEY",
	}

	ErrNoScript = &apperr.Error{
		Message: "section %d has no script yet",
	}

	ErrNoVoice = &apperr.Error{
		Message: "choose a voice before generating narration",
	}

	ErrEmptyScript = &apperr.Error{
		Message: "the script cannot be empty",
	}

	ErrNoSections = &apperr.Error{
		Message: "record at least one section first",
	}
)
