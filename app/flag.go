package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the desktop notification shown when a long running job finishes",
	}

	postCmdFlag = &cli.StringFlag{
		Name:    "post-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command in the export directory after each export",
	}

	timerOnlyFlag = &cli.BoolFlag{
		Name:  "timer-only",
		Usage: "Hide every production feature and only time sections",
	}

	recordingFlag = &cli.StringSliceFlag{
		Name:    "recording",
		Aliases: []string{"r"},
		Usage:   "Transcribe a brainstorming recording (or a folder of them) when the studio starts",
	}

	transcriberFlag = &cli.StringFlag{
		Name:  "transcriber",
		Usage: "Transcription service: openai or elevenlabs",
	}

	scriptProviderFlag = &cli.StringFlag{
		Name:  "script-provider",
		Usage: "Script writing service: anthropic or gemini",
	}

	voiceFlag = &cli.StringFlag{
		Name:  "voice",
		Usage: "ElevenLabs voice id used for narration",
	}

	dirFlag = &cli.StringFlag{
		Name:  "dir",
		Usage: "Directory that exported bundles are written to",
	}

	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Upper bound for each call to an AI service (e.g. 90s)",
	}

	fpsFlag = &cli.IntFlag{
		Name:  "fps",
		Usage: "Timeline frame rate: 24, 25, 30 or 60",
	}

	watchFlag = &cli.StringFlag{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Watch a folder and transcribe recordings as they appear",
	}

	saveFlag = &cli.BoolFlag{
		Name:    "save",
		Aliases: []string{"s"},
		Usage:   "Write each transcript next to its recording as a .txt file",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Directory for the new timeline (defaults to the manifest's folder)",
	}
)
