// Package app wires the tourstudio command-line interface.
package app

import (
	"github.com/urfave/cli/v2"

	"github.com/tourstudio/tourstudio/internal/config"
)

// Get retrieves the tourstudio app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "tourstudio",
		Usage: `
		tourstudio is a terminal studio for producing narrated audio tours. Time
		each section of a tour with a stopwatch, let AI collaborators draft and
		voice the narration, and export a timeline for your video editor.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "transcribe",
				Usage:     "Transcribe brainstorming recordings",
				ArgsUsage: "FILE|DIR...",
				Flags:     []cli.Flag{watchFlag, saveFlag},
				Action:    transcribeAction,
			},
			{
				Name:   "voices",
				Usage:  "List the narration voices available to your ElevenLabs account",
				Action: voicesAction,
			},
			{
				Name:      "export",
				Usage:     "Write the timeline of an exported tour again, e.g. at another frame rate",
				ArgsUsage: "MANIFEST",
				Flags:     []cli.Flag{fpsFlag, outputFlag},
				Action:    exportAction,
			},
			{
				Name:      "play",
				Usage:     "Play a narration or sound effect",
				ArgsUsage: "FILE",
				Action:    playAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			recordingFlag,
			transcriberFlag,
			scriptProviderFlag,
			voiceFlag,
			dirFlag,
			postCmdFlag,
			timeoutFlag,
			fpsFlag,
			timerOnlyFlag,
			disableNotificationFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
