package studio

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	toggle    key.Binding
	lap       key.Binding
	up        key.Binding
	down      key.Binding
	rename    key.Binding
	remove    key.Binding
	reset     key.Binding
	overview  key.Binding
	export    key.Binding
	script    key.Binding
	edit      key.Binding
	narrate   key.Binding
	all       key.Binding
	play      key.Binding
	save      key.Binding
	sfx       key.Binding
	music     key.Binding
	voice     key.Binding
	help      key.Binding
	quit      key.Binding
	confirm   key.Binding
	cancel    key.Binding
	timerOnly bool
}

func newKeymap(timerOnly bool) keymap {
	k := keymap{
		toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		lap: key.NewBinding(
			key.WithKeys("l", "enter"),
			key.WithHelp("l", "stop lap"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		rename: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "rename"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
		overview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "frames"),
		),
		export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		script: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write script"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit script"),
		),
		narrate: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "narrate"),
		),
		all: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "narrate all"),
		),
		play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/stop"),
		),
		save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save mp3"),
		),
		sfx: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "sound effect"),
		),
		music: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music prompt"),
		),
		voice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "voice"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		timerOnly: timerOnly,
	}

	if timerOnly {
		for _, b := range k.production() {
			b.SetEnabled(false)
		}
	}

	return k
}

func (k *keymap) production() []*key.Binding {
	return []*key.Binding{
		&k.script, &k.edit, &k.narrate, &k.all,
		&k.play, &k.save, &k.sfx, &k.music, &k.voice,
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.lap, k.export, k.help, k.quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{
		{k.toggle, k.lap, k.reset},
		{k.up, k.down, k.rename, k.remove},
		{k.overview, k.export, k.help, k.quit},
	}

	if !k.timerOnly {
		groups = append(groups,
			[]key.Binding{k.script, k.edit, k.sfx, k.music},
			[]key.Binding{k.voice, k.narrate, k.all, k.play, k.save},
		)
	}

	return groups
}
