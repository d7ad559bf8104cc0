package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play    key.Binding
	Forward key.Binding
	Back    key.Binding
	First   key.Binding
	Last    key.Binding
	Stop    key.Binding
	Edit    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Play:    key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "play/pause")),
		Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "step")),
		Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Edit:    key.NewBinding(key.WithKeys("e", "i"), key.WithHelp("e", "edit input")),
		Faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Forward, k.Back, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Stop, k.Forward, k.Back},
		{k.First, k.Last, k.Faster, k.Slower},
		{k.Edit, k.Theme, k.Help, k.Quit},
	}
}
