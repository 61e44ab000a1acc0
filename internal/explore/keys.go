package explore

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextSite key.Binding
	PrevSite key.Binding
	LoDown   key.Binding
	LoUp     key.Binding
	HiDown   key.Binding
	HiUp     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSite: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next site")),
		PrevSite: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev site")),
		LoDown:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "min -")),
		LoUp:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "min +")),
		HiDown:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "max -")),
		HiUp:     key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "max +")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSite, k.LoUp, k.HiDown, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSite, k.PrevSite},
		{k.LoDown, k.LoUp, k.HiDown, k.HiUp},
		{k.Reset, k.Help, k.Quit},
	}
}
