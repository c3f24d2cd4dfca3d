package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Board
	Refresh    string `yaml:"refresh"`
	CancelDrag string `yaml:"cancel_drag"`

	// Lists and cards
	NewList    string `yaml:"new_list"`
	NewCard    string `yaml:"new_card"`
	Rename     string `yaml:"rename"`
	Delete     string `yaml:"delete"`
	SubmitForm string `yaml:"submit_form"`

	// Other
	Quit string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Refresh:    "r",
		CancelDrag: "esc",

		NewList:    "L",
		NewCard:    "a",
		Rename:     "e",
		Delete:     "d",
		SubmitForm: "enter",

		Quit: "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.CancelDrag == "" {
		k.CancelDrag = defaults.CancelDrag
	}
	if k.NewList == "" {
		k.NewList = defaults.NewList
	}
	if k.NewCard == "" {
		k.NewCard = defaults.NewCard
	}
	if k.Rename == "" {
		k.Rename = defaults.Rename
	}
	if k.Delete == "" {
		k.Delete = defaults.Delete
	}
	if k.SubmitForm == "" {
		k.SubmitForm = defaults.SubmitForm
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
