package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default", "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`

	// Board elements
	ListBorder     string `yaml:"list_border"`
	CardBorder     string `yaml:"card_border"`
	CardBackground string `yaml:"card_background"`
	// DropTarget highlights the list or card under the pointer while dragging
	DropTarget string `yaml:"drop_target"`
	// Ghost is the color of the dragged entity's origin slot
	Ghost string `yaml:"ghost"`
	// Pending marks entities whose creation is not confirmed yet
	Pending string `yaml:"pending"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "default",
		Accent: "#874BFD",

		ListBorder:     "#5F87D7",
		CardBorder:     "#585858",
		CardBackground: "#262626",
		DropTarget:     "#D75FD7",
		Ghost:          "#3A3A3A",
		Pending:        "#875F00",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "monochrome",
		Accent: "#FFFFFF",

		ListBorder:     "#808080",
		CardBorder:     "#606060",
		CardBackground: "#000000",
		DropTarget:     "#FFFFFF",
		Ghost:          "#303030",
		Pending:        "#808080",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#C0C0C0",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		WarningFg: "#FFFFFF",
		WarningBg: "#505050",
		ErrorFg:   "#000000",
		ErrorBg:   "#FFFFFF",
	}
}

// presetScheme returns a preset color scheme by name
func presetScheme(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := presetScheme(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	mergeScheme(c, preset)
}

// loadThemeFile merges the theme from DRAGBOARD_THEME_FILE over config
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) != nil {
		return
	}

	// explicit theme file values win over the config file
	base := config.ColorScheme
	config.ColorScheme = themeConfig.Theme
	if config.ColorScheme.Preset == "" {
		config.ColorScheme.Preset = base.Preset
	}
	mergeScheme(&config.ColorScheme, base)
}

// mergeScheme fills blanks in dst from src
func mergeScheme(dst *ColorScheme, src ColorScheme) {
	fill := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	fill(&dst.Accent, src.Accent)
	fill(&dst.ListBorder, src.ListBorder)
	fill(&dst.CardBorder, src.CardBorder)
	fill(&dst.CardBackground, src.CardBackground)
	fill(&dst.DropTarget, src.DropTarget)
	fill(&dst.Ghost, src.Ghost)
	fill(&dst.Pending, src.Pending)
	fill(&dst.Title, src.Title)
	fill(&dst.Subtle, src.Subtle)
	fill(&dst.Normal, src.Normal)
	fill(&dst.InfoFg, src.InfoFg)
	fill(&dst.InfoBg, src.InfoBg)
	fill(&dst.WarningFg, src.WarningFg)
	fill(&dst.WarningBg, src.WarningBg)
	fill(&dst.ErrorFg, src.ErrorFg)
	fill(&dst.ErrorBg, src.ErrorBg)
}
