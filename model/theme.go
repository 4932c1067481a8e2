package model

// Palette is a named set of color tokens pushed into the presentation
// layer's style variables.
type Palette struct {
	Name   string            `json:"name"`
	Tokens map[string]string `json:"tokens"`
}

// DefaultPalette is applied when nothing is persisted or the persisted
// name is no longer recognized.
const DefaultPalette = "blue"

const (
	ModeLight = "light"
	ModeDark  = "dark"
)

var palettes = map[string]Palette{
	"blue": {
		Name: "blue",
		Tokens: map[string]string{
			"--color-primary":    "#2563eb",
			"--color-secondary":  "#60a5fa",
			"--color-accent":     "#1e40af",
			"--color-background": "#eff6ff",
		},
	},
	"green": {
		Name: "green",
		Tokens: map[string]string{
			"--color-primary":    "#16a34a",
			"--color-secondary":  "#4ade80",
			"--color-accent":     "#166534",
			"--color-background": "#f0fdf4",
		},
	},
	"teal": {
		Name: "teal",
		Tokens: map[string]string{
			"--color-primary":    "#0d9488",
			"--color-secondary":  "#2dd4bf",
			"--color-accent":     "#115e59",
			"--color-background": "#f0fdfa",
		},
	},
	"amber": {
		Name: "amber",
		Tokens: map[string]string{
			"--color-primary":    "#d97706",
			"--color-secondary":  "#fbbf24",
			"--color-accent":     "#92400e",
			"--color-background": "#fffbeb",
		},
	},
}

// KnownPalette reports whether name is a recognized palette.
func KnownPalette(name string) bool {
	_, ok := palettes[name]
	return ok
}

// PaletteByName returns the palette for name, falling back to the baseline
// palette for unknown names so callers always get drawable tokens.
func PaletteByName(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPalette]
}

// PaletteNames returns the recognized palette names, baseline first.
func PaletteNames() []string {
	names := []string{DefaultPalette}
	for name := range palettes {
		if name != DefaultPalette {
			names = append(names, name)
		}
	}
	return names
}

// ValidMode reports whether m is a recognized light/dark mode value.
func ValidMode(m string) bool {
	return m == ModeLight || m == ModeDark
}
