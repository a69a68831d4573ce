package optimizer

// Preset bundles Options defaults for a common use case.
type Preset struct {
	Name       string
	TargetSize int // bytes
	MaxWidth   int
	MaxHeight  int
	Quality    int // initial probe quality
	Strict     bool
}

// Built-in presets.
var presets = map[string]Preset{
	"thumbnail": {
		Name:       "thumbnail",
		TargetSize: 30 * 1024,
		MaxWidth:   320,
		MaxHeight:  320,
		Quality:    75,
	},
	"web": {
		Name:       "web",
		TargetSize: 200 * 1024,
		MaxWidth:   1920,
		MaxHeight:  1080,
		Quality:    80,
	},
	"strict-web": {
		Name:       "strict-web",
		TargetSize: 200 * 1024,
		MaxWidth:   1920,
		MaxHeight:  1080,
		Quality:    80,
		Strict:     true,
	},
	"email": {
		Name:       "email",
		TargetSize: 500 * 1024,
		MaxWidth:   2560,
		MaxHeight:  2560,
		Quality:    85,
	},
}

// GetPreset returns a preset by name. Falls back to web if unknown.
func GetPreset(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets["web"]
	p.Name = name // preserve requested name
	return p
}

// Options expands the preset into full run options.
func (p Preset) Options() Options {
	o := DefaultOptions(p.TargetSize)
	o.MaxWidth = p.MaxWidth
	o.MaxHeight = p.MaxHeight
	if p.Quality > 0 {
		o.Quality = p.Quality
	}
	o.StrictUpperLimit = p.Strict
	return o
}
