package config

import "sort"

var Presets = map[string]*Config{
	// four states: one step lands exactly on the marked state
	"small": {N: 4, Marked: 0, Iterations: 12},
	// the grover.py run
	"classic": {N: 100, Marked: 20, Iterations: 2500},
	"large":   {N: 10000, Marked: 4321, Iterations: 1000},
	// the grover2.py animation: 99 frames at 100ms
	"animate": {N: 1000, Marked: 500, Iterations: 99, FPS: 10},
}

// GetPreset returns a copy of the named preset layered over the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.N, cfg.Marked, cfg.Iterations = p.N, p.Marked, p.Iterations
	if p.FPS != 0 {
		cfg.FPS = p.FPS
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
