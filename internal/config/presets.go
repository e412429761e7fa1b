package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Algorithm: "bubble", Size: 8, Speed: 60, Shape: "random",
		MinValue: 10, MaxValue: 310,
	},
	"large": {
		Algorithm: "insertion", Size: 50, Speed: 100, Shape: "random",
		MinValue: 10, MaxValue: 310,
	},
	"reversed": {
		Algorithm: "insertion", Size: 20, Speed: 90, Shape: "reversed",
		MinValue: 10, MaxValue: 310,
	},
	"nearly-sorted": {
		Algorithm: "bubble", Size: 30, Speed: 100, Shape: "nearly-sorted",
		MinValue: 10, MaxValue: 310,
	},
	"few-unique": {
		Algorithm: "selection", Size: 24, Speed: 90, Shape: "few-unique",
		MinValue: 10, MaxValue: 310,
	},
	"slow-motion": {
		Algorithm: "selection", Size: 6, Speed: 10, Shape: "random",
		MinValue: 10, MaxValue: 310,
	},
	"textbook": {
		Algorithm: "bubble", Speed: 50, Shape: "random",
		MinValue: 10, MaxValue: 310, Values: []float64{5, 3, 8, 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Values = append([]float64(nil), p.Values...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
