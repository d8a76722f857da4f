package config

import "sort"

var Presets = map[string]Params{
	"snowflake": {Depth: 5, Branches: 6, Size: 200, BaseAngle: -90, Speed: 1, Direction: true},
	"triad":     {Depth: 5, Branches: 3, Size: 200, BaseAngle: -90, Speed: 1},
	"tree":      {Depth: 7, Branches: 2, Size: 250, BaseAngle: -90, Speed: 0},
	"cross":     {Depth: 4, Branches: 4, Size: 220, BaseAngle: 0, Speed: 2, Direction: true},
	"spiral":    {Depth: 6, Branches: 5, Size: 180, BaseAngle: 0, Speed: 8},
	"dense":     {Depth: 4, Branches: 12, Size: 300, BaseAngle: 0, Speed: 3, Direction: true},
}

func GetPreset(name string) (Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
