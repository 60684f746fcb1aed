package engine

import "fmt"

// DifficultyPreset maps a named strength level onto concrete search
// parameters. Depth is the full search depth; LineLength bounds how many
// moves of the principal variation are reported.
type DifficultyPreset struct {
	Name       string
	Depth      int
	LineLength int
}

var DefaultPresets = map[string]DifficultyPreset{
	"level1": {Name: "level1", Depth: 1, LineLength: 1},
	"level2": {Name: "level2", Depth: 2, LineLength: 2},
	"level3": {Name: "level3", Depth: 3, LineLength: 3},
	"level4": {Name: "level4", Depth: 4, LineLength: 4},
	"level5": {Name: "level5", Depth: 5, LineLength: 5},
}

// GetPreset resolves a preset by name. Friendly aliases map onto the
// numbered levels.
func GetPreset(name string) (DifficultyPreset, error) {
	switch name {
	case "beginner":
		name = "level1"
	case "intermediate":
		name = "level3"
	case "advanced":
		name = "level5"
	}
	p, ok := DefaultPresets[name]
	if !ok {
		return DifficultyPreset{}, fmt.Errorf("unknown engine preset: %s", name)
	}
	return p, nil
}

func ValidatePreset(p DifficultyPreset) error {
	switch {
	case p.Depth < 1:
		return fmt.Errorf("depth must be >= 1: %d", p.Depth)
	case p.LineLength < 0:
		return fmt.Errorf("line length must be >= 0: %d", p.LineLength)
	}
	return nil
}
