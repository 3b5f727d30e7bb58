// Package wind produces the periodic wind gusts that drift across the scene.
package wind

import "github.com/ngmaloney/wind-garden/internal/models"

// Stage is the rendering side of the scene. Producers hand it plain
// records and later ask for their removal; how they are drawn is up to
// the stage.
type Stage interface {
	AddLine(line models.WindLine)
	RemoveLine(id models.ElementID)
	AddSwirl(swirl models.WindSwirl)
	RemoveSwirl(id models.ElementID)
}

// Visibility reports whether the scene is currently hidden from the viewer
type Visibility interface {
	Hidden() (bool, error)
}

// VisibilityFunc adapts a function to Visibility
type VisibilityFunc func() (bool, error)

func (f VisibilityFunc) Hidden() (bool, error) {
	return f()
}

// isHidden fails open: a missing or failing visibility check counts as visible
func isHidden(v Visibility) bool {
	if v == nil {
		return false
	}
	hidden, err := v.Hidden()
	if err != nil {
		return false
	}
	return hidden
}
