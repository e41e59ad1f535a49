// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package viewstate

// ActionType names a view-state mutation.
type ActionType string

const (
	// ActionToggle flips the hidden flag of a series.
	ActionToggle ActionType = "toggle"
	// ActionSetColor overwrites the color of a series.
	ActionSetColor ActionType = "recolor"
	// ActionInitColor seeds the color of a series from the palette unless it already has one.
	ActionInitColor ActionType = "init-color"
)

// Action is one mutation of a State.
type Action struct {
	Type      ActionType
	SeriesKey string
	Color     string
	// Index and Palette are read by ActionInitColor only.
	Index   int
	Palette []string
}

// Toggle returns an ActionToggle for seriesKey.
func Toggle(seriesKey string) Action {
	return Action{Type: ActionToggle, SeriesKey: seriesKey}
}

// SetColor returns an ActionSetColor for seriesKey.
func SetColor(seriesKey, color string) Action {
	return Action{Type: ActionSetColor, SeriesKey: seriesKey, Color: color}
}

// SeedColor returns an ActionInitColor for seriesKey at a palette position.
func SeedColor(seriesKey string, index int, palette []string) Action {
	return Action{Type: ActionInitColor, SeriesKey: seriesKey, Index: index, Palette: palette}
}

// Apply returns the state that results from applying a to s. s is not
// modified. Unknown action types return s unchanged.
func Apply(s State, a Action) State {
	switch a.Type {
	case ActionToggle:
		next := s.clone()
		if _, hidden := next.hidden[a.SeriesKey]; hidden {
			delete(next.hidden, a.SeriesKey)
		} else {
			next.hidden[a.SeriesKey] = struct{}{}
		}
		return next

	case ActionSetColor:
		next := s.clone()
		next.colors[a.SeriesKey] = a.Color
		return next

	case ActionInitColor:
		if _, ok := s.colors[a.SeriesKey]; ok {
			return s
		}
		color := DefaultColor(a.Index, a.Palette)
		if color == "" {
			return s
		}
		next := s.clone()
		next.colors[a.SeriesKey] = color
		return next

	default:
		return s
	}
}

// ApplyAll applies actions in order.
func ApplyAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Apply(s, a)
	}
	return s
}

// InitColor returns the series color, seeding it from the palette on first
// use. Once seeded the color is stable: later calls return it whatever index
// or palette they pass. An empty palette yields "" and seeds nothing.
func InitColor(s State, seriesKey string, index int, palette []string) (State, string) {
	next := Apply(s, SeedColor(seriesKey, index, palette))
	c, _ := next.Color(seriesKey)
	return next, c
}
