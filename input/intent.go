package input

import (
	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Application
	IntentQuit
	IntentSave
	IntentReload
	IntentToggleHelp
	IntentBackgroundNext

	// Scene
	IntentAdd // Kind
	IntentDelete
	IntentEdit
	IntentUnfocus
	IntentFocusNext
	IntentFocusPrev

	// Focused drawable
	IntentMove // Direction, Magnitude
	IntentBringForward
	IntentBringBackward
	IntentResize // Resize
	IntentCycleBorder

	// Color
	IntentColorTarget
	IntentNudge // Channel, Delta
	IntentRandomColor
)

var intentNames = [...]string{
	IntentNone:           "none",
	IntentQuit:           "quit",
	IntentSave:           "save",
	IntentReload:         "reload",
	IntentToggleHelp:     "toggle_help",
	IntentBackgroundNext: "background_next",
	IntentAdd:            "add",
	IntentDelete:         "delete",
	IntentEdit:           "edit",
	IntentUnfocus:        "unfocus",
	IntentFocusNext:      "focus_next",
	IntentFocusPrev:      "focus_prev",
	IntentMove:           "move",
	IntentBringForward:   "bring_forward",
	IntentBringBackward:  "bring_backward",
	IntentResize:         "resize",
	IntentCycleBorder:    "cycle_border",
	IntentColorTarget:    "color_target",
	IntentNudge:          "nudge",
	IntentRandomColor:    "random_color",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a resolved key binding, payload fields are meaningful for their type only
type Intent struct {
	Type IntentType

	Kind      drawable.Kind    // IntentAdd
	Direction canvas.Direction // IntentMove
	Magnitude int              // IntentMove
	Resize    core.Size        // IntentResize
	Channel   drawable.Channel // IntentNudge
	Delta     int              // IntentNudge
}
