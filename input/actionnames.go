package input

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Cvaniak/NoteSH/canvas"
	"github.com/Cvaniak/NoteSH/core"
	"github.com/Cvaniak/NoteSH/drawable"
)

// NudgeStep is how far one nudge moves a color channel
const NudgeStep = 10

// action is a registered action with its default help text
type action struct {
	intent Intent
	label  string
}

// actionRegistry maps canonical action names to intents
// Used by the keymap loader to resolve TOML action names
var actionRegistry map[string]action

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]action {
	r := map[string]action{
		// Unbind sentinel
		"none": {},

		"quit":            {Intent{Type: IntentQuit}, "Quit"},
		"save":            {Intent{Type: IntentSave}, "Save"},
		"reload":          {Intent{Type: IntentReload}, "Reload"},
		"toggle_help":     {Intent{Type: IntentToggleHelp}, "Help"},
		"background_next": {Intent{Type: IntentBackgroundNext}, "Background"},

		"add_note":     {Intent{Type: IntentAdd, Kind: drawable.KindNote}, "Add Note"},
		"add_box":      {Intent{Type: IntentAdd, Kind: drawable.KindBox}, "Add Box"},
		"add_drawable": {Intent{Type: IntentAdd, Kind: drawable.KindPlain}, "Add Panel"},
		"delete":       {Intent{Type: IntentDelete}, "Delete"},
		"edit":         {Intent{Type: IntentEdit}, "Edit"},
		"unfocus":      {Intent{Type: IntentUnfocus}, "Unfocus"},
		"focus_next":   {Intent{Type: IntentFocusNext}, "Next"},
		"focus_prev":   {Intent{Type: IntentFocusPrev}, "Previous"},

		"bring_forward":  {Intent{Type: IntentBringForward}, "To Front"},
		"bring_backward": {Intent{Type: IntentBringBackward}, "To Back"},

		"resize_h_plus":  {Intent{Type: IntentResize, Resize: core.Size{Width: 1}}, "Wider"},
		"resize_h_minus": {Intent{Type: IntentResize, Resize: core.Size{Width: -1}}, "Narrower"},
		"resize_v_plus":  {Intent{Type: IntentResize, Resize: core.Size{Height: 1}}, "Taller"},
		"resize_v_minus": {Intent{Type: IntentResize, Resize: core.Size{Height: -1}}, "Shorter"},
		"cycle_border":   {Intent{Type: IntentCycleBorder}, "Border"},

		"color_target": {Intent{Type: IntentColorTarget}, "Color Target"},
		"random_color": {Intent{Type: IntentRandomColor}, "Random Color"},
	}

	for _, dir := range []canvas.Direction{canvas.DirUp, canvas.DirDown, canvas.DirLeft, canvas.DirRight} {
		r["move_"+dir.String()] = action{
			Intent{Type: IntentMove, Direction: dir, Magnitude: 1},
			"Move " + dir.String(),
		}
	}

	channels := []struct {
		name string
		ch   drawable.Channel
	}{{"r", drawable.ChannelR}, {"g", drawable.ChannelG}, {"b", drawable.ChannelB}}
	for _, c := range channels {
		r["nudge_"+c.name+"_up"] = action{
			Intent{Type: IntentNudge, Channel: c.ch, Delta: NudgeStep},
			strings.ToUpper(c.name) + "+",
		}
		r["nudge_"+c.name+"_down"] = action{
			Intent{Type: IntentNudge, Channel: c.ch, Delta: -NudgeStep},
			strings.ToUpper(c.name) + "-",
		}
	}
	return r
}

// lookupAction resolves a canonical name
// move_<dir>_<N> is accepted for any positive N
func lookupAction(name string) (action, bool) {
	if a, ok := actionRegistry[name]; ok {
		return a, true
	}
	rest, ok := strings.CutPrefix(name, "move_")
	if !ok {
		return action{}, false
	}
	dirName, n, ok := strings.Cut(rest, "_")
	if !ok {
		return action{}, false
	}
	dir, ok := canvas.ParseDirection(dirName)
	if !ok {
		return action{}, false
	}
	magnitude, err := strconv.Atoi(n)
	if err != nil || magnitude < 1 {
		return action{}, false
	}
	return action{
		Intent{Type: IntentMove, Direction: dir, Magnitude: magnitude},
		fmt.Sprintf("Move %s %d", dir, magnitude),
	}, true
}

// ActionIntent resolves a canonical action name to its intent
// Returns false if name is unknown
func ActionIntent(name string) (Intent, bool) {
	a, ok := lookupAction(name)
	return a.intent, ok
}

// IsActionName returns true if name is a registered action
func IsActionName(name string) bool {
	_, ok := lookupAction(name)
	return ok
}

// ActionNames returns all fixed action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
