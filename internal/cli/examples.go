package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Example pairs an argument vector with the Command it parses to.
type Example struct {
	Args    []string
	Command Command
}

// Examples lists one invocation for every leaf command of the tree.
func Examples() []Example {
	return []Example{
		{Args: []string{"info"}, Command: Info{}},
		{Args: []string{"version"}, Command: Version{}},
		{
			Args:    []string{"filter", "toggle", "Camera", "Color Correction"},
			Command: Filter{Verb: VerbToggle, Source: "Camera", Filter: "Color Correction"},
		},
		{Args: []string{"scene", "preview", "Intro"}, Command: ScenePreview{Scene: "Intro"}},
		{Args: []string{"scene", "get"}, Command: SceneGet{}},
		{Args: []string{"scene", "list"}, Command: SceneList{}},
		{Args: []string{"scene", "switch", "Live"}, Command: SceneSwitch{Scene: "Live"}},
		{
			Args:    []string{"scene-collection", "switch", "Podcast"},
			Command: SceneCollection{Placeholder: "switch", Collection: "Podcast"},
		},
		{
			Args:    []string{"scene-item", "disable", "Main", "Webcam"},
			Command: SceneItem{Verb: VerbDisable, Scene: "Main", Source: "Webcam"},
		},
		{Args: []string{"streaming", "start"}, Command: Streaming{Action: ActionStart}},
		{Args: []string{"streaming", "stop"}, Command: Streaming{Action: ActionStop}},
		{Args: []string{"streaming", "toggle"}, Command: Streaming{Action: ActionToggle}},
		{Args: []string{"recording", "start"}, Command: Recording{Action: ActionStart}},
		{Args: []string{"recording", "stop"}, Command: Recording{Action: ActionStop}},
		{Args: []string{"recording", "toggle"}, Command: Recording{Action: ActionToggle}},
		{Args: []string{"replay", "start"}, Command: ReplayBuffer{Action: ActionStart}},
		{Args: []string{"replay", "stop"}, Command: ReplayBuffer{Action: ActionStop}},
		{Args: []string{"replay", "toggle"}, Command: ReplayBuffer{Action: ActionToggle}},
		{Args: []string{"replay", "save"}, Command: ReplayBuffer{Action: ActionSave}},
		{Args: []string{"virtual-camera", "start"}, Command: VirtualCamera{Action: ActionStart}},
		{Args: []string{"virtual-camera", "stop"}, Command: VirtualCamera{Action: ActionStop}},
		{Args: []string{"virtual-camera", "toggle"}, Command: VirtualCamera{Action: ActionToggle}},
		{Args: []string{"studio-mode", "enable"}, Command: StudioMode{Action: StudioEnable}},
		{Args: []string{"studio-mode", "disable"}, Command: StudioMode{Action: StudioDisable}},
		{Args: []string{"studio-mode", "toggle"}, Command: StudioMode{Action: StudioToggle}},
		{Args: []string{"studio-mode", "status"}, Command: StudioMode{Action: StudioStatus}},
		{Args: []string{"toggle-mute", "Mic/Aux"}, Command: ToggleMute{Device: "Mic/Aux"}},
	}
}

// attachExamples fills each leaf's cobra Example from Examples.
func attachExamples(root *cobra.Command, binaryName string) {
	for _, ex := range Examples() {
		cmd, _, err := root.Find(ex.Args)
		if err != nil || cmd == root || cmd.Example != "" {
			continue
		}
		cmd.Example = "  " + binaryName + " " + shellJoin(ex.Args)
	}
}

func shellJoin(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = strconv.Quote(arg)
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
