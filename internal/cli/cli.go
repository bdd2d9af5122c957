// Package cli turns obsctl argv into a Command and a connection descriptor.
package cli

import (
	"bytes"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rbright/obsctl/internal/config"
	"github.com/rbright/obsctl/internal/version"
)

const BinaryName = "obsctl"

// ErrMissingCommand is returned when argv names no subcommand.
var ErrMissingCommand = errors.New("a subcommand is required")

// Parsed is the outcome of one argv parse.
//
// ShowHelp is set when cobra produced output on its own (help or --version);
// HelpText then holds that output and Command is nil.
type Parsed struct {
	Command    Command
	Connection config.Connection
	Debug      bool
	ShowHelp   bool
	HelpText   string
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Connection: config.Default()}

	var out bytes.Buffer
	root := newRootCommand(BinaryName, &parsed)
	root.SetOut(&out)
	root.SetErr(&out)
	if args == nil {
		// cobra falls back to os.Args on a nil slice
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return Parsed{}, err
	}
	if parsed.Command == nil {
		parsed.ShowHelp = true
		parsed.HelpText = out.String()
	}
	return parsed, nil
}

// HelpText renders top-level usage for error output.
func HelpText(binaryName string) string {
	return newRootCommand(binaryName, &Parsed{}).UsageString()
}

// connectionValue parses --websocket eagerly so a bad URL is a usage error.
type connectionValue struct {
	target *config.Connection
	raw    string
}

var _ pflag.Value = (*connectionValue)(nil)

func (v *connectionValue) String() string { return v.raw }

func (v *connectionValue) Set(s string) error {
	conn, err := config.ParseURL(s)
	if err != nil {
		return err
	}
	*v.target = conn
	v.raw = s
	return nil
}

func (v *connectionValue) Type() string { return "url" }

func newRootCommand(binaryName string, parsed *Parsed) *cobra.Command {
	root := &cobra.Command{
		Use:           binaryName + " [--websocket URL] <command>",
		Short:         "Remote control for OBS Studio over obs-websocket",
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			return ErrMissingCommand
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().VarP(
		&connectionValue{target: &parsed.Connection},
		"websocket", "w",
		"obs-websocket URL obsws://hostname:port/password (default obsws://localhost:4455/secret)",
	)
	root.PersistentFlags().BoolVar(&parsed.Debug, "debug", false, "Record obs-websocket requests in the log file")

	set := func(cmd Command) { parsed.Command = cmd }

	root.AddCommand(
		leaf("info", "Print OBS and obs-websocket version information", cobra.NoArgs, func([]string) Command {
			return Info{}
		}, set),
		leaf("version", "Print obsctl build information", cobra.NoArgs, func([]string) Command {
			return Version{}
		}, set),
		leaf("filter <enable|disable|toggle> <source> <filter>", "Enable, disable, or toggle a source filter", cobra.ExactArgs(3), func(a []string) Command {
			return Filter{Verb: Verb(a[0]), Source: a[1], Filter: a[2]}
		}, set),
		group("scene", "Inspect and switch scenes",
			leaf("preview <name>", "Set the studio mode preview scene", cobra.ExactArgs(1), func(a []string) Command {
				return ScenePreview{Scene: a[0]}
			}, set),
			leaf("get", "Print the current program and preview scenes", cobra.NoArgs, func([]string) Command {
				return SceneGet{}
			}, set),
			leaf("list", "List scenes", cobra.NoArgs, func([]string) Command {
				return SceneList{}
			}, set),
			leaf("switch <name>", "Set the current program scene", cobra.ExactArgs(1), func(a []string) Command {
				return SceneSwitch{Scene: a[0]}
			}, set),
		),
		leaf("scene-collection <placeholder> <name>", "Switch the current scene collection", cobra.ExactArgs(2), func(a []string) Command {
			return SceneCollection{Placeholder: a[0], Collection: a[1]}
		}, set),
		leaf("scene-item <enable|disable|toggle> <scene> <source>", "Enable, disable, or toggle a scene item", cobra.ExactArgs(3), func(a []string) Command {
			return SceneItem{Verb: Verb(a[0]), Scene: a[1], Source: a[2]}
		}, set),
		outputGroup("streaming", "Control streaming",
			[]OutputAction{ActionStart, ActionStop, ActionToggle},
			func(a OutputAction) Command { return Streaming{Action: a} }, set),
		outputGroup("recording", "Control recording",
			[]OutputAction{ActionStart, ActionStop, ActionToggle},
			func(a OutputAction) Command { return Recording{Action: a} }, set),
		outputGroup("replay", "Control the replay buffer",
			[]OutputAction{ActionStart, ActionStop, ActionToggle, ActionSave},
			func(a OutputAction) Command { return ReplayBuffer{Action: a} }, set),
		outputGroup("virtual-camera", "Control the virtual camera",
			[]OutputAction{ActionStart, ActionStop, ActionToggle},
			func(a OutputAction) Command { return VirtualCamera{Action: a} }, set),
		studioModeGroup(set),
		leaf("toggle-mute <device>", "Toggle mute on an input", cobra.ExactArgs(1), func(a []string) Command {
			return ToggleMute{Device: a[0]}
		}, set),
	)
	attachExamples(root, binaryName)

	return root
}

func leaf(use, short string, args cobra.PositionalArgs, build func([]string) Command, set func(Command)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, a []string) error {
			set(build(a))
			return nil
		},
	}
}

// group is a command that only hosts subcommands; bare invocation prints its help.
func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(children...)
	return cmd
}

func outputGroup(use, short string, actions []OutputAction, wrap func(OutputAction) Command, set func(Command)) *cobra.Command {
	children := make([]*cobra.Command, 0, len(actions))
	for _, action := range actions {
		children = append(children, leaf(string(action), outputActionShort[action], cobra.NoArgs, func([]string) Command {
			return wrap(action)
		}, set))
	}
	return group(use, short, children...)
}

var outputActionShort = map[OutputAction]string{
	ActionStart:  "Start the output",
	ActionStop:   "Stop the output",
	ActionToggle: "Toggle the output",
	ActionSave:   "Save the replay buffer to disk",
}

func studioModeGroup(set func(Command)) *cobra.Command {
	short := map[StudioModeAction]string{
		StudioEnable:  "Enable studio mode",
		StudioDisable: "Disable studio mode",
		StudioToggle:  "Toggle studio mode",
		StudioStatus:  "Print whether studio mode is enabled",
	}

	children := make([]*cobra.Command, 0, len(short))
	for _, action := range []StudioModeAction{StudioEnable, StudioDisable, StudioToggle, StudioStatus} {
		children = append(children, leaf(string(action), short[action], cobra.NoArgs, func([]string) Command {
			return StudioMode{Action: action}
		}, set))
	}
	return group("studio-mode", "Control studio mode", children...)
}
