package cli

// Command is the closed set of obsctl invocations. Only types in this package implement it.
type Command interface {
	Name() string
	isCommand()
}

// Verb is the free-text action of filter and scene-item commands.
// It is validated by the dispatcher, not the parser.
type Verb string

const (
	VerbEnable  Verb = "enable"
	VerbDisable Verb = "disable"
	VerbToggle  Verb = "toggle"
)

func (v Verb) Valid() bool {
	switch v {
	case VerbEnable, VerbDisable, VerbToggle:
		return true
	}
	return false
}

// OutputAction drives recording, streaming, replay buffer, and virtual camera outputs.
type OutputAction string

const (
	ActionStart  OutputAction = "start"
	ActionStop   OutputAction = "stop"
	ActionToggle OutputAction = "toggle"
	ActionSave   OutputAction = "save"
)

type StudioModeAction string

const (
	StudioEnable  StudioModeAction = "enable"
	StudioDisable StudioModeAction = "disable"
	StudioToggle  StudioModeAction = "toggle"
	StudioStatus  StudioModeAction = "status"
)

type Info struct{}

// Version prints build metadata without connecting.
type Version struct{}

type Filter struct {
	Verb   Verb
	Source string
	Filter string
}

type ScenePreview struct {
	Scene string
}

type SceneGet struct{}

type SceneList struct{}

type SceneSwitch struct {
	Scene string
}

// SceneCollection keeps the positional placeholder the CLI requires before the name.
type SceneCollection struct {
	Placeholder string
	Collection  string
}

type SceneItem struct {
	Verb   Verb
	Scene  string
	Source string
}

type Streaming struct {
	Action OutputAction
}

type Recording struct {
	Action OutputAction
}

type ReplayBuffer struct {
	Action OutputAction
}

type VirtualCamera struct {
	Action OutputAction
}

type StudioMode struct {
	Action StudioModeAction
}

type ToggleMute struct {
	Device string
}

func (Info) Name() string            { return "info" }
func (Version) Name() string         { return "version" }
func (Filter) Name() string          { return "filter" }
func (ScenePreview) Name() string    { return "scene preview" }
func (SceneGet) Name() string        { return "scene get" }
func (SceneList) Name() string       { return "scene list" }
func (SceneSwitch) Name() string     { return "scene switch" }
func (SceneCollection) Name() string { return "scene-collection" }
func (SceneItem) Name() string       { return "scene-item" }
func (c Streaming) Name() string     { return "streaming " + string(c.Action) }
func (c Recording) Name() string     { return "recording " + string(c.Action) }
func (c ReplayBuffer) Name() string  { return "replay " + string(c.Action) }
func (c VirtualCamera) Name() string { return "virtual-camera " + string(c.Action) }
func (c StudioMode) Name() string    { return "studio-mode " + string(c.Action) }
func (ToggleMute) Name() string      { return "toggle-mute" }

func (Info) isCommand()            {}
func (Version) isCommand()         {}
func (Filter) isCommand()          {}
func (ScenePreview) isCommand()    {}
func (SceneGet) isCommand()        {}
func (SceneList) isCommand()       {}
func (SceneSwitch) isCommand()     {}
func (SceneCollection) isCommand() {}
func (SceneItem) isCommand()       {}
func (Streaming) isCommand()       {}
func (Recording) isCommand()       {}
func (ReplayBuffer) isCommand()    {}
func (VirtualCamera) isCommand()   {}
func (StudioMode) isCommand()      {}
func (ToggleMute) isCommand()      {}
