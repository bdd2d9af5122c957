// Package dispatch maps one parsed command onto obs-websocket calls and prints the outcome.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/tidwall/pretty"

	"github.com/rbright/obsctl/internal/cli"
	"github.com/rbright/obsctl/internal/version"
)

// Dispatcher runs a single command against Remote and writes line-oriented output to Out.
type Dispatcher struct {
	Remote Remote
	Out    io.Writer
	Logger *slog.Logger
}

// NeedsRemote reports whether cmd requires an obs-websocket connection.
func NeedsRemote(cmd cli.Command) bool {
	_, local := cmd.(cli.Version)
	return !local
}

// Run executes cmd. A returned error is fatal for the process; failures of
// plain action calls are printed as results and Run returns nil.
func (d Dispatcher) Run(ctx context.Context, cmd cli.Command) error {
	if cmd == nil {
		return fmt.Errorf("no command to run")
	}
	d.logger().Debug("dispatch", "command", cmd.Name())

	switch c := cmd.(type) {
	case cli.Version:
		d.println(version.String())
		return nil
	case cli.Info:
		return d.info(ctx)
	case cli.ScenePreview:
		err := d.Remote.SetCurrentPreviewScene(ctx, c.Scene)
		d.printf("Switched preview to scene: %q\n", c.Scene)
		d.result(nil, err)
		return nil
	case cli.SceneGet:
		return d.sceneGet(ctx)
	case cli.SceneList:
		return d.sceneList(ctx)
	case cli.SceneSwitch:
		err := d.Remote.SetCurrentProgramScene(ctx, c.Scene)
		d.printf("Switched to scene: %s\n", c.Scene)
		d.result(nil, err)
		return nil
	case cli.SceneCollection:
		err := d.Remote.SetCurrentSceneCollection(ctx, c.Collection)
		d.printf("Set current scene collection: %s %s\n", c.Placeholder, c.Collection)
		d.result(nil, err)
		return nil
	case cli.StudioMode:
		return d.studioMode(ctx, c.Action)
	case cli.Recording:
		return d.output(ctx, d.recording(), c.Action)
	case cli.Streaming:
		return d.output(ctx, d.streaming(), c.Action)
	case cli.ReplayBuffer:
		return d.output(ctx, d.replayBuffer(), c.Action)
	case cli.VirtualCamera:
		return d.output(ctx, d.virtualCamera(), c.Action)
	case cli.ToggleMute:
		d.printf("Toggling mute on device: %q\n", c.Device)
		muted, err := d.Remote.ToggleInputMute(ctx, c.Device)
		d.result(map[string]bool{"inputMuted": muted}, err)
		return nil
	case cli.Filter:
		return d.filter(ctx, c)
	case cli.SceneItem:
		return d.sceneItem(ctx, c)
	default:
		return fmt.Errorf("unsupported command %q", cmd.Name())
	}
}

func (d Dispatcher) info(ctx context.Context) error {
	v, err := d.Remote.Version(ctx)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode version: %w", err)
	}
	d.printf("Version: %s", pretty.Pretty(body))
	return nil
}

// sceneGet reports program and preview together. The preview query fails
// while studio mode is off; that case reports an empty preview.
func (d Dispatcher) sceneGet(ctx context.Context) error {
	program, err := d.Remote.CurrentProgramScene(ctx)
	if err != nil {
		return fmt.Errorf("get current program scene: %w", err)
	}

	preview, err := d.Remote.CurrentPreviewScene(ctx)
	if err != nil {
		d.logger().Debug("preview scene unavailable", "error", err.Error())
		preview = ""
	}

	body, err := json.Marshal(map[string]string{
		"program": program,
		"preview": preview,
	})
	if err != nil {
		return fmt.Errorf("encode scenes: %w", err)
	}
	d.printf("Scenes: %s\n", body)
	return nil
}

func (d Dispatcher) sceneList(ctx context.Context) error {
	list, err := d.Remote.SceneList(ctx)
	if err != nil {
		return fmt.Errorf("get scene list: %w", err)
	}
	body, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode scene list: %w", err)
	}
	d.printf("Scenes: %s\n", body)
	return nil
}

func (d Dispatcher) studioMode(ctx context.Context, action cli.StudioModeAction) error {
	switch action {
	case cli.StudioEnable:
		err := d.Remote.SetStudioModeEnabled(ctx, true)
		d.println("Enable Studio Mode")
		d.result(nil, err)
	case cli.StudioDisable:
		err := d.Remote.SetStudioModeEnabled(ctx, false)
		d.println("Disable Studio Mode")
		d.result(nil, err)
	case cli.StudioToggle:
		// Read then write; a change made by another client in between is overwritten.
		enabled, err := d.Remote.StudioModeEnabled(ctx)
		if err != nil {
			return fmt.Errorf("get studio mode: %w", err)
		}
		if err := d.Remote.SetStudioModeEnabled(ctx, !enabled); err != nil {
			return fmt.Errorf("set studio mode: %w", err)
		}
		state := "Enabled"
		if enabled {
			state = "Disabled"
		}
		d.printf("Toggle Studio Mode: %s\n", state)
		d.result(nil, nil)
	case cli.StudioStatus:
		enabled, err := d.Remote.StudioModeEnabled(ctx)
		if err != nil {
			return fmt.Errorf("get studio mode: %w", err)
		}
		d.printf("Studio Mode: %t\n", enabled)
	default:
		return fmt.Errorf("unsupported studio-mode action %q", action)
	}
	return nil
}

func (d Dispatcher) filter(ctx context.Context, c cli.Filter) error {
	d.printf("Filter: %q %q %q\n", c.Verb, c.Source, c.Filter)
	if !c.Verb.Valid() {
		d.printf("Invalid filter command: %s\n", c.Verb)
		return nil
	}

	enabled, err := targetState(ctx, c.Verb, func(ctx context.Context) (bool, error) {
		f, err := d.Remote.SourceFilter(ctx, c.Source, c.Filter)
		return f.FilterEnabled, err
	})
	if err != nil {
		return fmt.Errorf("get filter %q on %q: %w", c.Filter, c.Source, err)
	}

	err = d.Remote.SetSourceFilterEnabled(ctx, c.Source, c.Filter, enabled)
	d.result(nil, err)
	return nil
}

func (d Dispatcher) sceneItem(ctx context.Context, c cli.SceneItem) error {
	d.printf("Scene Item: %q %q %q\n", c.Verb, c.Scene, c.Source)
	if !c.Verb.Valid() {
		d.printf("Invalid scene item command: %s\n", c.Verb)
		return nil
	}

	itemID, err := d.Remote.SceneItemID(ctx, c.Scene, c.Source)
	if err != nil {
		return fmt.Errorf("resolve scene item %q in scene %q: %w", c.Source, c.Scene, err)
	}

	enabled, err := targetState(ctx, c.Verb, func(ctx context.Context) (bool, error) {
		return d.Remote.SceneItemEnabled(ctx, c.Scene, itemID)
	})
	if err != nil {
		return fmt.Errorf("get scene item %d in scene %q: %w", itemID, c.Scene, err)
	}

	err = d.Remote.SetSceneItemEnabled(ctx, c.Scene, itemID, enabled)
	d.result(nil, err)
	return nil
}

// targetState resolves the enabled state a verb asks for. Toggle reads the
// current state first and is not atomic with the write that follows.
func targetState(ctx context.Context, verb cli.Verb, read func(context.Context) (bool, error)) (bool, error) {
	switch verb {
	case cli.VerbEnable:
		return true, nil
	case cli.VerbDisable:
		return false, nil
	case cli.VerbToggle:
		current, err := read(ctx)
		if err != nil {
			return false, err
		}
		return !current, nil
	}
	return false, fmt.Errorf("invalid verb %q", verb)
}

func (d Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

func (d Dispatcher) printf(format string, args ...any) {
	fmt.Fprintf(d.Out, format, args...)
}

func (d Dispatcher) println(args ...any) {
	fmt.Fprintln(d.Out, args...)
}

// result prints the outcome of a non-fatal remote call.
func (d Dispatcher) result(payload any, err error) {
	if err != nil {
		d.logger().Warn("remote call failed", "error", err.Error())
	}
	d.printf("Result: %s\n", formatResult(payload, err))
}
