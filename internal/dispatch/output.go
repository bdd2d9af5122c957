package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbright/obsctl/internal/cli"
)

// outputControl binds one OBS output to its start/stop/toggle requests.
// The remote toggle is authoritative; obsctl never reads state first.
type outputControl struct {
	// name heads the output ("Recording Start"); label prefixes the
	// started/stopped/toggled line and is empty for outputs that print none.
	name   string
	label  string
	start  func(context.Context) error
	stop   func(context.Context) (any, error)
	toggle func(context.Context) (bool, error)
	save   func(context.Context) error

	// toggleFatal aborts the run when the toggle request fails.
	toggleFatal bool
}

func (d Dispatcher) recording() outputControl {
	return outputControl{
		name:  "Recording",
		label: "Recording",
		start: d.Remote.StartRecord,
		stop: func(ctx context.Context) (any, error) {
			path, err := d.Remote.StopRecord(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]string{"outputPath": path}, nil
		},
		toggle: d.Remote.ToggleRecord,
	}
}

func (d Dispatcher) streaming() outputControl {
	return outputControl{
		name:        "Streaming",
		label:       "Streaming",
		start:       d.Remote.StartStream,
		stop:        noPayload(d.Remote.StopStream),
		toggle:      d.Remote.ToggleStream,
		toggleFatal: true,
	}
}

func (d Dispatcher) replayBuffer() outputControl {
	return outputControl{
		name:        "Replay",
		label:       "Replay Buffer",
		start:       d.Remote.StartReplayBuffer,
		stop:        noPayload(d.Remote.StopReplayBuffer),
		toggle:      d.Remote.ToggleReplayBuffer,
		save:        d.Remote.SaveReplayBuffer,
		toggleFatal: true,
	}
}

func (d Dispatcher) virtualCamera() outputControl {
	return outputControl{
		name:        "VirtualCamera",
		start:       d.Remote.StartVirtualCam,
		stop:        noPayload(d.Remote.StopVirtualCam),
		toggle:      d.Remote.ToggleVirtualCam,
		toggleFatal: true,
	}
}

func noPayload(fn func(context.Context) error) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	}
}

func (d Dispatcher) output(ctx context.Context, o outputControl, action cli.OutputAction) error {
	d.printf("%s %s\n", o.name, titleCase(string(action)))

	switch action {
	case cli.ActionStart:
		err := o.start(ctx)
		d.detail(o, "started")
		d.result(nil, err)
	case cli.ActionStop:
		payload, err := o.stop(ctx)
		d.detail(o, "stopped")
		d.result(payload, err)
	case cli.ActionToggle:
		active, err := o.toggle(ctx)
		if err != nil && o.toggleFatal {
			return fmt.Errorf("toggle %s: %w", o.name, err)
		}
		d.detail(o, "toggled")
		d.result(map[string]bool{"outputActive": active}, err)
	case cli.ActionSave:
		if o.save == nil {
			return fmt.Errorf("%s does not support %q", o.name, action)
		}
		err := o.save(ctx)
		d.println("Buffer saved")
		d.result(nil, err)
	default:
		return fmt.Errorf("unsupported %s action %q", o.name, action)
	}
	return nil
}

func (d Dispatcher) detail(o outputControl, what string) {
	if o.label == "" {
		return
	}
	d.println(o.label + " " + what)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
