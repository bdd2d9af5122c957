package dispatch

import (
	"context"

	"github.com/rbright/obsctl/internal/obsws"
)

// Remote is the obs-websocket surface the dispatcher drives. *obsws.Client satisfies it.
type Remote interface {
	Version(ctx context.Context) (obsws.Version, error)

	CurrentProgramScene(ctx context.Context) (string, error)
	CurrentPreviewScene(ctx context.Context) (string, error)
	SetCurrentProgramScene(ctx context.Context, scene string) error
	SetCurrentPreviewScene(ctx context.Context, scene string) error
	SceneList(ctx context.Context) (obsws.SceneList, error)
	SetCurrentSceneCollection(ctx context.Context, name string) error

	StudioModeEnabled(ctx context.Context) (bool, error)
	SetStudioModeEnabled(ctx context.Context, enabled bool) error

	StartRecord(ctx context.Context) error
	StopRecord(ctx context.Context) (string, error)
	ToggleRecord(ctx context.Context) (bool, error)

	StartStream(ctx context.Context) error
	StopStream(ctx context.Context) error
	ToggleStream(ctx context.Context) (bool, error)

	StartReplayBuffer(ctx context.Context) error
	StopReplayBuffer(ctx context.Context) error
	ToggleReplayBuffer(ctx context.Context) (bool, error)
	SaveReplayBuffer(ctx context.Context) error

	StartVirtualCam(ctx context.Context) error
	StopVirtualCam(ctx context.Context) error
	ToggleVirtualCam(ctx context.Context) (bool, error)

	SourceFilter(ctx context.Context, source, filter string) (obsws.SourceFilter, error)
	SetSourceFilterEnabled(ctx context.Context, source, filter string, enabled bool) error

	SceneItemID(ctx context.Context, scene, source string) (int, error)
	SceneItemEnabled(ctx context.Context, scene string, itemID int) (bool, error)
	SetSceneItemEnabled(ctx context.Context, scene string, itemID int, enabled bool) error

	ToggleInputMute(ctx context.Context, input string) (bool, error)
}

var _ Remote = (*obsws.Client)(nil)
