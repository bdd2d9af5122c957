package obsws

import (
	"context"

	obsconfig "github.com/andreykaipov/goobs/api/requests/config"
	"github.com/andreykaipov/goobs/api/requests/filters"
	"github.com/andreykaipov/goobs/api/requests/inputs"
	"github.com/andreykaipov/goobs/api/requests/sceneitems"
	"github.com/andreykaipov/goobs/api/requests/scenes"
	"github.com/andreykaipov/goobs/api/requests/ui"
)

// Version is the GetVersion response.
type Version struct {
	OBSVersion            string   `json:"obsVersion"`
	OBSWebSocketVersion   string   `json:"obsWebSocketVersion"`
	RPCVersion            int      `json:"rpcVersion"`
	AvailableRequests     []string `json:"availableRequests"`
	SupportedImageFormats []string `json:"supportedImageFormats"`
	Platform              string   `json:"platform"`
	PlatformDescription   string   `json:"platformDescription"`
}

// Scene is one entry of GetSceneList.
type Scene struct {
	SceneName  string `json:"sceneName"`
	SceneIndex int    `json:"sceneIndex"`
	SceneUUID  string `json:"sceneUuid,omitempty"`
}

// SceneList is the GetSceneList response. The preview name is empty outside studio mode.
type SceneList struct {
	CurrentProgramSceneName string  `json:"currentProgramSceneName"`
	CurrentPreviewSceneName string  `json:"currentPreviewSceneName"`
	Scenes                  []Scene `json:"scenes"`
}

// SourceFilter is the GetSourceFilter response.
type SourceFilter struct {
	FilterEnabled  bool           `json:"filterEnabled"`
	FilterIndex    int            `json:"filterIndex"`
	FilterKind     string         `json:"filterKind"`
	FilterSettings map[string]any `json:"filterSettings"`
}

func (c *Client) Version(ctx context.Context) (Version, error) {
	var v Version
	err := c.do(ctx, "GetVersion", func() error {
		resp, err := c.obs.General.GetVersion()
		if err != nil {
			return err
		}
		return convert(resp, &v)
	})
	return v, err
}

func (c *Client) CurrentProgramScene(ctx context.Context) (string, error) {
	var name string
	err := c.do(ctx, "GetCurrentProgramScene", func() error {
		resp, err := c.obs.Scenes.GetCurrentProgramScene()
		if err != nil {
			return err
		}
		name = resp.CurrentProgramSceneName
		return nil
	})
	return name, err
}

// CurrentPreviewScene fails while studio mode is off.
func (c *Client) CurrentPreviewScene(ctx context.Context) (string, error) {
	var name string
	err := c.do(ctx, "GetCurrentPreviewScene", func() error {
		resp, err := c.obs.Scenes.GetCurrentPreviewScene()
		if err != nil {
			return err
		}
		name = resp.CurrentPreviewSceneName
		return nil
	})
	return name, err
}

func (c *Client) SetCurrentProgramScene(ctx context.Context, scene string) error {
	return c.do(ctx, "SetCurrentProgramScene", func() error {
		_, err := c.obs.Scenes.SetCurrentProgramScene(scenes.NewSetCurrentProgramSceneParams().WithSceneName(scene))
		return err
	})
}

func (c *Client) SetCurrentPreviewScene(ctx context.Context, scene string) error {
	return c.do(ctx, "SetCurrentPreviewScene", func() error {
		_, err := c.obs.Scenes.SetCurrentPreviewScene(scenes.NewSetCurrentPreviewSceneParams().WithSceneName(scene))
		return err
	})
}

func (c *Client) SceneList(ctx context.Context) (SceneList, error) {
	var list SceneList
	err := c.do(ctx, "GetSceneList", func() error {
		resp, err := c.obs.Scenes.GetSceneList()
		if err != nil {
			return err
		}
		return convert(resp, &list)
	})
	return list, err
}

func (c *Client) SetCurrentSceneCollection(ctx context.Context, name string) error {
	return c.do(ctx, "SetCurrentSceneCollection", func() error {
		_, err := c.obs.Config.SetCurrentSceneCollection(obsconfig.NewSetCurrentSceneCollectionParams().WithSceneCollectionName(name))
		return err
	})
}

func (c *Client) StudioModeEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := c.do(ctx, "GetStudioModeEnabled", func() error {
		resp, err := c.obs.Ui.GetStudioModeEnabled()
		if err != nil {
			return err
		}
		enabled = resp.StudioModeEnabled
		return nil
	})
	return enabled, err
}

func (c *Client) SetStudioModeEnabled(ctx context.Context, enabled bool) error {
	return c.do(ctx, "SetStudioModeEnabled", func() error {
		_, err := c.obs.Ui.SetStudioModeEnabled(ui.NewSetStudioModeEnabledParams().WithStudioModeEnabled(enabled))
		return err
	})
}

func (c *Client) StartRecord(ctx context.Context) error {
	return c.do(ctx, "StartRecord", func() error {
		_, err := c.obs.Record.StartRecord()
		return err
	})
}

// StopRecord returns the path of the finished recording.
func (c *Client) StopRecord(ctx context.Context) (string, error) {
	var path string
	err := c.do(ctx, "StopRecord", func() error {
		resp, err := c.obs.Record.StopRecord()
		if err != nil {
			return err
		}
		path = resp.OutputPath
		return nil
	})
	return path, err
}

func (c *Client) ToggleRecord(ctx context.Context) (bool, error) {
	return c.toggleOutput(ctx, "ToggleRecord", func() (any, error) {
		return c.obs.Record.ToggleRecord()
	})
}

func (c *Client) StartStream(ctx context.Context) error {
	return c.do(ctx, "StartStream", func() error {
		_, err := c.obs.Stream.StartStream()
		return err
	})
}

func (c *Client) StopStream(ctx context.Context) error {
	return c.do(ctx, "StopStream", func() error {
		_, err := c.obs.Stream.StopStream()
		return err
	})
}

func (c *Client) ToggleStream(ctx context.Context) (bool, error) {
	return c.toggleOutput(ctx, "ToggleStream", func() (any, error) {
		return c.obs.Stream.ToggleStream()
	})
}

func (c *Client) StartReplayBuffer(ctx context.Context) error {
	return c.do(ctx, "StartReplayBuffer", func() error {
		_, err := c.obs.Outputs.StartReplayBuffer()
		return err
	})
}

func (c *Client) StopReplayBuffer(ctx context.Context) error {
	return c.do(ctx, "StopReplayBuffer", func() error {
		_, err := c.obs.Outputs.StopReplayBuffer()
		return err
	})
}

func (c *Client) ToggleReplayBuffer(ctx context.Context) (bool, error) {
	return c.toggleOutput(ctx, "ToggleReplayBuffer", func() (any, error) {
		return c.obs.Outputs.ToggleReplayBuffer()
	})
}

func (c *Client) SaveReplayBuffer(ctx context.Context) error {
	return c.do(ctx, "SaveReplayBuffer", func() error {
		_, err := c.obs.Outputs.SaveReplayBuffer()
		return err
	})
}

func (c *Client) StartVirtualCam(ctx context.Context) error {
	return c.do(ctx, "StartVirtualCam", func() error {
		_, err := c.obs.Outputs.StartVirtualCam()
		return err
	})
}

func (c *Client) StopVirtualCam(ctx context.Context) error {
	return c.do(ctx, "StopVirtualCam", func() error {
		_, err := c.obs.Outputs.StopVirtualCam()
		return err
	})
}

func (c *Client) ToggleVirtualCam(ctx context.Context) (bool, error) {
	return c.toggleOutput(ctx, "ToggleVirtualCam", func() (any, error) {
		return c.obs.Outputs.ToggleVirtualCam()
	})
}

// toggleOutput issues a native output toggle and returns the resulting active state.
func (c *Client) toggleOutput(ctx context.Context, requestType string, fn func() (any, error)) (bool, error) {
	var state struct {
		OutputActive bool `json:"outputActive"`
	}
	err := c.do(ctx, requestType, func() error {
		resp, err := fn()
		if err != nil {
			return err
		}
		return convert(resp, &state)
	})
	return state.OutputActive, err
}

func (c *Client) SourceFilter(ctx context.Context, source, filter string) (SourceFilter, error) {
	var out SourceFilter
	err := c.do(ctx, "GetSourceFilter", func() error {
		resp, err := c.obs.Filters.GetSourceFilter(filters.NewGetSourceFilterParams().
			WithSourceName(source).
			WithFilterName(filter))
		if err != nil {
			return err
		}
		return convert(resp, &out)
	})
	return out, err
}

func (c *Client) SetSourceFilterEnabled(ctx context.Context, source, filter string, enabled bool) error {
	return c.do(ctx, "SetSourceFilterEnabled", func() error {
		_, err := c.obs.Filters.SetSourceFilterEnabled(filters.NewSetSourceFilterEnabledParams().
			WithSourceName(source).
			WithFilterName(filter).
			WithFilterEnabled(enabled))
		return err
	})
}

// SceneItemID resolves a (scene, source) pair to its numeric scene item id.
func (c *Client) SceneItemID(ctx context.Context, scene, source string) (int, error) {
	var resp struct {
		SceneItemID int `json:"sceneItemId"`
	}
	err := c.do(ctx, "GetSceneItemId", func() error {
		out, err := c.obs.SceneItems.GetSceneItemId(sceneitems.NewGetSceneItemIdParams().
			WithSceneName(scene).
			WithSourceName(source))
		if err != nil {
			return err
		}
		return convert(out, &resp)
	})
	return resp.SceneItemID, err
}

// SceneItemEnabled and SetSceneItemEnabled build their params through convert
// so sceneItemId takes whatever numeric type goobs declares.
func (c *Client) SceneItemEnabled(ctx context.Context, scene string, itemID int) (bool, error) {
	var enabled bool
	err := c.do(ctx, "GetSceneItemEnabled", func() error {
		var params sceneitems.GetSceneItemEnabledParams
		if err := convert(map[string]any{"sceneName": scene, "sceneItemId": itemID}, &params); err != nil {
			return err
		}
		resp, err := c.obs.SceneItems.GetSceneItemEnabled(&params)
		if err != nil {
			return err
		}
		enabled = resp.SceneItemEnabled
		return nil
	})
	return enabled, err
}

func (c *Client) SetSceneItemEnabled(ctx context.Context, scene string, itemID int, enabled bool) error {
	return c.do(ctx, "SetSceneItemEnabled", func() error {
		var params sceneitems.SetSceneItemEnabledParams
		if err := convert(map[string]any{
			"sceneName":        scene,
			"sceneItemId":      itemID,
			"sceneItemEnabled": enabled,
		}, &params); err != nil {
			return err
		}
		_, err := c.obs.SceneItems.SetSceneItemEnabled(&params)
		return err
	})
}

// ToggleInputMute flips the mute state of an input and returns the new state.
func (c *Client) ToggleInputMute(ctx context.Context, input string) (bool, error) {
	var muted bool
	err := c.do(ctx, "ToggleInputMute", func() error {
		resp, err := c.obs.Inputs.ToggleInputMute(inputs.NewToggleInputMuteParams().WithInputName(input))
		if err != nil {
			return err
		}
		muted = resp.InputMuted
		return nil
	})
	return muted, err
}
