package obsws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/obsctl/internal/obsws/obswstest"
)

func dial(t *testing.T, srv *obswstest.Server, password *string) *Client {
	t.Helper()

	c, err := Dial(context.Background(), DialConfig{Address: srv.Addr, Password: password})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func strptr(s string) *string { return &s }

func requestData(t *testing.T, call obswstest.Call) map[string]any {
	t.Helper()

	var data map[string]any
	require.NoError(t, json.Unmarshal(call.Data, &data))
	return data
}

func TestDialWithoutAuthentication(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	srv.Respond("GetVersion", map[string]any{"obsVersion": "30.2.0", "rpcVersion": 1})

	c := dial(t, srv, nil)
	v, err := c.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "30.2.0", v.OBSVersion)
	require.Equal(t, 1, v.RPCVersion)
}

func TestDialAuthenticates(t *testing.T) {
	srv := obswstest.NewServer("secret")
	defer srv.Close()
	srv.Respond("GetStudioModeEnabled", map[string]any{"studioModeEnabled": true})

	c := dial(t, srv, strptr("secret"))
	enabled, err := c.StudioModeEnabled(context.Background())
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestDialWrongPassword(t *testing.T) {
	srv := obswstest.NewServer("secret")
	defer srv.Close()

	_, err := Dial(context.Background(), DialConfig{Address: srv.Addr, Password: strptr("guess")})
	require.Error(t, err)
	require.Empty(t, srv.Calls())
}

func TestDialEmptyAddress(t *testing.T) {
	_, err := Dial(context.Background(), DialConfig{Address: "  "})
	require.Error(t, err)
}

func TestDialUnreachable(t *testing.T) {
	srv := obswstest.NewServer("")
	addr := srv.Addr
	srv.Close()

	_, err := Dial(context.Background(), DialConfig{Address: addr})
	require.Error(t, err)
}

func TestDialHonorsCanceledContext(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Dial(ctx, DialConfig{Address: srv.Addr})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestsSendParams(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	for _, requestType := range []string{
		"SetCurrentProgramScene",
		"SetCurrentPreviewScene",
		"SetCurrentSceneCollection",
		"SetStudioModeEnabled",
		"SetSourceFilterEnabled",
		"SetSceneItemEnabled",
	} {
		srv.Respond(requestType, nil)
	}

	c := dial(t, srv, nil)
	ctx := context.Background()
	require.NoError(t, c.SetCurrentProgramScene(ctx, "Live"))
	require.NoError(t, c.SetCurrentPreviewScene(ctx, "Intro"))
	require.NoError(t, c.SetCurrentSceneCollection(ctx, "Podcast"))
	require.NoError(t, c.SetStudioModeEnabled(ctx, false))
	require.NoError(t, c.SetSourceFilterEnabled(ctx, "Camera", "Blur", true))
	require.NoError(t, c.SetSceneItemEnabled(ctx, "Main", 4, false))

	calls := srv.Calls()
	require.Len(t, calls, 6)
	require.Equal(t, "Live", requestData(t, calls[0])["sceneName"])
	require.Equal(t, "Intro", requestData(t, calls[1])["sceneName"])
	require.Equal(t, "Podcast", requestData(t, calls[2])["sceneCollectionName"])
	require.Equal(t, false, requestData(t, calls[3])["studioModeEnabled"])

	filter := requestData(t, calls[4])
	require.Equal(t, "Camera", filter["sourceName"])
	require.Equal(t, "Blur", filter["filterName"])
	require.Equal(t, true, filter["filterEnabled"])

	item := requestData(t, calls[5])
	require.Equal(t, "Main", item["sceneName"])
	require.EqualValues(t, 4, item["sceneItemId"])
	require.Equal(t, false, item["sceneItemEnabled"])
}

func TestSceneQueries(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	srv.Respond("GetCurrentProgramScene", map[string]any{"currentProgramSceneName": "Live"})
	srv.Respond("GetCurrentPreviewScene", map[string]any{"currentPreviewSceneName": "Intro"})
	srv.Respond("GetSceneList", map[string]any{
		"currentProgramSceneName": "Live",
		"currentPreviewSceneName": "",
		"scenes": []map[string]any{
			{"sceneName": "Live", "sceneIndex": 1},
			{"sceneName": "Intro", "sceneIndex": 0},
		},
	})

	c := dial(t, srv, nil)
	ctx := context.Background()

	program, err := c.CurrentProgramScene(ctx)
	require.NoError(t, err)
	require.Equal(t, "Live", program)

	preview, err := c.CurrentPreviewScene(ctx)
	require.NoError(t, err)
	require.Equal(t, "Intro", preview)

	list, err := c.SceneList(ctx)
	require.NoError(t, err)
	require.Equal(t, "Live", list.CurrentProgramSceneName)
	require.Equal(t, []Scene{{SceneName: "Live", SceneIndex: 1}, {SceneName: "Intro", SceneIndex: 0}}, list.Scenes)
}

func TestRequestFailureNamesRequestType(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	srv.Fail("GetCurrentPreviewScene", obswstest.StatusStudioModeNotActive, "Studio mode is not active.")

	c := dial(t, srv, nil)
	_, err := c.CurrentPreviewScene(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "GetCurrentPreviewScene")
}

func TestUnknownRequestTypeFails(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()

	c := dial(t, srv, nil)
	err := c.StartRecord(context.Background())
	require.Error(t, err)
	require.Equal(t, []string{"StartRecord"}, srv.RequestTypes())
}

func TestRequestHonorsCanceledContext(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	srv.Respond("StartStream", nil)

	c := dial(t, srv, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.StartStream(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, srv.Calls())
}

func TestToggleWrappersReturnOutputState(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	for _, requestType := range []string{"ToggleRecord", "ToggleStream", "ToggleReplayBuffer", "ToggleVirtualCam"} {
		srv.Respond(requestType, map[string]any{"outputActive": true})
	}

	c := dial(t, srv, nil)
	ctx := context.Background()
	for _, toggle := range []func(context.Context) (bool, error){
		c.ToggleRecord,
		c.ToggleStream,
		c.ToggleReplayBuffer,
		c.ToggleVirtualCam,
	} {
		active, err := toggle(ctx)
		require.NoError(t, err)
		require.True(t, active)
	}
	require.Equal(t, []string{"ToggleRecord", "ToggleStream", "ToggleReplayBuffer", "ToggleVirtualCam"}, srv.RequestTypes())
}

func TestOutputActions(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	for _, requestType := range []string{
		"StartRecord", "StartStream", "StopStream",
		"StartReplayBuffer", "StopReplayBuffer", "SaveReplayBuffer",
		"StartVirtualCam", "StopVirtualCam",
	} {
		srv.Respond(requestType, nil)
	}
	srv.Respond("StopRecord", map[string]any{"outputPath": "/videos/take1.mkv"})

	c := dial(t, srv, nil)
	ctx := context.Background()
	require.NoError(t, c.StartRecord(ctx))
	path, err := c.StopRecord(ctx)
	require.NoError(t, err)
	require.Equal(t, "/videos/take1.mkv", path)
	require.NoError(t, c.StartStream(ctx))
	require.NoError(t, c.StopStream(ctx))
	require.NoError(t, c.StartReplayBuffer(ctx))
	require.NoError(t, c.StopReplayBuffer(ctx))
	require.NoError(t, c.SaveReplayBuffer(ctx))
	require.NoError(t, c.StartVirtualCam(ctx))
	require.NoError(t, c.StopVirtualCam(ctx))

	require.Equal(t, []string{
		"StartRecord", "StopRecord", "StartStream", "StopStream",
		"StartReplayBuffer", "StopReplayBuffer", "SaveReplayBuffer",
		"StartVirtualCam", "StopVirtualCam",
	}, srv.RequestTypes())
}

func TestFilterAndSceneItemQueries(t *testing.T) {
	srv := obswstest.NewServer("")
	defer srv.Close()
	srv.Respond("GetSourceFilter", map[string]any{"filterEnabled": true, "filterIndex": 2, "filterKind": "color_filter"})
	srv.Respond("GetSceneItemId", map[string]any{"sceneItemId": 7})
	srv.Respond("GetSceneItemEnabled", map[string]any{"sceneItemEnabled": true})
	srv.Respond("ToggleInputMute", map[string]any{"inputMuted": true})

	c := dial(t, srv, nil)
	ctx := context.Background()

	f, err := c.SourceFilter(ctx, "Camera", "Blur")
	require.NoError(t, err)
	require.True(t, f.FilterEnabled)
	require.Equal(t, 2, f.FilterIndex)

	id, err := c.SceneItemID(ctx, "Main", "Webcam")
	require.NoError(t, err)
	require.Equal(t, 7, id)

	enabled, err := c.SceneItemEnabled(ctx, "Main", id)
	require.NoError(t, err)
	require.True(t, enabled)

	muted, err := c.ToggleInputMute(ctx, "Mic/Aux")
	require.NoError(t, err)
	require.True(t, muted)

	calls := srv.Calls()
	require.Len(t, calls, 4)
	lookup := requestData(t, calls[1])
	require.Equal(t, "Main", lookup["sceneName"])
	require.Equal(t, "Webcam", lookup["sourceName"])
	require.EqualValues(t, 7, requestData(t, calls[2])["sceneItemId"])
	require.Equal(t, "Mic/Aux", requestData(t, calls[3])["inputName"])
}
