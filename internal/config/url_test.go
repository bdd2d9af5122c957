package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConnection(t *testing.T) {
	conn := Default()
	require.Equal(t, "localhost", conn.Host)
	require.Equal(t, uint16(4455), conn.Port)
	require.NotNil(t, conn.Password)
	require.Equal(t, "secret", *conn.Password)
	require.Equal(t, "ws://localhost:4455", conn.URL())
	require.Equal(t, "localhost:4455", conn.Address())
}

func TestParseURLMatrix(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantErr      error
		wantHost     string
		wantPort     uint16
		wantPassword *string
	}{
		{
			name:     "no path has no password",
			raw:      "obsws://studio.lan:4455",
			wantHost: "studio.lan",
			wantPort: 4455,
		},
		{
			name:         "path becomes password",
			raw:          "obsws://127.0.0.1:4444/hunter2",
			wantHost:     "127.0.0.1",
			wantPort:     4444,
			wantPassword: ptr("hunter2"),
		},
		{
			name:         "further slashes are kept",
			raw:          "obsws://localhost:4455/a/b/c",
			wantHost:     "localhost",
			wantPort:     4455,
			wantPassword: ptr("a/b/c"),
		},
		{
			name:         "bare slash is an empty password",
			raw:          "obsws://localhost:4455/",
			wantHost:     "localhost",
			wantPort:     4455,
			wantPassword: ptr(""),
		},
		{
			name:     "ipv6 host",
			raw:      "obsws://[::1]:4455",
			wantHost: "::1",
			wantPort: 4455,
		},
		{
			name:    "wrong scheme",
			raw:     "ws://localhost:4455/secret",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "not a url",
			raw:     "localhost:4455",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "garbage",
			raw:     "::::",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "missing port",
			raw:     "obsws://localhost",
			wantErr: ErrMissingPort,
		},
		{
			name:    "missing port with password",
			raw:     "obsws://localhost/secret",
			wantErr: ErrMissingPort,
		},
		{
			name:    "port out of range",
			raw:     "obsws://localhost:70000",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "missing host",
			raw:     "obsws://:4455",
			wantErr: ErrInvalidURL,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conn, err := ParseURL(tc.raw)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantHost, conn.Host)
			require.Equal(t, tc.wantPort, conn.Port)
			require.Equal(t, tc.wantPassword, conn.Password)
		})
	}
}

func TestParseURLErrorMessages(t *testing.T) {
	_, err := ParseURL("http://localhost:4455")
	require.EqualError(t, err, "invalid URL format, use the format obsws://hostname:port/password")

	_, err = ParseURL("obsws://localhost")
	require.EqualError(t, err, "please specify a port in the format obsws://hostname:port/password")
}

func TestConnectionURLBracketsIPv6(t *testing.T) {
	conn := Connection{Host: "::1", Port: 4455}
	require.Equal(t, "ws://[::1]:4455", conn.URL())
	require.Equal(t, "[::1]:4455", conn.Address())
	require.False(t, conn.HasPassword())
}

func ptr(s string) *string {
	return &s
}
