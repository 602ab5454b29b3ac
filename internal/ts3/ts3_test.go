package ts3

import (
	"errors"
	"fmt"
	"testing"
)

func TestUnavailableRefusesEveryCall(t *testing.T) {
	var client Client = Unavailable{}

	calls := []struct {
		name string
		run  func() error
	}{
		{"Init", func() error { return client.Init(InitOptions{}) }},
		{"Shutdown", client.Shutdown},
		{"CreateIdentity", func() error { _, err := client.CreateIdentity(); return err }},
		{"SpawnConnection", func() error { _, err := client.SpawnConnection(); return err }},
		{"DestroyConnection", func() error { return client.DestroyConnection(1) }},
		{"StartConnection", func() error { return client.StartConnection(1, ConnectParams{}) }},
		{"StopConnection", func() error { return client.StopConnection(1, "") }},
		{"DefaultMode", func() error { _, err := client.DefaultMode(Playback); return err }},
		{"DefaultDevice", func() error { _, err := client.DefaultDevice(Capture, ""); return err }},
		{"OpenDevice", func() error { return client.OpenDevice(1, Playback, "", "") }},
		{"CloseDevice", func() error { return client.CloseDevice(1, Capture) }},
		{"ClientID", func() error { _, err := client.ClientID(1); return err }},
		{"RequestClientMove", func() error { return client.RequestClientMove(1, 2, 3, "", "") }},
	}

	for _, call := range calls {
		if err := call.run(); !errors.Is(err, ErrClientLibraryUnavailable) {
			t.Fatalf("%s error = %v, want ErrClientLibraryUnavailable", call.name, err)
		}
	}
}

func TestConnectStatusLabels(t *testing.T) {
	cases := []struct {
		status ConnectStatus
		want   string
	}{
		{StatusDisconnected, "disconnected"},
		{StatusConnecting, "connecting"},
		{StatusConnected, "connected"},
		{StatusConnectionEstablishing, "connection_establishing"},
		{StatusConnectionEstablished, "connection_established"},
		{ConnectStatus(9), "unknown(9)"},
	}
	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Fatalf("status %d label = %q, want %q", int(tc.status), got, tc.want)
		}
	}
}

func TestDeviceKindLabels(t *testing.T) {
	if got := Playback.String(); got != "playback" {
		t.Fatalf("playback label = %q", got)
	}
	if got := Capture.String(); got != "capture" {
		t.Fatalf("capture label = %q", got)
	}
	if got := DeviceKind(7).String(); got != "unknown(7)" {
		t.Fatalf("unknown kind label = %q", got)
	}
}

func TestErrorIncludesCodeAndMessage(t *testing.T) {
	err := &Error{Op: "openPlaybackDevice", Code: ErrorUndefined, Message: "undefined"}
	if got := err.Error(); got != "openPlaybackDevice failed: 1 (undefined)" {
		t.Fatalf("formatted error = %q", got)
	}

	bare := &Error{Op: "startConnection", Code: ErrorCode(0x0b04)}
	if got := bare.Error(); got != "startConnection failed: 2820 (unknown)" {
		t.Fatalf("formatted error without message = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	libErr := &Error{Op: "createIdentity", Code: ErrorClientInvalidID, Message: "invalid clientID"}
	if got := CodeOf(fmt.Errorf("resolve identity: %w", libErr)); got != ErrorClientInvalidID {
		t.Fatalf("CodeOf wrapped library error = %v", got)
	}
	if got := CodeOf(errors.New("plain failure")); got != ErrorUndefined {
		t.Fatalf("CodeOf plain error = %v, want ErrorUndefined", got)
	}
}

func TestErrorCodeLabels(t *testing.T) {
	if !ErrorOK.Ok() {
		t.Fatal("ErrorOK should report ok")
	}
	if ErrorUndefined.Ok() {
		t.Fatal("ErrorUndefined should not report ok")
	}
	if got := ErrorClientNicknameInUse.String(); got != "client_nickname_inuse" {
		t.Fatalf("nickname code label = %q", got)
	}
	if got := ErrorCode(0x0b04).String(); got != "error_0x0b04" {
		t.Fatalf("unknown code label = %q", got)
	}
}
