package session

import (
	"path/filepath"
	"sync"
	"testing"

	"tsvoice/internal/config"
	"tsvoice/internal/ts3"
)

type openRecord struct {
	kind   ts3.DeviceKind
	mode   string
	device string
}

type moveRecord struct {
	handle     ts3.Handle
	clientID   uint16
	channelID  uint64
	password   string
	returnCode string
}

// fakeClient is a scriptable backend used across the session tests.
// Error fields are set before Start and left alone afterwards.
type fakeClient struct {
	mu sync.Mutex

	initErr     error
	identity    string
	identityErr error
	handle      ts3.Handle
	spawnErr    error
	startErr    error

	modes     map[ts3.DeviceKind]string
	modeErr   map[ts3.DeviceKind]error
	devices   map[ts3.DeviceKind]ts3.Device
	deviceErr map[ts3.DeviceKind]error
	openErr   func(kind ts3.DeviceKind, mode, device string) error

	clientID    uint16
	clientIDErr error
	moveErr     error

	callbacks ts3.Callbacks

	calls     []string
	opens     []openRecord
	moves     []moveRecord
	params    ts3.ConnectParams
	stops     []string
	closes    []ts3.DeviceKind
	destroys  []ts3.Handle
	shutdowns int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		identity: "fake-identity",
		handle:   ts3.Handle(77),
		clientID: 42,
		modes: map[ts3.DeviceKind]string{
			ts3.Playback: "alsa",
			ts3.Capture:  "alsa",
		},
		devices: map[ts3.DeviceKind]ts3.Device{
			ts3.Playback: {ID: "pb-id", Name: "Speakers"},
			ts3.Capture:  {ID: "cap-id", Name: "Microphone"},
		},
		modeErr:   map[ts3.DeviceKind]error{},
		deviceErr: map[ts3.DeviceKind]error{},
	}
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if call == name {
			count++
		}
	}
	return count
}

func (f *fakeClient) Init(opts ts3.InitOptions) error {
	f.record("Init")
	f.mu.Lock()
	f.callbacks = opts.Callbacks
	f.mu.Unlock()
	return f.initErr
}

func (f *fakeClient) Shutdown() error {
	f.record("Shutdown")
	f.mu.Lock()
	f.shutdowns++
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) CreateIdentity() (string, error) {
	f.record("CreateIdentity")
	if f.identityErr != nil {
		return "", f.identityErr
	}
	return f.identity, nil
}

func (f *fakeClient) SpawnConnection() (ts3.Handle, error) {
	f.record("SpawnConnection")
	if f.spawnErr != nil {
		return 0, f.spawnErr
	}
	return f.handle, nil
}

func (f *fakeClient) DestroyConnection(handle ts3.Handle) error {
	f.record("DestroyConnection")
	f.mu.Lock()
	f.destroys = append(f.destroys, handle)
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) StartConnection(handle ts3.Handle, params ts3.ConnectParams) error {
	f.record("StartConnection")
	f.mu.Lock()
	f.params = params
	f.mu.Unlock()
	return f.startErr
}

func (f *fakeClient) StopConnection(handle ts3.Handle, quitMessage string) error {
	f.record("StopConnection")
	f.mu.Lock()
	f.stops = append(f.stops, quitMessage)
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) DefaultMode(kind ts3.DeviceKind) (string, error) {
	f.record("DefaultMode:" + kind.String())
	if err := f.modeErr[kind]; err != nil {
		return "", err
	}
	return f.modes[kind], nil
}

func (f *fakeClient) DefaultDevice(kind ts3.DeviceKind, mode string) (ts3.Device, error) {
	f.record("DefaultDevice:" + kind.String())
	if err := f.deviceErr[kind]; err != nil {
		return ts3.Device{}, err
	}
	return f.devices[kind], nil
}

func (f *fakeClient) OpenDevice(handle ts3.Handle, kind ts3.DeviceKind, mode, device string) error {
	f.record("OpenDevice:" + kind.String())
	f.mu.Lock()
	f.opens = append(f.opens, openRecord{kind: kind, mode: mode, device: device})
	f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr(kind, mode, device)
	}
	return nil
}

func (f *fakeClient) CloseDevice(handle ts3.Handle, kind ts3.DeviceKind) error {
	f.record("CloseDevice:" + kind.String())
	f.mu.Lock()
	f.closes = append(f.closes, kind)
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) ClientID(handle ts3.Handle) (uint16, error) {
	f.record("ClientID")
	if f.clientIDErr != nil {
		return 0, f.clientIDErr
	}
	return f.clientID, nil
}

func (f *fakeClient) RequestClientMove(handle ts3.Handle, clientID uint16, channelID uint64, channelPassword, returnCode string) error {
	f.record("RequestClientMove")
	f.mu.Lock()
	f.moves = append(f.moves, moveRecord{
		handle:     handle,
		clientID:   clientID,
		channelID:  channelID,
		password:   channelPassword,
		returnCode: returnCode,
	})
	f.mu.Unlock()
	return f.moveErr
}

var _ ts3.Client = (*fakeClient)(nil)

// testConfig returns a config rooted in a per-test temp dir with a
// configured identity, so Start never needs to generate one unless a
// test clears it.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Server.Identity = "configured-identity"
	cfg.Server.IdentityFile = filepath.Join(dir, "identity.txt")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.ResourceDir = filepath.Join(dir, "sdk")
	return &cfg
}
