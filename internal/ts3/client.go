package ts3

import "fmt"

// Handle identifies one server connection owned by the client library.
// Zero is never a valid handle.
type Handle uint64

// DeviceKind selects between the two audio directions.
type DeviceKind int

const (
	Playback DeviceKind = iota
	Capture
)

// String returns a human-readable label for the device kind.
func (k DeviceKind) String() string {
	switch k {
	case Playback:
		return "playback"
	case Capture:
		return "capture"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Device is one audio device reported by the client library.
type Device struct {
	ID   string
	Name string
}

// Callbacks receives events raised by the client library. Events arrive
// on library-owned threads; nil members are skipped.
type Callbacks struct {
	ConnectStatusChanged func(handle Handle, status ConnectStatus, errorCode ErrorCode)
	TextMessage          func(handle Handle, targetMode int, fromName, fromUID, message string)
	ServerError          func(handle Handle, errorCode ErrorCode, message, returnCode, extra string)
}

// InitOptions configures client library startup. LogDir receives the
// library's own log files, ResourceDir points at its soundbackends.
type InitOptions struct {
	LogDir      string
	ResourceDir string
	Callbacks   Callbacks
}

// ConnectParams describes one connection attempt.
type ConnectParams struct {
	Identity        string
	Host            string
	Port            int
	Nickname        string
	ChannelPath     []string
	ChannelPassword string
	ServerPassword  string
}

// Client is the behaviour the session layer requires from the
// TeamSpeak client library.
type Client interface {
	// Init starts the library. It must be called once before any other
	// method and balanced by Shutdown.
	Init(opts InitOptions) error
	// Shutdown releases the library after all connections are destroyed.
	Shutdown() error

	// CreateIdentity generates a fresh client identity string.
	CreateIdentity() (string, error)

	// SpawnConnection allocates a server connection handler.
	SpawnConnection() (Handle, error)
	// DestroyConnection releases a handler obtained from SpawnConnection.
	DestroyConnection(handle Handle) error
	// StartConnection begins connecting asynchronously. Progress is
	// reported through Callbacks.ConnectStatusChanged.
	StartConnection(handle Handle, params ConnectParams) error
	// StopConnection disconnects, announcing quitMessage to the server.
	StopConnection(handle Handle, quitMessage string) error

	// DefaultMode returns the library's default mode for the kind.
	DefaultMode(kind DeviceKind) (string, error)
	// DefaultDevice returns the default device for a mode.
	DefaultDevice(kind DeviceKind, mode string) (Device, error)
	// OpenDevice opens an audio device on a connection. Empty mode and
	// device select the system default.
	OpenDevice(handle Handle, kind DeviceKind, mode, device string) error
	// CloseDevice closes the open device of the given kind, if any.
	CloseDevice(handle Handle, kind DeviceKind) error

	// ClientID returns our own client ID once a connection is established.
	ClientID(handle Handle) (uint16, error)
	// RequestClientMove asks the server to move a client into a channel.
	// returnCode is echoed back through Callbacks.ServerError.
	RequestClientMove(handle Handle, clientID uint16, channelID uint64, channelPassword, returnCode string) error
}

// Unavailable is the Client installed when the native library is not
// part of the build. Every call fails with ErrClientLibraryUnavailable;
// callers treat the failing Init as a degraded start.
type Unavailable struct{}

func (Unavailable) Init(InitOptions) error { return ErrClientLibraryUnavailable }

func (Unavailable) Shutdown() error { return ErrClientLibraryUnavailable }

func (Unavailable) CreateIdentity() (string, error) { return "", ErrClientLibraryUnavailable }

func (Unavailable) SpawnConnection() (Handle, error) { return 0, ErrClientLibraryUnavailable }

func (Unavailable) DestroyConnection(Handle) error { return ErrClientLibraryUnavailable }

func (Unavailable) StartConnection(Handle, ConnectParams) error { return ErrClientLibraryUnavailable }

func (Unavailable) StopConnection(Handle, string) error { return ErrClientLibraryUnavailable }

func (Unavailable) DefaultMode(DeviceKind) (string, error) { return "", ErrClientLibraryUnavailable }

func (Unavailable) DefaultDevice(DeviceKind, string) (Device, error) {
	return Device{}, ErrClientLibraryUnavailable
}

func (Unavailable) OpenDevice(Handle, DeviceKind, string, string) error {
	return ErrClientLibraryUnavailable
}

func (Unavailable) CloseDevice(Handle, DeviceKind) error { return ErrClientLibraryUnavailable }

func (Unavailable) ClientID(Handle) (uint16, error) { return 0, ErrClientLibraryUnavailable }

func (Unavailable) RequestClientMove(Handle, uint16, uint64, string, string) error {
	return ErrClientLibraryUnavailable
}

var _ Client = Unavailable{}
