package ts3

import "fmt"

// ConnectStatus mirrors the connection states delivered through
// onConnectStatusChangeEvent in the client library.
type ConnectStatus int

const (
	StatusDisconnected           ConnectStatus = 0
	StatusConnecting             ConnectStatus = 1
	StatusConnected              ConnectStatus = 2
	StatusConnectionEstablishing ConnectStatus = 3
	StatusConnectionEstablished  ConnectStatus = 4
)

// String returns a human-readable label for the connect status.
func (s ConnectStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusConnectionEstablishing:
		return "connection_establishing"
	case StatusConnectionEstablished:
		return "connection_established"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
