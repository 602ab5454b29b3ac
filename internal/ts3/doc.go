// Package ts3 defines the narrow surface of the TeamSpeak 3 client
// library consumed by the session layer.
//
// The real library is a proprietary native dependency that is not
// present in every build or environment. Code that needs voice
// connectivity talks to the Client interface; builds without the
// library install Unavailable, whose failing Init drops the daemon
// into command handling without a voice backend.
package ts3
