package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the RPC server at the given TCP address.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping checks daemon reachability and returns the protocol version.
func (c *Client) Ping() (*PingResponse, error) {
	var resp PingResponse
	if err := c.client.Call("TSVoice.Ping", PingRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts playback of the given track.
func (c *Client) Play(title, sourceURL string) (*CommandResponse, error) {
	var resp CommandResponse
	req := PlayRequest{Title: title, SourceURL: sourceURL}
	if err := c.client.Call("TSVoice.Play", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pause suspends active playback.
func (c *Client) Pause() (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.client.Call("TSVoice.Pause", PauseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Resume continues paused playback.
func (c *Client) Resume() (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.client.Call("TSVoice.Resume", ResumeRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop clears the current track.
func (c *Client) Stop() (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.client.Call("TSVoice.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Skip advances past the current track.
func (c *Client) Skip() (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.client.Call("TSVoice.Skip", SkipRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetVolume adjusts the playback volume.
func (c *Client) SetVolume(percent int) (*CommandResponse, error) {
	var resp CommandResponse
	req := SetVolumeRequest{VolumePercent: percent}
	if err := c.client.Call("TSVoice.SetVolume", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStatus retrieves the playback snapshot.
func (c *Client) GetStatus() (*GetStatusResponse, error) {
	var resp GetStatusResponse
	if err := c.client.Call("TSVoice.GetStatus", GetStatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubscribeEvents requests an event feed. The daemon always rejects it.
func (c *Client) SubscribeEvents(filter string) (*SubscribeEventsResponse, error) {
	var resp SubscribeEventsResponse
	req := SubscribeEventsRequest{Filter: filter}
	if err := c.client.Call("TSVoice.SubscribeEvents", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown asks the daemon to terminate.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.client.Call("TSVoice.Shutdown", ShutdownRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DaemonStatus retrieves daemon runtime information.
func (c *Client) DaemonStatus() (*DaemonStatusResponse, error) {
	var resp DaemonStatusResponse
	if err := c.client.Call("TSVoice.DaemonStatus", DaemonStatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
