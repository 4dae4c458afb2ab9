package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/dpiwatch/internal/runtimepath"
)

const defaultClientTimeout = 5 * time.Second

// Client queries a running watcher over its unix socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithSocketPath points the client at a socket other than the runtime default.
func WithSocketPath(path string) ClientOption {
	return func(c *Client) { c.socketPath = path }
}

// WithTimeout bounds dialing and the whole exchange.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a client for the watcher's socket. A socket path that
// cannot be resolved surfaces as a connection error on first use.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{timeout: defaultClientTimeout}
	if path, err := runtimepath.SocketPath(); err == nil {
		c.socketPath = path
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetStatus returns the watched window's DPI state.
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetMonitors returns the watcher's view of the monitor layout.
func (c *Client) GetMonitors() (*MonitorsData, error) {
	var monitors MonitorsData
	if err := c.call(CommandGetMonitors, &monitors); err != nil {
		return nil, err
	}
	return &monitors, nil
}

// call sends one command and decodes the response data into out.
func (c *Client) call(cmd CommandType, out any) error {
	resp, err := c.roundTrip(&Request{Command: cmd})
	if err != nil {
		return err
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", cmd, err)
	}
	return nil
}

func (c *Client) roundTrip(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to watcher: %w (is 'dpiwatch watch' running?)", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Command, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Command, err)
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("malformed %s response: %w", req.Command, err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("watcher error: %s", resp.Error)
	}
	return &resp, nil
}
