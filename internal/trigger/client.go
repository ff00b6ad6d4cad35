package trigger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const clientTimeout = 3 * time.Second

// Client sends single commands to a running daemon's trigger socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the given socket path.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    clientTimeout,
	}
}

// Send delivers one command and waits for its response. data is
// marshalled into the request's data field when non-nil. A response
// with Success=false is not an error here; transport failures are.
func (c *Client) Send(cmd string, data any) (*Response, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode request data: %w", err)
		}
		raw = encoded
	}

	payload, err := json.Marshal(Request{Cmd: cmd, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon at %s (is keytune running?): %w", c.socketPath, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("set socket deadline: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return DecodeResponse(line)
}
