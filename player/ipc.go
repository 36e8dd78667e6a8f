package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"
)

const (
	ipcRetries     = 3
	ipcRetryDelay  = 100 * time.Millisecond
	ipcDialTimeout = 250 * time.Millisecond
	ipcDeadline    = time.Second
)

type ipcRequest struct {
	Command []any `json:"command"`
}

type ipcReply struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
	Event string `json:"event"`
}

// ipcClient talks to mpv's --input-ipc-server socket, one connection per command.
type ipcClient struct {
	socketPath string
	mu         sync.Mutex
}

// call sends a command, retrying transient connection failures.
func (c *ipcClient) call(command ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < ipcRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		data, err := c.callOnce(command)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", ipcRetries, lastErr)
}

// probe is a single attempt with no retries, used by state polling.
func (c *ipcClient) probe(command ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callOnce(command)
}

func (c *ipcClient) callOnce(command []any) (any, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, ipcDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(ipcRequest{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(ipcDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	// mpv may interleave asynchronous events with the reply; skip them.
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply ipcReply
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}
		if reply.Event != "" {
			continue
		}
		if reply.Error != "" && reply.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", reply.Error)
		}
		return reply.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("read: connection closed without reply")
}
