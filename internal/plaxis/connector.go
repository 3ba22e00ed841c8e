package plaxis

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// Connector launches the modeler executable and waits for its remote
// scripting server to accept connections. Readiness is established by
// polling the server port rather than sleeping for a fixed interval.
type Connector struct {
	ExePath  string
	Host     string
	Port     int
	Password string

	// ConnectTimeout bounds the whole readiness wait. PollInterval is the
	// delay between connection attempts. Zero values take the defaults
	// below.
	ConnectTimeout time.Duration
	PollInterval   time.Duration

	Log zerolog.Logger
}

const (
	defaultConnectTimeout = 60 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
)

func (c *Connector) addr() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	return net.JoinHostPort(host, fmt.Sprint(c.Port))
}

// Launch starts the modeler process with the remote scripting server
// enabled. The process is detached from ctx only in the sense that it keeps
// running after Launch returns; ctx bounds the start itself.
func (c *Connector) Launch(ctx context.Context) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, c.ExePath,
		fmt.Sprintf("--AppServerPassword=%s", c.Password),
		fmt.Sprintf("--AppServerPort=%d", c.Port),
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch modeler: %w", err)
	}
	c.Log.Info().Str("exe", c.ExePath).Int("port", c.Port).Msg("modeler launched")
	return cmd, nil
}

// WaitReady polls the scripting server port until it accepts a TCP
// connection, ctx is done, or the connect timeout elapses.
func (c *Connector) WaitReady(ctx context.Context) error {
	timeout := c.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	interval := c.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := c.addr()
	var lastErr error
	for attempt := 1; ; attempt++ {
		d := net.Dialer{Timeout: interval}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			c.Log.Info().Str("addr", addr).Int("attempts", attempt).Msg("modeler ready")
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return fmt.Errorf("modeler at %s not ready after %s: %w", addr, timeout, lastErr)
		case <-time.After(interval):
		}
	}
}
