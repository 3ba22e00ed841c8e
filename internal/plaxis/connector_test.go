package plaxis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitReadyConnects(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	c := &Connector{
		Host:           "127.0.0.1",
		Port:           port,
		ConnectTimeout: 2 * time.Second,
		PollInterval:   20 * time.Millisecond,
		Log:            zerolog.Nop(),
	}
	assert.NoError(t, c.WaitReady(context.Background()))
}

func TestWaitReadyTimesOut(t *testing.T) {
	// Reserve a port, then close it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	c := &Connector{
		Host:           "127.0.0.1",
		Port:           port,
		ConnectTimeout: 150 * time.Millisecond,
		PollInterval:   20 * time.Millisecond,
		Log:            zerolog.Nop(),
	}
	start := time.Now()
	err = c.WaitReady(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestWaitReadyHonorsCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Connector{
		Host:           "127.0.0.1",
		Port:           port,
		ConnectTimeout: 10 * time.Second,
		PollInterval:   20 * time.Millisecond,
		Log:            zerolog.Nop(),
	}
	assert.Error(t, c.WaitReady(ctx))
}
