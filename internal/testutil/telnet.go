// Package testutil provides helpers for integration tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"
)

// Telnet command bytes the outfit server may send.
const (
	iac      byte = 255
	willByte byte = 251
	dontByte byte = 254
)

type decodeState int

const (
	stateData decodeState = iota
	stateCommand
	stateOption
)

// TelnetClient drives the outfit shell over Telnet in tests. Negotiation
// commands from the server are dropped from everything it returns, and
// output read past a match is kept for the next read.
type TelnetClient struct {
	conn    net.Conn
	t       testing.TB
	pending []byte
	state   decodeState
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t testing.TB, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil returns the server output up to and including substr.
//
// Precondition: substr must be non-empty.
// Postcondition: Fails the test if substr does not arrive within timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	tmp := make([]byte, 1024)
	for {
		if i := bytes.Index(c.pending, []byte(substr)); i >= 0 {
			return c.take(i + len(substr))
		}
		n, err := c.conn.Read(tmp)
		c.decode(tmp[:n])
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, c.pending, err)
		}
	}
}

// ReadToClose returns everything the server sends until it closes the
// connection.
//
// Postcondition: Fails the test if the connection stays open past timeout.
func (c *TelnetClient) ReadToClose(timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	tmp := make([]byte, 1024)
	for {
		n, err := c.conn.Read(tmp)
		c.decode(tmp[:n])
		if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
			return c.take(len(c.pending))
		}
		if err != nil {
			c.t.Fatalf("waiting for close: got %q, error: %v", c.pending, err)
		}
	}
}

// Send writes a line of text to the server, appending \r\n.
//
// Precondition: text should not contain trailing newline characters.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Command sends a shell command and returns its reply: everything the server
// wrote before the next prompt.
//
// Precondition: prompt must be non-empty.
func (c *TelnetClient) Command(text, prompt string, timeout time.Duration) string {
	c.t.Helper()
	c.Send(text)
	return strings.TrimSuffix(c.ReadUntil(prompt, timeout), prompt)
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}

func (c *TelnetClient) take(n int) string {
	out := string(c.pending[:n])
	c.pending = append([]byte(nil), c.pending[n:]...)
	return out
}

// decode appends data to pending without Telnet commands. A command split
// across reads is finished on the next call.
func (c *TelnetClient) decode(data []byte) {
	for _, b := range data {
		switch c.state {
		case stateData:
			if b == iac {
				c.state = stateCommand
				continue
			}
			c.pending = append(c.pending, b)
		case stateCommand:
			c.state = stateData
			switch {
			case b == iac:
				c.pending = append(c.pending, b)
			case b >= willByte && b <= dontByte:
				c.state = stateOption
			}
		case stateOption:
			c.state = stateData
		}
	}
}
