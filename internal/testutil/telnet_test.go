package testutil

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func pipeClient(t *testing.T, chunks ...[]byte) *TelnetClient {
	server, client := net.Pipe()
	t.Cleanup(func() { client.Close() })
	go func() {
		defer server.Close()
		for _, chunk := range chunks {
			if _, err := server.Write(chunk); err != nil {
				return
			}
		}
	}()
	return &TelnetClient{conn: client, t: t}
}

func TestTelnetClient_DropsNegotiationSplitAcrossReads(t *testing.T) {
	c := pipeClient(t,
		[]byte{iac},
		[]byte{willByte, 3, 'W', 'e'},
		[]byte("lcome.\r\n[alice]> "),
		[]byte("Selected HAIR kit 5.\r\n[alice]> "),
	)
	assert.Equal(t, "Welcome.\r\n[alice]> ", c.ReadUntil("[alice]> ", time.Second))
	assert.Equal(t, "Selected HAIR kit 5.\r\n[alice]> ", c.ReadToClose(time.Second))
}

func TestTelnetClient_KeepsOutputPastMatch(t *testing.T) {
	c := pipeClient(t, []byte("Undone.\r\n> Redone.\r\n> "))
	assert.Equal(t, "Undone.\r\n> ", c.ReadUntil("> ", time.Second))
	assert.Equal(t, "Redone.\r\n> ", c.ReadUntil("> ", time.Second))
}

func TestTelnetClient_EscapedIAC(t *testing.T) {
	c := pipeClient(t, []byte{'a', iac, iac, 'b', iac, dontByte, 1, 'c'})
	assert.Equal(t, "a\xffbc", c.ReadToClose(time.Second))
}
