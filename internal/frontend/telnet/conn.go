package telnet

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// Telnet command and option bytes (RFC 854, RFC 858).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	GA   byte = 249
	NOP  byte = 241
	SE   byte = 240

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

// MaxLineLength bounds one input line. Bytes past the limit are dropped until
// the line ends.
const MaxLineLength = 1024

const (
	backspace byte = 8
	del       byte = 127
)

// lineReader decodes client input into lines: Telnet commands are skipped,
// backspace and DEL erase, control characters other than tab are dropped.
type lineReader struct {
	r *bufio.Reader
}

// next returns the next line without its terminator. A line ends at CR, LF,
// CR LF, or CR NUL. At end of input the partial line is returned with the error.
func (lr lineReader) next() (string, error) {
	line := make([]byte, 0, 64)
	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			return string(line), err
		}
		switch {
		case b == IAC:
			literal, err := lr.command()
			if err != nil {
				return string(line), err
			}
			if literal && len(line) < MaxLineLength {
				line = append(line, IAC)
			}
		case b == '\n':
			return string(line), nil
		case b == '\r':
			// Only a terminator already received is consumed; peeking further
			// would block a client that sends a bare CR.
			if lr.r.Buffered() > 0 {
				if next, err := lr.r.Peek(1); err == nil && (next[0] == '\n' || next[0] == 0) {
					_, _ = lr.r.ReadByte()
				}
			}
			return string(line), nil
		case b == backspace || b == del:
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
		case b < 32 && b != '\t':
		case len(line) < MaxLineLength:
			line = append(line, b)
		}
	}
}

// command consumes the rest of a command after IAC. literal reports an
// escaped 0xFF data byte.
func (lr lineReader) command() (literal bool, err error) {
	cmd, err := lr.r.ReadByte()
	if err != nil {
		return false, err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = lr.r.ReadByte()
		return false, err
	case SB:
		var prev byte
		for {
			b, err := lr.r.ReadByte()
			if err != nil {
				return false, err
			}
			if prev == IAC && b == SE {
				return false, nil
			}
			// IAC IAC inside a subnegotiation is an escaped data byte.
			if prev == IAC && b == IAC {
				b = 0
			}
			prev = b
		}
	case IAC:
		return true, nil
	}
	return false, nil
}

// Conn is one Telnet client: line input with protocol bytes removed, and
// CRLF-terminated output. Writes are serialized.
type Conn struct {
	raw   net.Conn
	lines lineReader
	mu    sync.Mutex

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw. Zero timeouts disable the corresponding deadline.
//
// Precondition: raw must be a valid, open network connection.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		lines:        lineReader{r: bufio.NewReaderSize(raw, 4096)},
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate offers to suppress go-ahead, so clients send whole lines without
// waiting for GA after each prompt.
func (c *Conn) Negotiate() error {
	return c.write(func(w io.Writer) error {
		_, err := w.Write([]byte{IAC, WILL, OptSuppressGoAhead})
		return err
	})
}

// ReadLine blocks for the next input line. The read timeout applies to the
// whole line.
//
// Postcondition: Returns the next line of text input, or an error (including io.EOF).
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
	return c.lines.next()
}

// WriteLine sends text followed by CRLF.
func (c *Conn) WriteLine(text string) error {
	return c.write(func(w io.Writer) error {
		_, err := io.WriteString(w, text+"\r\n")
		return err
	})
}

// WriteText sends multi-line text, translating each \n into \r\n.
//
// Postcondition: Every line of text is written followed by \r\n; empty text writes nothing.
func (c *Conn) WriteText(text string) error {
	if text == "" {
		return nil
	}
	return c.WriteLine(strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "\r\n"))
}

// WritePrompt sends prompt without a line terminator.
func (c *Conn) WritePrompt(prompt string) error {
	return c.write(func(w io.Writer) error {
		_, err := io.WriteString(w, prompt)
		return err
	})
}

func (c *Conn) write(fn func(io.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return fn(c.raw)
}

// Close closes the underlying TCP connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
