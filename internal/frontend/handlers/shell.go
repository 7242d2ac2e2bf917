// Package handlers runs the outfit shell over line-oriented connections.
package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/frontend/telnet"
	"github.com/cory-johannsen/fashionscape/internal/game/workspace"
)

// Terminal is a line-oriented client connection.
type Terminal interface {
	ReadLine() (string, error)
	// WriteText writes a possibly multi-line reply; empty text writes nothing.
	WriteText(text string) error
	WritePrompt(prompt string) error
}

// RunShell reads commands from term and executes them in w until the client
// quits, input ends, or ctx is cancelled.
//
// Precondition: term and w must be non-nil; prompt renders the prompt for a username.
// Postcondition: Returns nil on quit or end of input, ctx.Err() on cancellation,
// or a wrapped I/O error.
func RunShell(ctx context.Context, term Terminal, w *workspace.Workspace, prompt func(username string) string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name, _ := w.Host.ActiveUsername()
		if err := term.WritePrompt(prompt(name)); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		line, err := term.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		reply, quit := w.Shell.Execute(line)
		if err := term.WriteText(reply); err != nil {
			return fmt.Errorf("writing reply: %w", err)
		}
		if quit {
			return nil
		}
	}
}

// PlainPrompt renders "[username]> ".
func PlainPrompt(username string) string {
	return fmt.Sprintf("[%s]> ", username)
}

// ColorPrompt renders PlainPrompt in bright cyan.
func ColorPrompt(username string) string {
	return telnet.Colorize(telnet.BrightCyan, PlainPrompt(username))
}

// Opener opens a fresh Workspace for one client.
type Opener func() (*workspace.Workspace, error)

// ShellHandler serves the outfit shell to Telnet clients. Every connection
// edits its own Workspace; nothing is shared between clients but the catalog.
type ShellHandler struct {
	open   Opener
	logger *zap.Logger
}

// NewShellHandler creates a ShellHandler.
//
// Precondition: open and logger must be non-nil.
func NewShellHandler(open Opener, logger *zap.Logger) *ShellHandler {
	return &ShellHandler{open: open, logger: logger}
}

// HandleSession implements telnet.SessionHandler.
func (h *ShellHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	w, err := h.open()
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Could not open a workspace. Goodbye."))
		return fmt.Errorf("opening workspace: %w", err)
	}
	defer w.Close()

	h.logger.Info("shell session started", zap.String("remote_addr", conn.RemoteAddr().String()))
	_ = conn.WriteLine(telnet.Colorize(telnet.BrightWhite, "Fashionscape outfit shell.") + " Type 'help' for commands.")
	return RunShell(ctx, highlighted{conn}, w, ColorPrompt)
}

// highlighted colors the shell's status marks on their way to the client.
type highlighted struct {
	*telnet.Conn
}

func (h highlighted) WriteText(text string) error {
	return h.Conn.WriteText(telnet.HighlightMarks(text))
}

// stdio adapts a reader and writer, typically a terminal, to Terminal.
type stdio struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdioTerminal returns a Terminal reading lines from in and writing to out.
func NewStdioTerminal(in io.Reader, out io.Writer) Terminal {
	return &stdio{in: bufio.NewReader(in), out: out}
}

func (s *stdio) ReadLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *stdio) WriteText(text string) error {
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(s.out, strings.TrimRight(text, "\n"))
	return err
}

func (s *stdio) WritePrompt(prompt string) error {
	_, err := fmt.Fprint(s.out, prompt)
	return err
}
