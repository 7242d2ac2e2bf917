package command

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// Shell executes text commands against one swap Manager and its host.
// It performs no I/O of its own; callers feed it lines and print the replies.
type Shell struct {
	registry *Registry
	swaps    *swap.Manager
	host     *session.Manager
	catalog  *catalog.Registry
	logger   *zap.Logger
	swatch   func(colorful.Color) string
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithSwatch renders a sample of each palette color next to its name in "show".
func WithSwatch(render func(colorful.Color) string) ShellOption {
	return func(s *Shell) {
		s.swatch = render
	}
}

// NewShell creates a Shell using the built-in command set.
//
// Precondition: swaps, host, cat, and logger must be non-nil.
// Postcondition: Returns a Shell ready to Execute lines.
func NewShell(swaps *swap.Manager, host *session.Manager, cat *catalog.Registry, logger *zap.Logger, opts ...ShellOption) *Shell {
	s := &Shell{
		registry: DefaultRegistry(),
		swaps:    swaps,
		host:     host,
		catalog:  cat,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the command registry the shell dispatches through.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Execute runs one input line.
//
// Postcondition: Returns the reply to print (possibly empty) and whether the
// caller should end the session.
func (s *Shell) Execute(line string) (reply string, quit bool) {
	parsed, err := Parse(line)
	if err != nil {
		return fmt.Sprintf("Could not read that: %v.", err), false
	}
	if parsed.Command == "" {
		return "", false
	}
	cmd, ok := s.registry.Resolve(parsed.Command)
	if !ok {
		return fmt.Sprintf("Unknown command %q. Type 'help' for a list.", parsed.Command), false
	}
	s.logger.Debug("shell command",
		zap.String("command", cmd.Name),
		zap.Strings("args", parsed.Args),
	)

	switch cmd.Handler {
	case HandlerItem, HandlerKit, HandlerColor:
		t, msg := parseTarget(cmd.Handler, parsed.Args, true)
		if msg != "" {
			return msg, false
		}
		return HandleSelect(s.swaps, t), false
	case HandlerSelect:
		t, msg := parseKindTarget(parsed.Args, true)
		if msg != "" {
			return msg, false
		}
		return HandleSelect(s.swaps, t), false
	case HandlerHover:
		t, msg := parseKindTarget(parsed.Args, true)
		if msg != "" {
			return msg, false
		}
		return HandleHover(s.swaps, t), false
	case HandlerAway:
		if !s.swaps.Hovering() {
			return "Nothing is being previewed.", false
		}
		s.swaps.HoverAway()
		return "Preview discarded.", false
	case HandlerLock:
		t, msg := parseKindTarget(parsed.Args, false)
		if msg != "" {
			return msg, false
		}
		return HandleLock(s.swaps, t), false
	case HandlerShuffle:
		return HandleShuffle(s.swaps), false
	case HandlerUndo:
		return HandleUndo(s.swaps), false
	case HandlerRedo:
		return HandleRedo(s.swaps), false
	case HandlerRevert:
		return HandleRevert(s.swaps, parsed.Args), false
	case HandlerImport:
		return HandleImport(s.swaps, parsed.Path()), false
	case HandlerExport:
		return HandleExport(s.swaps, parsed.Path()), false
	case HandlerCopy:
		return HandleCopy(s.swaps, s.host, parsed.Path()), false
	case HandlerEquip:
		return HandleEquip(s.host, s.swaps, parsed.Args), false
	case HandlerUnequip:
		return HandleUnequip(s.host, s.swaps, parsed.Args), false
	case HandlerLogin:
		return HandleLogin(s.host, s.swaps, parsed.Path()), false
	case HandlerShow:
		return HandleShow(s.swaps, s.host, s.catalog, s.swatch), false
	case HandlerHelp:
		return s.registry.HelpText(), false
	case HandlerQuit:
		return "Goodbye.", true
	default:
		return fmt.Sprintf("You don't know how to %q.", parsed.Command), false
	}
}
