// Package workspace wires one outfit-editing session: an in-memory host with
// its registered characters, the swap Manager for the active character, and
// the command Shell driving both.
package workspace

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/command"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// Deps are the collaborators shared by every Workspace.
type Deps struct {
	Catalog *catalog.Registry
	Scorer  *colors.Scorer
	Options swap.Options
	// NewSource returns the randomness source of one Workspace. Sources are
	// not shared because seeded sources are not safe for concurrent use.
	NewSource   func() dice.Source
	EventBuffer int
	Logger      *zap.Logger
}

// Workspace is one character-editing session.
type Workspace struct {
	Host  *session.Manager
	Swaps *swap.Manager
	Shell *command.Shell

	logger *zap.Logger
	done   chan struct{}
}

// Open registers players, logs the first one in, and starts its swap Manager.
//
// Precondition: deps must have every field set; players must be non-empty.
// Postcondition: On success the caller must Close the Workspace.
func Open(deps Deps, players []*session.Player, opts ...command.ShellOption) (*Workspace, error) {
	if len(players) == 0 {
		return nil, errors.New("workspace: Open: no players")
	}
	host := session.NewManager(deps.Catalog)
	for _, p := range players {
		if err := host.AddPlayer(p); err != nil {
			return nil, fmt.Errorf("workspace: Open: %w", err)
		}
	}
	active := players[0].Username
	if err := host.Login(active); err != nil {
		return nil, fmt.Errorf("workspace: Open: %w", err)
	}

	logger := deps.Logger.With(zap.String("workspace", active))
	swaps := swap.NewManager(host, deps.Catalog, deps.Scorer, deps.NewSource(), deps.Options, logger)
	w := &Workspace{
		Host:   host,
		Swaps:  swaps,
		Shell:  command.NewShell(swaps, host, deps.Catalog, logger, opts...),
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.logEvents(swaps.Subscribe(deps.EventBuffer))

	swaps.OnUsernameChanged(active)
	swaps.StartUp()
	logger.Info("workspace opened",
		zap.Int("players", host.PlayerCount()),
		zap.Stringer("intelligence", deps.Options.Intelligence),
	)
	return w, nil
}

func (w *Workspace) logEvents(events <-chan swap.Event) {
	defer close(w.done)
	for e := range events {
		switch e.Kind {
		case swap.UndoDepthChanged, swap.RedoDepthChanged:
			w.logger.Debug("history changed",
				zap.Stringer("kind", e.Kind),
				zap.Int("depth", e.Depth),
			)
		case swap.ColorChanged:
			w.logger.Debug("saved color changed",
				zap.Stringer("type", e.ColorType),
				zap.Int("id", e.ID),
				zap.Bool("removed", e.Removed),
			)
		default:
			w.logger.Debug("saved swap changed",
				zap.Stringer("kind", e.Kind),
				zap.Stringer("slot", e.Slot),
				zap.Int("id", e.ID),
				zap.Bool("removed", e.Removed),
			)
		}
	}
}

// Close shuts the swap Manager down and waits for its event subscriber.
func (w *Workspace) Close() {
	w.Swaps.ShutDown()
	<-w.done
	w.logger.Info("workspace closed")
}
