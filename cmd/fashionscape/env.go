package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/config"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
	"github.com/cory-johannsen/fashionscape/internal/game/colors"
	"github.com/cory-johannsen/fashionscape/internal/game/command"
	"github.com/cory-johannsen/fashionscape/internal/game/dice"
	"github.com/cory-johannsen/fashionscape/internal/game/session"
	"github.com/cory-johannsen/fashionscape/internal/game/swap"
	"github.com/cory-johannsen/fashionscape/internal/game/workspace"
	"github.com/cory-johannsen/fashionscape/internal/scripting"
)

// environment holds what every subcommand shares: configuration, the loaded
// catalog, the scoring hooks, and the recipe for opening a Workspace.
type environment struct {
	cfg      config.Config
	logger   *zap.Logger
	hooks    *scripting.Manager
	deps     workspace.Deps
	profiles []string
}

// newEnvironment loads the catalog and the optional scorer script.
//
// Precondition: cfg must be valid; logger must be non-nil.
// Postcondition: on success the caller must Close the environment.
func newEnvironment(cfg config.Config, logger *zap.Logger, profiles []string, seed uint64) (*environment, error) {
	start := time.Now()
	fs := cfg.Fashionscape

	reg, err := catalog.LoadRegistry(fs.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	intelligence, err := swap.ParseIntelligence(fs.RandomizerIntelligence)
	if err != nil {
		return nil, err
	}

	hooks := scripting.NewManager(logger)
	hooks.ItemName = reg.ItemName
	hooks.ItemSlot = func(itemID int) (string, bool) {
		slot, ok := reg.EquipSlot(itemID)
		if !ok {
			return "", false
		}
		return slot.String(), true
	}
	if fs.ScorerScript != "" {
		if err := hooks.LoadFile(fs.ScorerScript, scripting.DefaultInstructionLimit); err != nil {
			hooks.Close()
			return nil, fmt.Errorf("loading scorer script: %w", err)
		}
	}

	if len(profiles) == 0 {
		profiles = []string{fs.Profile}
	}
	env := &environment{
		cfg:    cfg,
		logger: logger,
		hooks:  hooks,
		deps: workspace.Deps{
			Catalog: reg,
			Scorer:  colors.NewScorer(reg, hooks, logger),
			Options: swap.Options{
				Intelligence:            intelligence,
				ExcludeBaseModels:       fs.ExcludeBaseModels,
				ExcludeNonStandardItems: fs.ExcludeNonStandardItems,
				OutfitsDir:              fs.OutfitsDir,
			},
			NewSource:   sourceFactory(seed),
			EventBuffer: fs.EventBuffer,
			Logger:      logger,
		},
		profiles: profiles,
	}

	logger.Info("catalog loaded",
		zap.String("dir", fs.CatalogDir),
		zap.Int("items", len(reg.ItemIDs())),
		zap.String("intelligence", intelligence.String()),
		zap.Bool("scorer_script", fs.ScorerScript != ""),
		zap.Duration("elapsed", time.Since(start)),
	)
	return env, nil
}

// sourceFactory returns crypto-backed sources, or identically seeded ones
// when seed is non-zero.
func sourceFactory(seed uint64) func() dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource
	}
	return func() dice.Source { return dice.NewSeededSource(seed) }
}

// loadPlayers reads every configured profile. Profiles are read fresh for
// each Workspace so that equipment changes never leak between sessions.
func (e *environment) loadPlayers() ([]*session.Player, error) {
	players := make([]*session.Player, 0, len(e.profiles))
	for _, path := range e.profiles {
		p, err := session.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// open starts a Workspace over freshly loaded profiles.
func (e *environment) open(opts ...command.ShellOption) (*workspace.Workspace, error) {
	players, err := e.loadPlayers()
	if err != nil {
		return nil, err
	}
	return workspace.Open(e.deps, players, opts...)
}

// Close releases the scripting VM.
func (e *environment) Close() {
	e.hooks.Close()
}
