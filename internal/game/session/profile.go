package session

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
)

// Profile is the YAML form of a Player. Map keys are slot and color type
// names as used in outfit files.
type Profile struct {
	Username      string         `yaml:"username"`
	Female        bool           `yaml:"female"`
	IdleAnimation int            `yaml:"idle_animation"`
	Kits          map[string]int `yaml:"kits"`
	Equipment     map[string]int `yaml:"equipment"`
	Colors        map[string]int `yaml:"colors"`
}

// Player converts the profile, collecting every invalid field.
//
// Postcondition: returns a non-nil Player iff err is nil.
func (p *Profile) Player() (*Player, error) {
	var errs []error
	if p.Username == "" {
		errs = append(errs, errors.New("username must not be empty"))
	}
	if p.IdleAnimation < 0 {
		errs = append(errs, fmt.Errorf("idle_animation must be >= 0, got %d", p.IdleAnimation))
	}
	out := NewPlayer(p.Username, p.Female)
	out.IdleAnimation = p.IdleAnimation
	for name, id := range p.Kits {
		slot, ok := appearance.ParseSlot(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("kits: unknown slot %q", name))
		case id < 0:
			errs = append(errs, fmt.Errorf("kits: %s must be >= 0, got %d", slot, id))
		default:
			out.Kits[slot] = id
		}
	}
	for name, id := range p.Equipment {
		slot, ok := appearance.ParseSlot(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("equipment: unknown slot %q", name))
		case id < 0:
			errs = append(errs, fmt.Errorf("equipment: %s must be >= 0, got %d", slot, id))
		default:
			out.Equipment[slot] = id
		}
	}
	for name, id := range p.Colors {
		t, ok := appearance.ParseColorType(name)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("colors: unknown color type %q", name))
		case id < 0:
			errs = append(errs, fmt.Errorf("colors: %s must be >= 0, got %d", t, id))
		default:
			out.Colors[t] = id
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("profile validation failed: %w", errors.Join(errs...))
	}
	return out, nil
}

// LoadProfile reads a YAML player profile.
//
// Precondition: path is a readable YAML file.
func LoadProfile(path string) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: LoadProfile: %w", err)
	}
	var prof Profile
	if err := yaml.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("session: LoadProfile: cannot parse %q: %w", path, err)
	}
	p, err := prof.Player()
	if err != nil {
		return nil, fmt.Errorf("session: LoadProfile: %q: %w", path, err)
	}
	return p, nil
}
