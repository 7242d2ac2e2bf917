package swap

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/fashionscape/internal/game/appearance"
	"github.com/cory-johannsen/fashionscape/internal/game/catalog"
)

// resolve groups req and resolves every group, merging the diffs in order.
func (m *Manager) resolve(req map[appearance.Slot]int, modeFor ModeFunc) Diff {
	acc := Blank()
	for _, c := range Group(req) {
		d := c.resolve(m, modeFor)
		m.logger.Debug("swap: resolved compound swap",
			zap.String("group", c.Kind()),
			zap.Int("requested", len(req)),
			zap.Int("changes", len(d.Slots)),
		)
		acc = d.MergeOver(acc)
	}
	return acc
}

func (s SingleSwap) resolve(m *Manager, modeFor ModeFunc) Diff {
	d := Blank()
	if m.saved.SlotLocked(s.Slot) {
		return d
	}
	m.swapInto(d, s.Slot, s.EquipmentID, modeFor(s.Slot))
	return d
}

// resolve shows either the head item or the hair and jaw kits it hides.
func (s HeadSwap) resolve(m *Manager, modeFor ModeFunc) Diff {
	comp := m.host.Composition()
	if comp == nil {
		return Blank()
	}
	rules, saved := m.rules, m.saved
	cur := comp.EquipmentID(appearance.SlotHead)
	hairLocked := saved.SlotLocked(appearance.SlotHair)
	jawLocked := saved.SlotLocked(appearance.SlotJaw)

	var head, hair, jaw Target
	switch {
	case saved.SlotLocked(appearance.SlotHead):
		// Only the kits may change, and only in agreement with the current head.
		if !hairLocked && s.Hair.Set && allowedUnder(rules.HeadAllowsHair(cur), s.Hair.EquipmentID) {
			hair = s.Hair
		}
		if !jawLocked && s.Jaw.Set && allowedUnder(rules.HeadAllowsJaw(cur), s.Jaw.EquipmentID) {
			jaw = s.Jaw
		}
	case !s.Head.Set:
		// Showing the kits wins; a head that would hide them is removed.
		if !hairLocked {
			hair = s.Hair
		}
		if !jawLocked {
			jaw = s.Jaw
		}
		forbidsHair := !rules.HeadAllowsHair(cur) && hair.shows()
		forbidsJaw := !rules.HeadAllowsJaw(cur) && jaw.shows()
		if forbidsHair || forbidsJaw {
			head = To(appearance.Empty)
		}
	default:
		// Showing the head wins unless it would hide a locked kit.
		hairBlocked := !rules.HeadAllowsHair(s.Head.EquipmentID) && hairLocked
		jawBlocked := !rules.HeadAllowsJaw(s.Head.EquipmentID) && jawLocked
		check := cur
		if !hairBlocked && !jawBlocked {
			head = s.Head
			check = s.Head.EquipmentID
		}
		if !hairLocked {
			hair = hideUnless(rules.HeadAllowsHair(check), s.Hair)
		}
		if !jawLocked {
			jaw = hideUnless(rules.HeadAllowsJaw(check), s.Jaw)
		}
	}

	d := Blank()
	headAllows := func(allows func(int) bool) bool {
		if head.Set {
			return allows(head.EquipmentID)
		}
		return allows(cur)
	}
	hairEmpty := func() bool {
		return !hair.Set && comp.EquipmentID(appearance.SlotHair) == appearance.Empty && headAllows(rules.HeadAllowsHair)
	}
	jawEmpty := func() bool {
		return !jaw.Set && comp.EquipmentID(appearance.SlotJaw) == appearance.Empty && headAllows(rules.HeadAllowsJaw)
	}
	// The head change is dropped when it would show a kit locked on nothing.
	// Both locks are checked before any kit is filled in.
	if hairLocked && hairEmpty() {
		head, jaw = Keep, Keep
	}
	if jawLocked && jawEmpty() {
		head, hair = Keep, Keep
	}
	// A visible but empty kit slot is filled with the real kit.
	if !hairLocked && hairEmpty() {
		m.swapInto(d, appearance.SlotHair, m.revertKitEquipmentID(appearance.SlotHair), ModeRevert)
	}
	if !jawLocked && jawEmpty() {
		m.swapInto(d, appearance.SlotJaw, m.revertKitEquipmentID(appearance.SlotJaw), ModeRevert)
	}

	m.apply(d, appearance.SlotHead, head, modeFor)
	m.apply(d, appearance.SlotHair, hair, modeFor)
	m.apply(d, appearance.SlotJaw, jaw, modeFor)
	return d
}

// resolve shows either the torso or the arms kit it hides.
func (s TorsoSwap) resolve(m *Manager, modeFor ModeFunc) Diff {
	comp := m.host.Composition()
	if comp == nil {
		return Blank()
	}
	rules, saved := m.rules, m.saved
	cur := comp.EquipmentID(appearance.SlotTorso)
	armsLocked := saved.SlotLocked(appearance.SlotArms)

	d := Blank()
	var torso, arms Target
	switch {
	case saved.SlotLocked(appearance.SlotTorso):
		if !armsLocked && s.Arms.Set && allowedUnder(rules.TorsoAllowsArms(cur), s.Arms.EquipmentID) {
			arms = s.Arms
		}
	case !s.Torso.Set:
		if !armsLocked {
			arms = s.Arms
		}
		if !rules.TorsoAllowsArms(cur) && arms.shows() {
			m.swapInto(d, appearance.SlotTorso, m.revertKitEquipmentID(appearance.SlotTorso), ModeRevert)
		}
	default:
		check := cur
		if rules.TorsoAllowsArms(s.Torso.EquipmentID) || !armsLocked {
			torso = s.Torso
			check = s.Torso.EquipmentID
		}
		if !armsLocked {
			arms = hideUnless(rules.TorsoAllowsArms(check), s.Arms)
		}
	}

	torsoAllows := cur
	if torso.Set {
		torsoAllows = torso.EquipmentID
	}
	if !arms.Set && comp.EquipmentID(appearance.SlotArms) == appearance.Empty && rules.TorsoAllowsArms(torsoAllows) {
		if armsLocked {
			torso = Keep
		} else {
			m.swapInto(d, appearance.SlotArms, m.revertKitEquipmentID(appearance.SlotArms), ModeRevert)
		}
	}

	m.apply(d, appearance.SlotTorso, torso, modeFor)
	m.apply(d, appearance.SlotArms, arms, modeFor)
	return d
}

// resolve keeps a two-handed weapon and a shield from showing together and
// updates the idle animation to match the weapon.
func (s WeaponsSwap) resolve(m *Manager, modeFor ModeFunc) Diff {
	comp := m.host.Composition()
	if comp == nil {
		return Blank()
	}
	rules, saved := m.rules, m.saved
	weaponLocked := saved.SlotLocked(appearance.SlotWeapon)
	shieldLocked := saved.SlotLocked(appearance.SlotShield)

	var weapon, shield, anim Target
	if !s.Weapon.Set || weaponLocked {
		if !shieldLocked {
			shield = s.Shield
		}
		if shield.shows() && rules.WeaponForbidsShield(comp.EquipmentID(appearance.SlotWeapon)) {
			if weaponLocked {
				shield = Keep
			} else {
				weapon = To(appearance.Empty)
				anim = To(catalog.DefaultIdleAnimation)
			}
		}
	} else {
		twoHanded := rules.WeaponForbidsShield(s.Weapon.EquipmentID)
		if !shieldLocked {
			shield = s.Shield
			if twoHanded {
				shield = To(appearance.Empty)
			}
		}
		if !twoHanded || !shieldLocked {
			weapon = s.Weapon
			anim = To(m.idleAnimationFor(s.Weapon.EquipmentID))
		}
	}

	d := Blank()
	m.apply(d, appearance.SlotWeapon, weapon, modeFor)
	m.apply(d, appearance.SlotShield, shield, modeFor)
	if anim.Set && anim.EquipmentID >= 0 {
		if prev := comp.IdleAnimation(); prev != anim.EquipmentID {
			comp.SetIdleAnimation(anim.EquipmentID)
			d = d.WithIdleAnimation(prev)
		}
	}
	return d
}

// hideUnless passes t through when the controlling slot allows showing the
// dependent slot, and otherwise requests it hidden.
func hideUnless(allows bool, t Target) Target {
	if allows {
		return t
	}
	return To(appearance.Empty)
}

func (m *Manager) idleAnimationFor(weaponEquipmentID int) int {
	if appearance.IsItem(weaponEquipmentID) {
		if anim, ok := m.reg.IdleAnimation(weaponEquipmentID - appearance.ItemOffset); ok {
			return anim
		}
	}
	return catalog.DefaultIdleAnimation
}

// apply swaps slot to t when t requests a non-negative id.
func (m *Manager) apply(d Diff, slot appearance.Slot, t Target, modeFor ModeFunc) {
	if t.Set && t.EquipmentID >= 0 {
		m.swapInto(d, slot, t.EquipmentID, modeFor(slot))
	}
}

// swapInto performs a primitive swap and records its Change in d.
func (m *Manager) swapInto(d Diff, slot appearance.Slot, equipmentID int, mode Mode) {
	if c, ok := m.swapSlot(slot, equipmentID, mode); ok {
		d.Slots[slot] = c
	}
}

// swapSlot writes equipmentID into slot and updates SavedSwaps per mode.
//
// Postcondition: ok is false when there is no active character or when
// neither the display nor the committed value of slot changed; otherwise c
// holds the value to restore. A save of the displayed value records the
// committed value it replaces.
func (m *Manager) swapSlot(slot appearance.Slot, equipmentID int, mode Mode) (c Change, ok bool) {
	comp := m.host.Composition()
	if comp == nil {
		return Change{}, false
	}
	old := comp.EquipmentID(slot)
	unnatural := m.saved.ContainsSlot(slot)
	if old == equipmentID {
		switch mode {
		case ModeSave:
			before := m.committedEquipmentID(slot)
			if before == equipmentID {
				return Change{}, false
			}
			m.saveSlot(slot, equipmentID)
			return Change{EquipmentID: before, Unnatural: unnatural}, true
		case ModeRevert:
			m.saved.RemoveSlot(slot)
		}
		return Change{}, false
	}
	comp.SetEquipmentID(slot, equipmentID)
	switch mode {
	case ModeSave:
		m.saveSlot(slot, equipmentID)
	case ModeRevert:
		m.saved.RemoveSlot(slot)
	}
	return Change{EquipmentID: old, Unnatural: unnatural}, true
}

func (m *Manager) saveSlot(slot appearance.Slot, equipmentID int) {
	switch kind, id := appearance.FromEquipmentID(equipmentID); kind {
	case appearance.KindItem:
		m.saved.PutItem(slot, id)
	case appearance.KindKit:
		m.saved.PutKit(slot, id)
	default:
		m.saved.RemoveSlot(slot)
	}
}

// swapColor is swapSlot for color types. When the natural color of t is
// unknown, a save of the displayed color is kept without a ColorChange.
func (m *Manager) swapColor(t appearance.ColorType, colorID int, mode Mode) (c ColorChange, ok bool) {
	comp := m.host.Composition()
	if comp == nil {
		return ColorChange{}, false
	}
	old := comp.ColorID(t)
	_, unnatural := m.saved.Color(t)
	if old == colorID {
		switch mode {
		case ModeSave:
			before, known := m.committedColorID(t)
			if known && before == colorID {
				return ColorChange{}, false
			}
			m.saved.PutColor(t, colorID)
			if !known {
				return ColorChange{}, false
			}
			return ColorChange{ColorID: before, Unnatural: unnatural}, true
		case ModeRevert:
			m.saved.RemoveColor(t)
		}
		return ColorChange{}, false
	}
	comp.SetColorID(t, colorID)
	switch mode {
	case ModeSave:
		m.saved.PutColor(t, colorID)
	case ModeRevert:
		m.saved.RemoveColor(t)
	}
	return ColorChange{ColorID: old, Unnatural: unnatural}, true
}

func (m *Manager) swapColorInto(d Diff, t appearance.ColorType, colorID int, mode Mode) {
	if c, ok := m.swapColor(t, colorID, mode); ok {
		d.Colors[t] = c
	}
}

// restore re-applies the before values of d. With save false every slot is
// previewed; with save true a slot that held a saved swap before is saved
// again and any other slot is reverted.
//
// Postcondition: the returned Diff undoes the restore.
func (m *Manager) restore(d Diff, save bool) Diff {
	slotMode := func(slot appearance.Slot) Mode {
		if !save {
			return ModePreview
		}
		if c, ok := d.Slots[slot]; ok && c.Unnatural {
			return ModeSave
		}
		return ModeRevert
	}
	req := make(map[appearance.Slot]int, len(d.Slots))
	for slot, c := range d.Slots {
		req[slot] = c.EquipmentID
	}
	out := m.resolve(req, slotMode)

	colors := Blank()
	for _, t := range appearance.AllColorTypes {
		c, ok := d.Colors[t]
		if !ok {
			continue
		}
		mode := ModePreview
		if save {
			mode = ModeRevert
			if c.Unnatural {
				mode = ModeSave
			}
		}
		m.swapColorInto(colors, t, c.ColorID, mode)
	}
	out = colors.MergeOver(out)

	if prev, ok := d.IdleAnimation(); ok {
		if comp := m.host.Composition(); comp != nil {
			if cur := comp.IdleAnimation(); cur != prev {
				comp.SetIdleAnimation(prev)
				out = Blank().WithIdleAnimation(cur).MergeOver(out)
			}
		}
	}
	return out
}
