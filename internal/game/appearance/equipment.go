package appearance

// Kind classifies an equipment id.
type Kind int

const (
	// KindEmpty means nothing is shown in the slot.
	KindEmpty Kind = iota
	// KindKit is a base-model variant not tied to an inventory item.
	KindKit
	// KindItem is a worn item.
	KindItem
)

// String returns a lower-case label for k.
func (k Kind) String() string {
	switch k {
	case KindKit:
		return "kit"
	case KindItem:
		return "item"
	default:
		return "empty"
	}
}

const (
	// KitOffset is added to a kit id to form its equipment id.
	KitOffset = 256
	// ItemOffset is added to an item id to form its equipment id.
	ItemOffset = 512
	// Empty is the equipment id of a slot showing nothing.
	Empty = 0
	// NoKit is the wire-format kit id meaning "no base model"; it encodes to Empty.
	NoKit = -KitOffset
)

// ToEquipmentID encodes (kind, id) into the shared equipment id space.
// For KindEmpty the id is carried through unchanged so that every integer
// produced by FromEquipmentID encodes back to itself.
//
// Postcondition: ToEquipmentID(FromEquipmentID(e)) == e for every e.
func ToEquipmentID(kind Kind, id int) int {
	switch kind {
	case KindItem:
		return id + ItemOffset
	case KindKit:
		return id + KitOffset
	default:
		return id
	}
}

// FromEquipmentID decodes an equipment id. Values at or above ItemOffset are
// items, values in [KitOffset, ItemOffset) are kits, anything lower is empty.
func FromEquipmentID(equipmentID int) (Kind, int) {
	switch {
	case equipmentID >= ItemOffset:
		return KindItem, equipmentID - ItemOffset
	case equipmentID >= KitOffset:
		return KindKit, equipmentID - KitOffset
	default:
		return KindEmpty, equipmentID
	}
}

// ItemEquipmentID returns the equipment id showing itemID.
func ItemEquipmentID(itemID int) int {
	return ToEquipmentID(KindItem, itemID)
}

// KitEquipmentID returns the equipment id showing kitID.
// NoKit (and any other negative kit id) encodes to a value below KitOffset.
func KitEquipmentID(kitID int) int {
	return ToEquipmentID(KindKit, kitID)
}

// IsItem reports whether equipmentID shows an item.
func IsItem(equipmentID int) bool {
	return equipmentID >= ItemOffset
}

// IsKit reports whether equipmentID shows a kit.
func IsKit(equipmentID int) bool {
	return equipmentID >= KitOffset && equipmentID < ItemOffset
}
