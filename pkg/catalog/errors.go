package catalog

import "errors"

var (
	// ErrEmptyImage indicates an image reference was blank.
	ErrEmptyImage = errors.New("image reference is empty")

	// ErrUnknownImage indicates the image is not part of the draft pool.
	ErrUnknownImage = errors.New("image is not in the draft pool")

	// ErrIndexOutOfRange indicates an image index outside the draft pool.
	ErrIndexOutOfRange = errors.New("image index out of range")

	// ErrRoundOutOfRange indicates a round outside 1..CreatorRounds.
	ErrRoundOutOfRange = errors.New("round out of range")

	// ErrSlotOutOfRange indicates a slot outside 0..GridSlots-1.
	ErrSlotOutOfRange = errors.New("slot out of range")

	// ErrUnknownMode indicates a creator mode other than RANDOM or CUSTOM.
	ErrUnknownMode = errors.New("unknown creator mode")
)
