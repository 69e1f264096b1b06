package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScene  = errors.New("unknown scene")
	ErrUnknownChoice = errors.New("unknown choice")
	ErrUnknownItem   = errors.New("unknown item")
	ErrItemsLocked   = errors.New("inventory locked during transition")
	ErrNotAbandoning = errors.New("not choosing an item to drop")
)

// SceneError reports a scene id that could not be resolved.
type SceneError struct {
	ID   string
	From string
}

func (e *SceneError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("unknown scene: %s", e.ID)
	}
	return fmt.Sprintf("unknown scene: %s (from %s)", e.ID, e.From)
}

func (e *SceneError) Unwrap() error { return ErrUnknownScene }
