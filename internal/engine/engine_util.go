package engine

import "errors"

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// IsNoOp reports whether err is one of the rejections Apply uses for actions
// that are illegal in the current state.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrWrongMode) ||
		errors.Is(err, ErrChampionAlreadyChosen) ||
		errors.Is(err, ErrUnknownItem)
}
