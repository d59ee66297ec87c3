package suggest

import "suggest/internal/domain"

// NoSelection is the ActiveIndex value when nothing is highlighted.
const NoSelection = -1

// InputState is the controller's view of the input.
type InputState struct {
	// RawText is what the user last typed, never a suggestion title
	// unless one was committed.
	RawText string
	// ActiveIndex is NoSelection or a valid index into Results.
	ActiveIndex int
	Results     []domain.Suggestion
	// Generation counts the searches started so far.
	Generation uint64
}

func newInputState() InputState {
	return InputState{ActiveIndex: NoSelection}
}

// Selected reports whether a suggestion is highlighted.
func (s InputState) Selected() bool {
	return s.ActiveIndex != NoSelection
}

func (s InputState) valid(index int) bool {
	return index >= 0 && index < len(s.Results)
}
