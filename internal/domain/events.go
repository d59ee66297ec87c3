package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryIssued      EventType = "QueryIssued"
	EventResultsApplied   EventType = "ResultsApplied"
	EventResultsDiscarded EventType = "ResultsDiscarded"
	EventSearchFailed     EventType = "SearchFailed"
	EventActionCommitted  EventType = "ActionCommitted"
	EventSelectionCleared EventType = "SelectionCleared"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryIssuedEvent is emitted when a search is sent to the backend
type QueryIssuedEvent struct {
	Query      string
	Generation uint64
}

func (e QueryIssuedEvent) Type() EventType { return EventQueryIssued }

// ResultsAppliedEvent is emitted when a search result becomes the visible list
type ResultsAppliedEvent struct {
	Query      string
	Generation uint64
	Count      int
}

func (e ResultsAppliedEvent) Type() EventType { return EventResultsApplied }

// ResultsDiscardedEvent is emitted when a result arrives for a superseded query
type ResultsDiscardedEvent struct {
	Query      string
	Generation uint64
	Current    uint64
}

func (e ResultsDiscardedEvent) Type() EventType { return EventResultsDiscarded }

// SearchFailedEvent is emitted when the current query fails
type SearchFailedEvent struct {
	Query string
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ActionCommittedEvent is emitted on a final commit
type ActionCommittedEvent struct {
	Text string
	// Index is the committed suggestion, -1 when the typed text was committed
	Index int
}

func (e ActionCommittedEvent) Type() EventType { return EventActionCommitted }

// SelectionClearedEvent is emitted on a non-final commit (cancel or blur)
type SelectionClearedEvent struct {
	Text string
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }
