package resource

import "context"

// Resource is anything with a server-assigned identifier.
type Resource interface {
	ResourceID() string
}

// Service is the remote side of a collection.
type Service[T Resource, C any] interface {
	List(ctx context.Context, filter string) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, data C) (T, error)
	Delete(ctx context.Context, id string) error
}

// State is what a screen renders. Err is "" when the last operation
// succeeded; Loading is true only while a request is in flight.
type State[T Resource] struct {
	Items   []T
	Loading bool
	Err     string
	Filter  string
}

// Find returns the item with id.
func (s State[T]) Find(id string) (T, bool) {
	for _, it := range s.Items {
		if it.ResourceID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// clone copies Items. An empty collection stays non-nil.
func (s State[T]) clone() State[T] {
	s.Items = append(make([]T, 0, len(s.Items)), s.Items...)
	return s
}

// Messages are the fallbacks stored in State.Err when an error carries no
// text of its own, and the title used when GetOne fails.
type Messages struct {
	Fetch       string
	Create      string
	Delete      string
	FetchDetail string
}

// DefaultMessages builds the fallbacks for a resource named singular/plural,
// e.g. "expense"/"expenses".
func DefaultMessages(singular, plural string) Messages {
	return Messages{
		Fetch:       "Failed to fetch " + plural,
		Create:      "Failed to create " + singular,
		Delete:      "Failed to delete " + singular,
		FetchDetail: "Failed to fetch " + singular + " details",
	}
}
