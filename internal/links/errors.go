package links

import "fmt"

// CollectionError indicates a missing or unusable collection portfolio item.
type CollectionError struct {
	ID      string
	Message string
}

func (e *CollectionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("collection error: %s", e.Message)
	}
	return fmt.Sprintf("collection error for %q: %s", e.ID, e.Message)
}
