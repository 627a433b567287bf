package driven

import "context"

// ChangeWatcher reports modifications to the persisted shopping list made
// outside the current process.
type ChangeWatcher interface {
	// Watch starts watching and returns a channel that receives a value
	// after each burst of changes. The channel is closed when ctx ends.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
