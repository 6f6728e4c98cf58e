package blobkit

import "context"

// BlobDeletedEntry names one removed blob or folder. Provider is the
// identity tag of the store that performed the deletion.
type BlobDeletedEntry struct {
	URL      string
	Provider string
}

// DeletionBatch carries one entry per URL processed by a single Remove
// call. The batch is published only after every deletion in the call has
// succeeded; a partial failure publishes nothing.
type DeletionBatch []BlobDeletedEntry

// Publisher announces deletion batches to interested collaborators. The
// store treats publishing as fire-and-forget: implementations may dispatch
// asynchronously, and no publish outcome ever affects store control flow.
//
// The publisher is an optional dependency. A store constructed without one
// simply skips notification.
type Publisher interface {
	Publish(ctx context.Context, batch DeletionBatch)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, batch DeletionBatch)

func (f PublisherFunc) Publish(ctx context.Context, batch DeletionBatch) {
	f(ctx, batch)
}
