package ports

import (
	"context"
	"io"

	"repairdesk/internal/core/domain/model/order"
)

// AttachmentStore keeps attachment files outside the database. The core only
// stores the returned references.
type AttachmentStore interface {
	// Upload stores body under a generated key and returns its reference.
	Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (order.Attachment, error)

	// Delete removes a previously uploaded attachment by its URL.
	Delete(ctx context.Context, url string) error
}
