package dispatch

import (
	"context"

	"postkutsche/internal/domain/archive"
	"postkutsche/internal/domain/letter"
	"postkutsche/internal/ob24"
)

// MailClient submits a letter for physical delivery.
type MailClient interface {
	Submit(ctx context.Context, creds ob24.Credentials, path string, opts ob24.SubmitOptions) error
}

// Reconciler aligns the upload folder with the settings records.
type Reconciler interface {
	Reconcile(ctx context.Context, uploadFolder string) ([]*letter.PendingFile, error)
}

type pendingRepo interface {
	Delete(ctx context.Context, id int64) error
}

type archiveRepo interface {
	Append(ctx context.Context, a *archive.ArchivedFile) error
}

// ReloadEmitter signals the UI shell to refresh after a batch.
type ReloadEmitter interface {
	Broadcast(eventType string)
}
