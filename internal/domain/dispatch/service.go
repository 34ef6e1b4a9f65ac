package dispatch

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"postkutsche/internal/config"
	"postkutsche/internal/domain/archive"
	"postkutsche/internal/events"
	"postkutsche/internal/notify"
	"postkutsche/internal/ob24"
)

// Service runs the submission batch: every reconciled pending file is
// submitted to the mailing service, moved to the archive folder and logged
// as an archive record.
type Service struct {
	reconciler Reconciler
	pending    pendingRepo
	archive    archiveRepo
	mail       MailClient
	notifier   notify.Notifier
	emitter    ReloadEmitter
	cfg        *config.Store
}

func NewService(
	reconciler Reconciler,
	pending pendingRepo,
	archiveRepo archiveRepo,
	mail MailClient,
	notifier notify.Notifier,
	emitter ReloadEmitter,
	cfg *config.Store,
) *Service {
	return &Service{
		reconciler: reconciler,
		pending:    pending,
		archive:    archiveRepo,
		mail:       mail,
		notifier:   notifier,
		emitter:    emitter,
		cfg:        cfg,
	}
}

// SendAll submits every pending file in order. The batch is fail-fast: the
// first submission error stops the loop and later files stay pending, while
// files already processed stay archived. The returned count is the number of
// letters submitted before the batch ended, success or not.
func (s *Service) SendAll(ctx context.Context) (int, error) {
	cfg := s.cfg.Snapshot()

	if !cfg.HasCredentials() {
		_ = s.notifier.Notify(
			"Logindaten werden benötigt",
			"Bitte unter 'Einstellungen' Benutzername und Passwort eintragen!",
			notify.UrgencyCritical,
		)
		return 0, ErrMissingCredentials
	}

	pdfFiles, err := s.reconciler.Reconcile(ctx, cfg.Paths.UploadFolder)
	if err != nil {
		return 0, err
	}
	if len(pdfFiles) == 0 {
		_ = s.notifier.Notify(
			"Bitte Briefe hinzufügen",
			"Dazu können PDF in das Upload-Verzeichnis gespeichert werden.",
			notify.UrgencyCritical,
		)
		return 0, ErrNoPendingFiles
	}

	archiveFolder := cfg.ArchiveFolder()
	if err := os.MkdirAll(archiveFolder, 0o755); err != nil {
		return 0, fmt.Errorf("create archive folder: %w", err)
	}

	creds := ob24.Credentials{
		Username: cfg.OnlineBrief24.Username,
		Password: cfg.OnlineBrief24.Password,
	}

	sent := 0
	for _, pdf := range pdfFiles {
		log.Printf("sending filename=%q adler32=%s", pdf.Filename, pdf.Adler32)

		src := filepath.Join(cfg.Paths.UploadFolder, pdf.Filename)
		opts := pdf.Options()
		err := s.mail.Submit(ctx, creds, src, ob24.SubmitOptions{
			Color:        opts.Color,
			Duplex:       opts.Duplex,
			Envelope:     opts.Envelope,
			Distribution: opts.Distribution,
			Registered:   opts.Registered,
			PaymentSlip:  opts.PaymentSlip,
		})
		if err != nil {
			// Earlier letters stay archived; this one and the rest stay pending.
			return sent, fmt.Errorf("submit %s: %w", pdf.Filename, err)
		}

		if err := moveFile(src, filepath.Join(archiveFolder, pdf.Filename)); err != nil {
			return sent, err
		}
		if err := s.archive.Append(ctx, archive.FromPending(pdf)); err != nil {
			return sent, fmt.Errorf("write archive record: %w", err)
		}
		if err := s.pending.Delete(ctx, pdf.ID); err != nil {
			return sent, fmt.Errorf("delete settings record: %w", err)
		}
		sent++
	}

	_ = s.notifier.Notify(
		"Briefe hochgeladen",
		fmt.Sprintf("%d Briefe wurden zu onlinebrief24 hochgeladen und werden jetzt verarbeitet.", sent),
		notify.UrgencyNormal,
	)
	s.emitter.Broadcast(events.EventReloadPDFFiles)

	return sent, nil
}

// moveFile renames src to dst, falling back to copy+delete when rename is
// not possible (archive folder on another filesystem).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		in.Close()
		return fmt.Errorf("move %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		in.Close()
		out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("move %s: %w", src, err)
	}
	in.Close()
	if err := out.Close(); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return os.Remove(src)
}
