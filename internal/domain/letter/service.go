package letter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// NoneSentinel is what the settings form sends for an unset optional field.
// It is translated to the nullable absent state, never stored literally.
const NoneSentinel = "none"

// Service reconciles the upload folder with the settings records and applies
// per-file settings edits.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Reconcile lists the .pdf files in uploadFolder, fingerprints each and
// returns the matching settings record per file, creating one with default
// options on first sight. Records of files that vanished out-of-band are
// left alone.
func (s *Service) Reconcile(ctx context.Context, uploadFolder string) ([]*PendingFile, error) {
	if strings.TrimSpace(uploadFolder) == "" {
		return nil, ErrNoUploadFolder
	}

	entries, err := os.ReadDir(uploadFolder)
	if err != nil {
		return nil, fmt.Errorf("list upload folder: %w", err)
	}

	var files []*PendingFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}

		sum, err := FingerprintFile(filepath.Join(uploadFolder, entry.Name()))
		if err != nil {
			return nil, err
		}

		record, err := s.getOrCreate(ctx, sum, entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, record)
	}
	return files, nil
}

func (s *Service) getOrCreate(ctx context.Context, adler32, filename string) (*PendingFile, error) {
	record, err := s.repo.FindByIdentity(ctx, adler32, filename)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	record = NewPendingFile(adler32, filename)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create settings record: %w", err)
	}
	log.Printf("letter tracked adler32=%s filename=%q", adler32, filename)
	return record, nil
}

// UpdateSettings overwrites the mailing options of the record identified by
// (adler32, filename). The "none" sentinel for registered and payment_slip
// maps to NULL.
func (s *Service) UpdateSettings(ctx context.Context, req SaveSettingsRequest) (*PendingFile, error) {
	record, err := s.repo.FindByIdentity(ctx, req.Adler32, req.Filename)
	if err != nil {
		return nil, err
	}

	record.Color = req.Color
	record.Duplex = req.Duplex
	if req.Envelope != "" {
		record.Envelope = req.Envelope
	}
	if req.Distribution != "" {
		record.Distribution = req.Distribution
	}
	record.Registered = optionValue(req.Registered)
	record.PaymentSlip = optionValue(req.PaymentSlip)

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save settings record: %w", err)
	}
	return record, nil
}

// optionValue translates a form value into the nullable column value.
func optionValue(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, NoneSentinel) {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
