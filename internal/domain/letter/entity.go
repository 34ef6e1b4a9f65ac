package letter

import (
	"database/sql"
	"time"
)

// Option defaults applied when a PDF is first seen in the upload folder.
const (
	DefaultEnvelope     = "din_lang"
	DefaultDistribution = "auto"
)

// Options bundles the mailing options attached to a PDF.
type Options struct {
	Color        bool
	Duplex       bool
	Envelope     string
	Distribution string
	Registered   sql.NullString
	PaymentSlip  sql.NullString
}

// DefaultOptions returns the options a freshly tracked PDF starts with.
func DefaultOptions() Options {
	return Options{
		Color:        true,
		Duplex:       true,
		Envelope:     DefaultEnvelope,
		Distribution: DefaultDistribution,
	}
}

// PendingFile is the settings record of a PDF waiting in the upload folder.
// A file is identified by the pair (adler32, filename), not by its row id.
type PendingFile struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Adler32      string         `gorm:"column:adler32" json:"adler32"`
	Filename     string         `gorm:"column:filename" json:"filename"`
	Color        bool           `gorm:"column:color" json:"color"`
	Duplex       bool           `gorm:"column:duplex" json:"duplex"`
	Envelope     string         `gorm:"column:envelope" json:"envelope"`
	Distribution string         `gorm:"column:distribution" json:"distribution"`
	Registered   sql.NullString `gorm:"column:registered" json:"registered"`
	PaymentSlip  sql.NullString `gorm:"column:payment_slip" json:"payment_slip"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PendingFile) TableName() string { return "pdf_file" }

// NewPendingFile builds a settings record with default options.
func NewPendingFile(adler32, filename string) *PendingFile {
	opts := DefaultOptions()
	return &PendingFile{
		Adler32:      adler32,
		Filename:     filename,
		Color:        opts.Color,
		Duplex:       opts.Duplex,
		Envelope:     opts.Envelope,
		Distribution: opts.Distribution,
	}
}

// Options returns the record's mailing options.
func (p *PendingFile) Options() Options {
	return Options{
		Color:        p.Color,
		Duplex:       p.Duplex,
		Envelope:     p.Envelope,
		Distribution: p.Distribution,
		Registered:   p.Registered,
		PaymentSlip:  p.PaymentSlip,
	}
}
