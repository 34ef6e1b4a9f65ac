package archive

import (
	"database/sql"
	"time"

	"postkutsche/internal/domain/letter"
)

// ArchivedFile is the append-only record of a letter that was submitted to
// the mailing service and moved out of the upload folder.
type ArchivedFile struct {
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

func (ArchivedFile) TableName() string { return "archive" }

// FromPending copies a settings record into its archive record.
func FromPending(p *letter.PendingFile) *ArchivedFile {
	return &ArchivedFile{
		Adler32:      p.Adler32,
		Filename:     p.Filename,
		Color:        p.Color,
		Duplex:       p.Duplex,
		Envelope:     p.Envelope,
		Distribution: p.Distribution,
		Registered:   p.Registered,
		PaymentSlip:  p.PaymentSlip,
	}
}
