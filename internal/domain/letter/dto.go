package letter

import "database/sql"

// SaveSettingsRequest carries the per-file settings form.
type SaveSettingsRequest struct {
	Adler32      string `json:"adler32" binding:"required"`
	Filename     string `json:"filename" binding:"required"`
	Color        bool   `json:"color"`
	Duplex       bool   `json:"duplex"`
	Envelope     string `json:"envelope"`
	Distribution string `json:"distribution"`
	Registered   string `json:"registered"`
	PaymentSlip  string `json:"payment_slip"`
}

// PendingFileResponse is the JSON shape handed to the UI shell.
type PendingFileResponse struct {
	ID           int64   `json:"id"`
	Adler32      string  `json:"adler32"`
	Filename     string  `json:"filename"`
	Color        bool    `json:"color"`
	Duplex       bool    `json:"duplex"`
	Envelope     string  `json:"envelope"`
	Distribution string  `json:"distribution"`
	Registered   *string `json:"registered"`
	PaymentSlip  *string `json:"payment_slip"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// ToResponse converts a record into its UI shape.
func ToResponse(p *PendingFile) PendingFileResponse {
	return PendingFileResponse{
		ID:           p.ID,
		Adler32:      p.Adler32,
		Filename:     p.Filename,
		Color:        p.Color,
		Duplex:       p.Duplex,
		Envelope:     p.Envelope,
		Distribution: p.Distribution,
		Registered:   nullableString(p.Registered),
		PaymentSlip:  nullableString(p.PaymentSlip),
		CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
