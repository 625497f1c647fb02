package ticket

import (
	"fmt"
	"time"

	"shipdesk/internal/shared/biztime"
)

// Attachment records metadata about a file stored out of band. The
// binary payload lives in the external blob store; the engine only
// keeps the descriptor and logs a system activity on upload.
type Attachment struct {
	id         uint
	ticketID   uint
	filename   string
	mimeType   string
	sizeBytes  int64
	uploadedBy string
	createdAt  time.Time
}

func NewAttachment(ticketID uint, filename, mimeType string, sizeBytes int64, uploadedBy string) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if sizeBytes < 0 {
		return nil, fmt.Errorf("size cannot be negative")
	}

	return &Attachment{
		ticketID:   ticketID,
		filename:   filename,
		mimeType:   mimeType,
		sizeBytes:  sizeBytes,
		uploadedBy: uploadedBy,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(id, ticketID uint, filename, mimeType string, sizeBytes int64, uploadedBy string, createdAt time.Time) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:         id,
		ticketID:   ticketID,
		filename:   filename,
		mimeType:   mimeType,
		sizeBytes:  sizeBytes,
		uploadedBy: uploadedBy,
		createdAt:  createdAt,
	}, nil
}

func (a *Attachment) ID() uint           { return a.id }
func (a *Attachment) TicketID() uint     { return a.ticketID }
func (a *Attachment) Filename() string   { return a.filename }
func (a *Attachment) MimeType() string   { return a.mimeType }
func (a *Attachment) SizeBytes() int64   { return a.sizeBytes }
func (a *Attachment) UploadedBy() string { return a.uploadedBy }
func (a *Attachment) CreatedAt() time.Time { return a.createdAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
