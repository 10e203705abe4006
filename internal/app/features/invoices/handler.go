// internal/app/features/invoices/handler.go
package invoices

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	invoicestore "github.com/talentgate/hirehub/internal/app/store/invoices"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/app/system/pdfextract"
)

// Notifier sends the invoice delivery email.
type Notifier interface {
	Send(ctx context.Context, e mailer.Email) (mailer.Result, error)
}

// Handler is the feature-level entry point for Invoices.
type Handler struct {
	Store     *invoicestore.Store
	Extractor pdfextract.Extractor
	Notifier  Notifier
	Log       *zap.Logger
}

// NewHandler constructs an Invoices handler bound to its store, the PDF
// extractor, and the mailer.
func NewHandler(store *invoicestore.Store, extractor pdfextract.Extractor, notifier Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		Store:     store,
		Extractor: extractor,
		Notifier:  notifier,
		Log:       logger,
	}
}

// maxInvoicePDFBytes caps the uploaded invoice PDF.
const maxInvoicePDFBytes = 15 << 20 // 15 MiB

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return len(ct) >= 19 && ct[:19] == "multipart/form-data"
}
