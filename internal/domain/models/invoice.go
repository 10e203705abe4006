// internal/domain/models/invoice.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invoice statuses and sources.
const (
	InvoiceDraft     = "Draft"
	InvoicePending   = "Pending"
	InvoicePaid      = "Paid"
	InvoiceOverdue   = "Overdue"
	InvoiceCancelled = "Cancelled"

	InvoiceSourceManual = "Manual"
	InvoiceSourcePDF    = "PDF"
)

// InvoiceStatuses lists every accepted invoice status literal.
var InvoiceStatuses = []string{InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceCancelled}

// IsInvoiceStatus reports whether s is a known invoice status.
func IsInvoiceStatus(s string) bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InvoiceParty identifies the buyer or seller on an invoice.
type InvoiceParty struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	GSTIN   string `bson:"gstin,omitempty" json:"gstin,omitempty"`
	PAN     string `bson:"pan,omitempty" json:"pan,omitempty"`
	Contact string `bson:"contact,omitempty" json:"contact,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
}

// InvoiceItem is one billed line on a manual invoice.
type InvoiceItem struct {
	SlNo        string  `bson:"sl_no,omitempty" json:"slNo,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	BillingDays int     `bson:"billing_days,omitempty" json:"billingDays,omitempty"`
	WorkingDays int     `bson:"working_days,omitempty" json:"workingDays,omitempty"`
	Rate        float64 `bson:"rate,omitempty" json:"rate,omitempty"`
	HSNSAC      string  `bson:"hsn_sac,omitempty" json:"hsn_sac,omitempty"`
	GSTRate     float64 `bson:"gst_rate,omitempty" json:"gstRate,omitempty"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// InvoiceTotals aggregates the money columns of an invoice.
type InvoiceTotals struct {
	SubTotal     float64 `bson:"sub_total" json:"subTotal"`
	SGST         float64 `bson:"sgst" json:"sgst"`
	CGST         float64 `bson:"cgst" json:"cgst"`
	IGST         float64 `bson:"igst" json:"igst"`
	Discount     float64 `bson:"discount" json:"discount"`
	Total        float64 `bson:"total" json:"total"`
	TotalInWords string  `bson:"total_in_words,omitempty" json:"totalInWords,omitempty"`
}

// UploadedPDF carries the extraction result for a PDF-sourced invoice.
// The parsed text and metadata are stored verbatim as returned by the
// extraction collaborator.
type UploadedPDF struct {
	Filename   string `bson:"filename" json:"filename"`
	NumPages   int    `bson:"num_pages" json:"numPages"`
	Text       string `bson:"text,omitempty" json:"text,omitempty"`
	FileBase64 string `bson:"file_base64,omitempty" json:"fileBase64,omitempty"`
	MimeType   string `bson:"mime_type,omitempty" json:"mimeType,omitempty"`
}

// Invoice is a billing document, either keyed in manually or imported
// from an uploaded PDF.
type Invoice struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNo    string             `bson:"invoice_no" json:"invoiceNo"`
	InvoiceDate  time.Time          `bson:"invoice_date,omitempty" json:"invoiceDate,omitempty"`
	BillingMonth string             `bson:"billing_month,omitempty" json:"billingMonth,omitempty"`

	Seller InvoiceParty  `bson:"seller,omitempty" json:"seller,omitempty"`
	Buyer  InvoiceParty  `bson:"buyer,omitempty" json:"buyer,omitempty"`
	Items  []InvoiceItem `bson:"items,omitempty" json:"items,omitempty"`
	Totals InvoiceTotals `bson:"totals,omitempty" json:"totals,omitempty"`

	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
	Status string `bson:"status" json:"status"`
	Source string `bson:"source" json:"source"`

	PDFBase64   string       `bson:"pdf_base64,omitempty" json:"pdfBase64,omitempty"`
	UploadedPDF *UploadedPDF `bson:"uploaded_pdf,omitempty" json:"uploadedPdf,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
