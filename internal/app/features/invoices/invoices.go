// internal/app/features/invoices/invoices.go
package invoices

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	invoicestore "github.com/talentgate/hirehub/internal/app/store/invoices"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/mailer"
	"github.com/talentgate/hirehub/internal/app/system/paging"
	"github.com/talentgate/hirehub/internal/app/system/search"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// createRequest is the JSON body for a manual invoice.
type createRequest struct {
	InvoiceNo    string               `json:"invoiceNo"`
	InvoiceDate  time.Time            `json:"invoiceDate"`
	BillingMonth string               `json:"billingMonth"`
	Seller       models.InvoiceParty  `json:"seller"`
	Buyer        models.InvoiceParty  `json:"buyer"`
	Items        []models.InvoiceItem `json:"items"`
	Totals       models.InvoiceTotals `json:"totals"`
	Notes        string               `json:"notes"`
	Status       string               `json:"status"`
	PDFBase64    string               `json:"pdfBase64"`
}

// HandleCreate handles POST /: a manual JSON invoice, or a multipart
// upload whose PDF is parsed into an imported one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if isMultipart(r) {
		h.createFromPDF(w, r)
		return
	}
	h.createManual(w, r)
}

func (h *Handler) createManual(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	var m []string
	if req.InvoiceNo == "" {
		m = append(m, "invoiceNo")
	}
	if req.Buyer.Name == "" {
		m = append(m, "buyer.name")
	}
	if len(m) > 0 {
		httpjson.Error(w, apierr.MissingFields(m))
		return
	}
	if req.Status != "" && !models.IsInvoiceStatus(req.Status) {
		httpjson.Error(w, apierr.Validation("unknown invoice status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Store.Create(ctx, models.Invoice{
		InvoiceNo:    req.InvoiceNo,
		InvoiceDate:  req.InvoiceDate,
		BillingMonth: req.BillingMonth,
		Seller:       req.Seller,
		Buyer:        req.Buyer,
		Items:        req.Items,
		Totals:       req.Totals,
		Notes:        req.Notes,
		Status:       req.Status,
		Source:       models.InvoiceSourceManual,
		PDFBase64:    req.PDFBase64,
	})
	if err != nil {
		if err == invoicestore.ErrDuplicate {
			httpjson.Error(w, apierr.Conflict("an invoice with this number already exists"))
			return
		}
		httpjson.Error(w, apierr.Internal("creating invoice", err))
		return
	}
	httpjson.Created(w, inv)
}

func (h *Handler) createFromPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxInvoicePDFBytes); err != nil {
		httpjson.Error(w, apierr.Validation("invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("invoice")
	if err != nil {
		httpjson.Error(w, apierr.MissingFields([]string{"invoice"}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxInvoicePDFBytes))
	if err != nil {
		httpjson.Error(w, apierr.Internal("reading invoice upload", err))
		return
	}
	if len(data) < 5 || string(data[:5]) != "%PDF-" {
		httpjson.Error(w, apierr.Validation("invoice upload must be a PDF document"))
		return
	}

	parsed, err := h.Extractor.Extract(data)
	if err != nil {
		httpjson.Error(w, apierr.Validation("could not parse the uploaded PDF"))
		return
	}

	invoiceNo := r.FormValue("invoiceNo")
	if invoiceNo == "" {
		// Imported PDFs get a synthetic number until accounts keys the
		// real one in.
		invoiceNo = fmt.Sprintf("PDF-%s", uuid.NewString()[:8])
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Store.Create(ctx, models.Invoice{
		InvoiceNo:    invoiceNo,
		BillingMonth: r.FormValue("billingMonth"),
		Notes:        r.FormValue("notes"),
		Status:       models.InvoiceDraft,
		Source:       models.InvoiceSourcePDF,
		UploadedPDF: &models.UploadedPDF{
			Filename:   header.Filename,
			NumPages:   parsed.NumPages,
			Text:       parsed.Text,
			FileBase64: base64.StdEncoding.EncodeToString(data),
			MimeType:   "application/pdf",
		},
	})
	if err != nil {
		if err == invoicestore.ErrDuplicate {
			httpjson.Error(w, apierr.Conflict("an invoice with this number already exists"))
			return
		}
		httpjson.Error(w, apierr.Internal("storing imported invoice", err))
		return
	}
	httpjson.Created(w, inv)
}

// ServeList handles GET / with status, billing month, and universal
// search filters plus paging.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	parts := []bson.M{
		search.AnyField(query.Get(r, "searchTerm"),
			"invoice_no", "billing_month", "buyer.name", "seller.name", "notes", "uploaded_pdf.text"),
	}
	if st := query.Get(r, "status"); st != "" {
		parts = append(parts, bson.M{"status": st})
	}
	if bm := query.Get(r, "billingMonth"); bm != "" {
		parts = append(parts, bson.M{"billing_month": bm})
	}
	if src := query.Get(r, "source"); src != "" {
		parts = append(parts, bson.M{"source": src})
	}
	filter := search.Merge(parts...)

	p := paging.Parse(r, 0)
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpjson.Error(w, apierr.Internal("counting invoices", err))
		return
	}
	invs, err := h.Store.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64()))
	if err != nil {
		httpjson.Error(w, apierr.Internal("listing invoices", err))
		return
	}
	httpjson.OK(w, map[string]any{"invoices": invs, "meta": p.MetaFor(total)})
}

func invoiceID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "invoiceID"))
	if err != nil {
		return primitive.NilObjectID, apierr.Validation("invalid invoice id")
	}
	return id, nil
}

// ServeOne handles GET /{invoiceID}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == invoicestore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("invoice"))
			return
		}
		httpjson.Error(w, apierr.Internal("loading invoice", err))
		return
	}
	httpjson.OK(w, inv)
}

// statusRequest is the JSON body for PATCH /{invoiceID}/status.
type statusRequest struct {
	Status string `json:"status"`
}

// HandleStatus handles PATCH /{invoiceID}/status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req statusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}
	if !models.IsInvoiceStatus(req.Status) {
		httpjson.Error(w, apierr.Validation("unknown invoice status %q", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, err := h.Store.SetStatus(ctx, id, req.Status)
	if err != nil {
		if err == invoicestore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("invoice"))
			return
		}
		httpjson.Error(w, apierr.Internal("updating invoice status", err))
		return
	}
	httpjson.OK(w, inv)
}

// sendRequest is the JSON body for POST /{invoiceID}/send. An empty
// "to" falls back to the buyer's email on record.
type sendRequest struct {
	To string `json:"to"`
}

// HandleSend handles POST /{invoiceID}/send: emails the invoice to the
// buyer. The invoice is already persisted, so a transport failure is a
// delivery failure, not a rollback.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		httpjson.Error(w, err)
		return
	}
	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	inv, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == invoicestore.ErrNotFound {
			httpjson.Error(w, apierr.NotFound("invoice"))
			return
		}
		httpjson.Error(w, apierr.Internal("loading invoice", err))
		return
	}

	to := req.To
	if to == "" {
		to = inv.Buyer.Email
	}
	if to == "" {
		httpjson.Error(w, apierr.MissingFields([]string{"to"}))
		return
	}

	msg := mailer.BuildInvoiceEmail(mailer.InvoiceEmailData{
		InvoiceNo:    inv.InvoiceNo,
		BuyerName:    inv.Buyer.Name,
		BillingMonth: inv.BillingMonth,
		Total:        inv.Totals.Total,
	})
	msg.To = []string{to}
	if _, err := h.Notifier.Send(ctx, msg); err != nil {
		h.Log.Warn("invoice email failed",
			zap.String("invoice_id", inv.ID.Hex()),
			zap.Error(err))
		httpjson.Error(w, apierr.DeliveryFailure("invoice stored but the email failed", err))
		return
	}
	httpjson.Msg(w, http.StatusOK, "invoice sent")
}
