// internal/app/features/uploads/handler.go
package uploads

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	uploadstore "github.com/talentgate/hirehub/internal/app/store/uploads"
	"github.com/talentgate/hirehub/internal/app/system/apierr"
	"github.com/talentgate/hirehub/internal/app/system/httpjson"
	"github.com/talentgate/hirehub/internal/app/system/timeouts"
	"github.com/talentgate/hirehub/internal/domain/models"
)

// maxResumeBytes caps one resume upload.
const maxResumeBytes = 10 << 20 // 10 MiB

// allowedResumeExts are the file types the intake forms accept.
var allowedResumeExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Handler is the feature-level entry point for binary Uploads.
type Handler struct {
	Store *uploadstore.Store
	Dir   string
	Log   *zap.Logger
}

// NewHandler constructs an Uploads handler writing into dir.
func NewHandler(store *uploadstore.Store, dir string, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Dir: dir, Log: logger}
}

// HandleResume handles POST /resume: stores the file under a random
// name and records its metadata. The response carries the stored path
// requesters later put into the registration payload.
func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		httpjson.Error(w, apierr.Validation("invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		httpjson.Error(w, apierr.MissingFields([]string{"resume"}))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedResumeExts[ext] {
		httpjson.Error(w, apierr.Validation("resume must be a PDF or Word document"))
		return
	}

	name := uuid.NewString() + ext
	path := filepath.Join(h.Dir, name)
	dst, err := os.Create(path)
	if err != nil {
		httpjson.Error(w, apierr.Internal("storing resume", err))
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(file, maxResumeBytes)); err != nil {
		httpjson.Error(w, apierr.Internal("storing resume", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec, err := h.Store.Create(ctx, models.StoredFile{
		FileName: header.Filename,
		FileType: ext,
		FilePath: name,
	})
	if err != nil {
		httpjson.Error(w, apierr.Internal("recording upload", err))
		return
	}
	httpjson.Created(w, rec)
}
