package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/e-Presensi-Politani/e-presensi-backend/internal/domain/file"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/middleware"
	"github.com/e-Presensi-Politani/e-presensi-backend/internal/handler/http/response"
	filesvc "github.com/e-Presensi-Politani/e-presensi-backend/internal/service/file"
)

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &FileHandlerImpl{fileService: fileService}
}

// Upload implements FileHandler.
func (h *FileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(filesvc.MaxUploadSize); err != nil {
		slog.Error("Upload parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	src, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A file field is required", nil)
		return
	}
	defer src.Close()

	category := r.FormValue("category")
	mimeType := header.Header.Get("Content-Type")

	fileResponse, err := h.fileService.Upload(r.Context(), identity.UserID, category, header.Filename, mimeType, header.Size, src)
	if err != nil {
		slog.Error("Upload service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded successfully", fileResponse)
}

// ListMine implements FileHandler.
func (h *FileHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	files, err := h.fileService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, files)
}

// GetByID implements FileHandler.
func (h *FileHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	fileResponse, err := h.fileService.Get(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, fileResponse)
}

// Download implements FileHandler.
func (h *FileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, rc, err := h.fileService.Download(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Download service error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.OriginalName))
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Download stream error", "file_id", f.ID, "error", err)
	}
}

// Delete implements FileHandler.
func (h *FileHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.fileService.Delete(r.Context(), identity.UserID, identity.Role, chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete file service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "File deleted successfully", nil)
}
