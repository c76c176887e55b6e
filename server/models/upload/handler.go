package upload

import (
	"errors"
	"fmt"
	"net/http"

	"campuspulse/server/models/auth"
	"campuspulse/server/response"

	"github.com/labstack/echo/v4"
)

// Handler serves the upload intake routes.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Store exposes the underlying store (used by wiring for EnsureDirs).
func (h *Handler) Store() *Store {
	return h.store
}

// UploadAvatar handles POST /api/upload/avatar. The caller's user id is
// embedded in the generated filename.
func (h *Handler) UploadAvatar(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	fh, err := c.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return response.BadRequest(c, response.ErrCodeNoFileProvided, "No file uploaded")
		}
		return response.BadRequest(c, response.ErrCodeBadRequest, "Failed to read uploaded file")
	}

	stored, err := h.store.Save(CategoryAvatar, claims.UserID, fh)
	if err != nil {
		return h.uploadError(c, CategoryAvatar, err)
	}

	return response.SuccessWithMessage(c, "Avatar uploaded successfully", echo.Map{
		"filename": stored.Filename,
		"url":      stored.URL,
		"size":     stored.Size,
	})
}

// UploadEventImage handles POST /api/upload/event-image.
func (h *Handler) UploadEventImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return response.BadRequest(c, response.ErrCodeNoFileProvided, "No file uploaded")
		}
		return response.BadRequest(c, response.ErrCodeBadRequest, "Failed to read uploaded file")
	}

	stored, err := h.store.Save(CategoryEventImage, 0, fh)
	if err != nil {
		return h.uploadError(c, CategoryEventImage, err)
	}

	return response.SuccessWithMessage(c, "Event image uploaded successfully", echo.Map{
		"filename": stored.Filename,
		"url":      stored.URL,
		"size":     stored.Size,
	})
}

// UploadGallery handles POST /api/upload/event-gallery. Batches are
// all-or-nothing: a rejected batch persists nothing.
func (h *Handler) UploadGallery(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Failed to read multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.BadRequest(c, response.ErrCodeNoFileProvided, "No files uploaded")
	}

	stored, err := h.store.SaveBatch(CategoryGallery, files)
	if err != nil {
		return h.uploadError(c, CategoryGallery, err)
	}

	return response.SuccessWithMessage(c,
		fmt.Sprintf("%d images uploaded successfully", len(stored)),
		echo.Map{
			"files": stored,
			"count": len(stored),
		})
}

// DeleteFile handles DELETE /api/upload/:category/:filename.
func (h *Handler) DeleteFile(c echo.Context) error {
	cat, ok := ParseCategory(c.Param("category"))
	if !ok {
		return response.BadRequest(c, response.ErrCodeInvalidCategory, "Invalid upload category")
	}

	err := h.store.Delete(cat, c.Param("filename"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return response.NotFound(c, response.ErrCodeNotFound, "File not found")
		case errors.Is(err, ErrInvalidCategory):
			return response.BadRequest(c, response.ErrCodeInvalidCategory, "Invalid upload category")
		default:
			return response.InternalError(c, response.ErrCodeStorageIO, "Error deleting file", err)
		}
	}

	return response.SuccessWithMessage(c, "File deleted successfully", nil)
}

// Health handles GET /api/upload/health. Always 200; reports existence and
// a real write probe per category directory.
func (h *Handler) Health(c echo.Context) error {
	return response.SuccessWithMessage(c, "Upload service is healthy", echo.Map{
		"directories": h.store.Health(),
	})
}

// uploadError maps store failures to the response taxonomy. Filesystem
// errors never leak past this boundary untyped.
func (h *Handler) uploadError(c echo.Context, cat Category, err error) error {
	p := policies[cat]

	switch {
	case errors.Is(err, ErrInvalidFileType):
		return response.BadRequest(c, response.ErrCodeInvalidFileType,
			"Only image files are allowed")
	case errors.Is(err, ErrFileTooLarge):
		return response.BadRequest(c, response.ErrCodeFileTooLarge,
			fmt.Sprintf("File size exceeds the %d MB limit", p.MaxBytes/(1024*1024)))
	case errors.Is(err, ErrTooManyFiles):
		return response.BadRequest(c, response.ErrCodeTooManyFiles,
			fmt.Sprintf("A gallery batch can contain at most %d images", p.MaxFiles))
	case errors.Is(err, ErrNoFileProvided):
		return response.BadRequest(c, response.ErrCodeNoFileProvided, "No file uploaded")
	case errors.Is(err, ErrInvalidCategory):
		return response.BadRequest(c, response.ErrCodeInvalidCategory, "Invalid upload category")
	default:
		return response.InternalError(c, response.ErrCodeStorageIO, "Failed to save file", err)
	}
}
