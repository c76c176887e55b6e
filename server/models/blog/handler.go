package blog

import (
	"strconv"
	"strings"

	"campuspulse/server/models/auth"
	"campuspulse/server/models/rbac"
	"campuspulse/server/response"

	"github.com/labstack/echo/v4"
)

const (
	maxTitleLength   = 200
	maxContentLength = 50000
)

// Handler serves the blog routes. Editing is owner-only unless the
// caller holds moderate_content.
type Handler struct {
	blogRepo Repository
}

func NewHandler(blogRepo Repository) *Handler {
	return &Handler{blogRepo: blogRepo}
}

// BlogRequest is the create/update request body
type BlogRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"imageUrl"`
	Published bool     `json:"published"`
}

func (req *BlogRequest) validate() (bool, string) {
	if strings.TrimSpace(req.Title) == "" {
		return false, "Title is required"
	}
	if len(req.Title) > maxTitleLength {
		return false, "Title must be at most 200 characters"
	}
	if strings.TrimSpace(req.Content) == "" {
		return false, "Content is required"
	}
	if len(req.Content) > maxContentLength {
		return false, "Content is too long"
	}
	return true, ""
}

// ListBlogs handles GET /api/blogs. Unpublished posts are visible only
// to their author and to moderators.
func (h *Handler) ListBlogs(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	blogs, err := h.blogRepo.ListBlogs(Filter{})
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to list blogs", err)
	}

	if !rbac.HasCapability(claims.Role, rbac.CapModerateContent) {
		visible := blogs[:0]
		for _, b := range blogs {
			if b.Published || b.AuthorID == claims.UserID {
				visible = append(visible, b)
			}
		}
		blogs = visible
	}

	return response.Success(c, echo.Map{
		"blogs": blogs,
		"total": len(blogs),
	})
}

// GetBlog handles GET /api/blogs/:id
func (h *Handler) GetBlog(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid blog id")
	}

	b, exists := h.blogRepo.GetBlogByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Blog not found")
	}

	if !b.Published &&
		b.AuthorID != claims.UserID &&
		!rbac.HasCapability(claims.Role, rbac.CapModerateContent) {
		return response.NotFound(c, response.ErrCodeNotFound, "Blog not found")
	}

	return response.Success(c, b)
}

// CreateBlog handles POST /api/blogs (moderate_content gated at the route)
func (h *Handler) CreateBlog(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	var req BlogRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}
	if ok, msg := req.validate(); !ok {
		return response.ValidationError(c, msg)
	}

	b, err := h.blogRepo.CreateBlog(&Blog{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  claims.UserID,
		Tags:      req.Tags,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	})
	if err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to create blog", err)
	}

	return response.Created(c, "Blog created successfully", b)
}

// UpdateBlog handles PUT /api/blogs/:id
func (h *Handler) UpdateBlog(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid blog id")
	}

	existing, exists := h.blogRepo.GetBlogByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Blog not found")
	}

	if existing.AuthorID != claims.UserID &&
		!rbac.HasCapability(claims.Role, rbac.CapModerateContent) {
		return response.Forbidden(c, response.ErrCodeForbidden, "You can only edit your own blogs")
	}

	var req BlogRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, response.ErrCodeBadRequest, "Invalid request body")
	}
	if ok, msg := req.validate(); !ok {
		return response.ValidationError(c, msg)
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.Tags = req.Tags
	existing.ImageURL = req.ImageURL
	existing.Published = req.Published

	if err := h.blogRepo.UpdateBlog(existing); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to update blog", err)
	}

	return response.SuccessWithMessage(c, "Blog updated successfully", existing)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (h *Handler) DeleteBlog(c echo.Context) error {
	claims := c.Get("user").(*auth.TokenClaims)

	id, err := parseID(c)
	if err != nil {
		return response.ValidationError(c, "Invalid blog id")
	}

	existing, exists := h.blogRepo.GetBlogByID(id)
	if !exists {
		return response.NotFound(c, response.ErrCodeNotFound, "Blog not found")
	}

	if existing.AuthorID != claims.UserID &&
		!rbac.HasCapability(claims.Role, rbac.CapModerateContent) {
		return response.Forbidden(c, response.ErrCodeForbidden, "You can only delete your own blogs")
	}

	if err := h.blogRepo.DeleteBlog(id); err != nil {
		return response.InternalError(c, response.ErrCodeInternalServerError, "Failed to delete blog", err)
	}

	return response.SuccessWithMessage(c, "Blog deleted successfully", nil)
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
