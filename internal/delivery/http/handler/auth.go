package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/streetkicks/storefront/internal/delivery/http/middleware"
	"github.com/streetkicks/storefront/internal/delivery/http/request"
	"github.com/streetkicks/storefront/internal/delivery/http/response"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	"github.com/streetkicks/storefront/internal/usecase/user"
)

const maxPhotoSize = 5 << 20 // 5MB

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	service   *user.Service
	uploadDir string
	logger    *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *user.Service, uploadDir string, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		uploadDir: uploadDir,
		logger:    log,
	}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
}

// Register handles POST /api/v1/auth/register
// @Summary Register an account
// @Description Create a new account and return it with a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body user.RegisterInput true "Account details"
// @Success 201 {object} map[string]interface{} "Account and session token"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterInput
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err, "Account not found")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    account,
		"token":   token,
	})
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Verify credentials and return the account with a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Account and session token"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Account not found")
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    account,
		"token":   token,
	})
}

// Profile handles GET /api/v1/auth/profile
// @Summary Get the caller's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Account"
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	account, err := h.service.Get(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err, "Account not found")
		return
	}

	response.Success(w, account)
}

// UpdateProfile handles PUT /api/v1/auth/profile
// @Summary Update the caller's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body UpdateProfileRequest true "Profile details"
// @Success 200 {object} map[string]interface{} "Profile updated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	var req UpdateProfileRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateProfile(r.Context(), email, req.Username); err != nil {
		writeError(w, h.logger, err, "Account not found")
		return
	}

	response.Success(w, map[string]string{"username": req.Username})
}

// UploadPhoto handles POST /api/v1/auth/photo
// @Summary Upload a profile photo
// @Description Store a profile photo. Multipart field name: photo.
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo file"
// @Success 200 {object} map[string]interface{} "Stored filename"
// @Failure 400 {object} map[string]string "Missing or oversized file"
// @Router /auth/photo [post]
func (h *AuthHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Photo too large or malformed")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusBadRequest, "Unsupported photo format")
		return
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), strings.ReplaceAll(email, "@", "_"), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		h.logger.Error("Failed to create photo file", err)
		response.Error(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.Error("Failed to write photo file", err)
		response.Error(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	if err := h.service.UpdatePhoto(r.Context(), email, filename); err != nil {
		writeError(w, h.logger, err, "Account not found")
		return
	}

	response.Success(w, map[string]string{"profile_photo": filename})
}
