package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/service"
)

// ProfileHandler mantiene dependencias para endpoints de perfil.
type ProfileHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileServ *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profileServ: profileServ,
	}
}

// Get maneja GET /api/profile/:id.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found."})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load profile."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"firstName":      profile.FirstName,
		"lastName":       profile.LastName,
		"bio":            profile.Bio,
		"profilePicture": profile.ProfilePicture,
	})
}

// Update maneja PUT /api/profile/:id con semántica parcial:
// un campo ausente (o null) conserva el valor guardado.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Bio       *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request."})
		return
	}

	err := h.profileServ.Update(c.Request.Context(), c.Param("id"), service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found."})
			return
		}
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully."})
}

// Delete maneja DELETE /api/profile/:id.
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profileServ.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found."})
			return
		}
		h.logger.Error("delete profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete profile."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted."})
}

// UploadPicture maneja POST /api/profile/:id/picture (multipart, campo "picture").
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing picture file."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open uploaded picture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read picture."})
		return
	}
	defer file.Close()

	stored, err := h.profileServ.SavePicture(c.Request.Context(), c.Param("id"), fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found."})
			return
		}
		h.logger.Error("save picture failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save picture."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Profile picture uploaded.",
		"profilePicture": stored,
	})
}
