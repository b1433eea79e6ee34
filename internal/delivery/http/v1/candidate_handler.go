package v1

import (
	"io"
	"net/http"
	"strconv"

	"go-candidate-backend/internal/delivery/http/middleware"
	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	profileUC domain.ProfileUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &CandidateHandler{profileUC: profileUC}

	candidates := protected.Group("/candidates")
	{
		candidates.POST("/upload-cv", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.UploadCV)
		candidates.GET("/:id/profile", handler.GetProfile)

		edit := candidates.Group("/edit")
		{
			edit.PUT("/profile/:id", handler.UpdateProfile)
			edit.PUT("/educations/:id", handler.UpdateEducation)
			edit.PUT("/experiences/:id", handler.UpdateExperience)
			edit.PUT("/skills/:id", handler.UpdateSkill)
			edit.PUT("/languages/:id", handler.UpdateLanguage)
		}
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid id"))
		return 0, false
	}
	return id, true
}

// UploadCV godoc
// @Summary      Upload a CV document
// @Description  Accepts pdf, doc, docx, odt, rtf or txt up to 10 MB, extracts its text, runs structured extraction and merges the result into the caller's profile.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CV document"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/upload-cv [post]
func (h *CandidateHandler) UploadCV(c *gin.Context) {
	email := c.GetString(string(domain.KeyUserEmail))
	if email == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Missing file"))
		return
	}
	if fileHeader.Size > 10<<20 {
		c.Error(apperror.BadRequest("File is too large (max 10 MB)"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	declaredMIME := fileHeader.Header.Get("Content-Type")
	profile, err := h.profileUC.UploadCV(c.Request.Context(), email, fileHeader.Filename, data, declaredMIME)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV processed", profile)
}

// GetProfile godoc
// @Summary      Get a candidate profile
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/{id}/profile [get]
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.profileUC.GetProfile(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile godoc
// @Summary      Update profile fields
// @Description  Overwrites only the fields present in the body.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Candidate ID"
// @Param        body  body      domain.ProfileUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/edit/profile/{id} [put]
func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// UpdateEducation godoc
// @Summary      Update an education entry
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Education ID"
// @Param        body  body      domain.Education  true  "New values"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/edit/educations/{id} [put]
func (h *CandidateHandler) UpdateEducation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.Education
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.profileUC.UpdateEducation(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Education updated", updated)
}

// UpdateExperience godoc
// @Summary      Update an experience entry
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Experience ID"
// @Param        body  body      domain.Experience  true  "New values"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/edit/experiences/{id} [put]
func (h *CandidateHandler) UpdateExperience(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.Experience
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.profileUC.UpdateExperience(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience updated", updated)
}

// UpdateSkill godoc
// @Summary      Update a skill entry
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Skill ID"
// @Param        body  body      domain.Skill  true  "New values"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/edit/skills/{id} [put]
func (h *CandidateHandler) UpdateSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.Skill
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.profileUC.UpdateSkill(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill updated", updated)
}

// UpdateLanguage godoc
// @Summary      Update a language entry
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Language ID"
// @Param        body  body      domain.Language  true  "New values"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /candidates/edit/languages/{id} [put]
func (h *CandidateHandler) UpdateLanguage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req domain.Language
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.profileUC.UpdateLanguage(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Language updated", updated)
}
