package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
)

type ProjectAPI interface {
	Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectsHandler struct {
	projects ProjectAPI
}

func NewProjectsHandler(projects ProjectAPI) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// ListProjects godoc
// @Summary     List projects
// @Description Returns every project, newest first, with its embedded images.
// @Tags        projects
// @Produce     json
// @Success     200 {object} models.Response{data=[]models.Project}
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, projects, len(projects))
}

// GetProject godoc
// @Summary     Get a project
// @Tags        projects
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Response{data=models.Project}
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, project)
}

// CreateProject godoc
// @Summary     Create a project
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       request body models.CreateProjectRequest true "Project"
// @Success     201 {object} models.Response{data=models.Project}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary     Update a project
// @Description Replaces name and description. Images are left untouched.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Param       id path string true "Project ID"
// @Param       request body models.UpdateProjectRequest true "Project"
// @Success     200 {object} models.Response{data=models.Project}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id} [put]
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary     Delete a project
// @Description Feedback and stored image objects are not removed.
// @Tags        projects
// @Produce     json
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Response
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/projects/{id} [delete]
func (h *ProjectsHandler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Project deleted successfully")
}
