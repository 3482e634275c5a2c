package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/domain"
	"github.com/projectdesk/pm-api/internal/core/ports"
	"github.com/projectdesk/pm-api/internal/pkg/metrics"
)

type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /api/projects. The referenced client must exist.
//
// @Summary      Create a project for a client
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Replay-safe creation key"
// @Param        body             body      createProjectRequest  true   "Project details"
// @Success      201              {object}  Response{data=domain.Project}
// @Failure      400              {object}  ErrorResponse
// @Failure      404              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	req.UserEmail = ownerOr(c, req.UserEmail)

	input, err := req.toInput(idempotencyKey(c))
	if err != nil {
		return err
	}

	project, err := h.service.AddProjectToClient(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ProjectsRejectedTotal.Inc()
		}
		return err
	}
	metrics.ProjectsCreatedTotal.WithLabelValues(string(project.Status)).Inc()

	return respond(c, http.StatusCreated, "Project created successfully", project)
}

// List handles GET /api/projects?field=value.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  query     string  false  "Owner email"
// @Param        clientId   query     string  false  "Client ID"
// @Param        status     query     string  false  "Ongoing, Completed or Pending"
// @Success      200        {object}  Response{data=[]domain.Project}
// @Failure      400        {object}  ErrorResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.GetAllProjects(c.Request().Context(), queryFilter(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Projects fetched successfully", projects)
}

// Update handles PATCH /api/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project ID"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Project}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	patch, err := req.toPatch()
	if err != nil {
		return err
	}

	project, err := h.service.UpdateProjectByID(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project updated successfully", project)
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  Response{data=domain.DeleteResult}
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	res, err := h.service.DeleteProjectByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project deleted successfully", res)
}
