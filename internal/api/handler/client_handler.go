package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/ports"
)

type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create handles POST /api/clients. A missing userEmail defaults to the caller.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CreateClientInput  true  "Client details"
// @Success      201   {object}  Response{data=domain.Client}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req ports.CreateClientInput
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	req.UserEmail = ownerOr(c, req.UserEmail)

	client, err := h.service.CreateClient(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Client created successfully", client)
}

// List handles GET /api/clients?field=value.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  query     string  false  "Owner email"
// @Param        company    query     string  false  "Company"
// @Success      200        {object}  Response{data=[]domain.Client}
// @Failure      400        {object}  ErrorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.GetAllClients(c.Request().Context(), queryFilter(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Clients fetched successfully", clients)
}

// Update handles PATCH /api/clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Client ID"
// @Param        body  body      ports.ClientPatch  true  "Fields to change"
// @Success      200   {object}  Response{data=domain.Client}
// @Failure      400   {object}  ErrorResponse
// @Router       /api/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	var patch ports.ClientPatch
	if err := c.Bind(&patch); err != nil {
		return bindError()
	}

	client, err := h.service.UpdateClientByID(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Client updated successfully", client)
}

// Delete handles DELETE /api/clients/:id. Projects referencing the client are kept.
//
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  Response{data=domain.Client}
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	client, err := h.service.DeleteClientByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Client deleted successfully", client)
}
