package handlers

import (
	"errors"
	"net/http"
	"strings"

	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/dto"
	"github.com/Joshcode41/todo-app/internal/service"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc    *service.TodoService
	logger *log.Logger
}

func NewTodoHandler(svc *service.TodoService, logger *log.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, logger: logger}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /Todo [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// List godoc
// @Summary      List all todos
// @Tags         todos
// @Produce      json
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /Todo [get]
func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Todos: todosToResponses(list)})
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Param        id   path      string  true  "Todo ID"
// @Success      200  {object}  dto.TodoEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /Todo/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// Update godoc
// @Summary      Replace title and description of a todo
// @Description  The id travels in the body. The stored todo is echoed back.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateTodoRequest  true  "Full update"
// @Success      200   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /Todo [put]
func (h *TodoHandler) Update(c *gin.Context) {
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), req.ID.String(), req.Title, req.Description)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Todo: todoToResponse(t)})
}

// Delete godoc
// @Summary      Delete a todo
// @Description  Idempotent: deleting an unknown id also answers 204.
// @Tags         todos
// @Param        id   query  string  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /Todo [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps service errors onto status codes; anything unexpected is logged and hidden behind a 500.
func (h *TodoHandler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidTodo):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.logger != nil {
			h.logger.Error("todo handler failed", "op", op, "path", c.Request.URL.Path, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          dto.ID(t.ID),
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
