// Package handler exposes the todo store over HTTP.
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

const (
	msgNotFound      = "Todo not found"
	msgRouteNotFound = "Route not found"
	msgInvalidJSON   = "Invalid JSON body"
	msgDeleted       = "Todo deleted"
	msgInternal      = "Internal server error"

	msgOriginNotAllowed = "Origin not allowed"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"Todo not found"`
}

// MessageResponse confirms a deletion.
type MessageResponse struct {
	Message string `json:"message" example:"Todo deleted"`
}

// CreateRequest is the body accepted by Create.
type CreateRequest struct {
	Text string `json:"text" example:"Buy milk"`
}

// UpdateRequest documents the fields Update understands. Both are optional.
type UpdateRequest struct {
	Text      *string `json:"text,omitempty" example:"Buy oat milk"`
	Completed *bool   `json:"completed,omitempty" example:"true"`
}

// Todos serves CRUD over a todo.Store.
type Todos struct {
	store todo.Store
}

// NewTodos wires the handler to the store it owns requests against.
func NewTodos(s todo.Store) *Todos {
	return &Todos{store: s}
}

// Register mounts the todo routes under rg.
func (h *Todos) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/todos")
	todos.GET("", h.List)
	todos.POST("", h.Create)
	todos.GET("/:id", h.Get)
	todos.PUT("/:id", h.Update)
	todos.DELETE("/:id", h.Delete)
}

// List godoc
//
//	@Summary	List todos
//	@Tags		todos
//	@Produce	json
//	@Success	200	{array}	todo.Todo
//	@Router		/todos [get]
func (h *Todos) List(c *gin.Context) {
	todos, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// Get godoc
//
//	@Summary	Get a todo
//	@Tags		todos
//	@Produce	json
//	@Param		id	path		string	true	"Todo ID"
//	@Success	200	{object}	todo.Todo
//	@Failure	404	{object}	ErrorResponse
//	@Router		/todos/{id} [get]
func (h *Todos) Get(c *gin.Context) {
	t, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Create godoc
//
//	@Summary	Create a todo
//	@Tags		todos
//	@Accept		json
//	@Produce	json
//	@Param		todo	body		CreateRequest	true	"New todo"
//	@Success	201		{object}	todo.Todo
//	@Failure	400		{object}	ErrorResponse
//	@Router		/todos [post]
func (h *Todos) Create(c *gin.Context) {
	fields, err := readObject(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	text, _, err := stringField(fields, "text", true)
	if err != nil {
		h.fail(c, err)
		return
	}

	t, err := h.store.Create(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Update godoc
//
//	@Summary		Update a todo
//	@Description	Only the fields present in the body are changed.
//	@Tags			todos
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Todo ID"
//	@Param			todo	body		UpdateRequest	true	"Fields to change"
//	@Success		200		{object}	todo.Todo
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/todos/{id} [put]
func (h *Todos) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	// An unknown id is reported before a malformed body.
	if _, err := h.store.Get(ctx, id); err != nil {
		h.fail(c, err)
		return
	}

	patch, err := readPatch(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	t, err := h.store.Update(ctx, id, patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete godoc
//
//	@Summary	Delete a todo
//	@Tags		todos
//	@Produce	json
//	@Param		id	path		string	true	"Todo ID"
//	@Success	200	{object}	MessageResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/todos/{id} [delete]
func (h *Todos) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: msgDeleted})
}

func (h *Todos) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, todo.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	case errors.Is(err, todo.ErrValidation):
		msg := msgInvalidJSON
		var ve *todo.ValidationError
		if errors.As(err, &ve) && ve.Msg != "" {
			msg = ve.Msg
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	default:
		_ = c.Error(err)
		log.Printf("todos %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	}
}
