package handlers

import (
	"net/http"
	"strconv"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidTodoID = "invalid todo id"

// Creation payload. The owner is always the resolved identity.
type todoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// todoIDParam parses the :id path segment; writes a 400 and returns false on
// garbage input.
func todoIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidTodoID})
		return 0, false
	}
	return id, true
}

// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Param        offset  query  int  false  "rows to skip (default 0)"
// @Param        limit   query  int  false  "page size (default 10, max 100)"
// @Success      200  {object}  map[string]interface{}  "count, todos"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/todos [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	todos, err := h.services.Todos.List(c.Request.Context(), u.ID, offset, limit)
	if err != nil {
		h.jsonServiceError(c, "todos_list_failed", err, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(todos),
		"todos": todos,
	})
}

// @Summary      List completed todos
// @Tags         todos
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, todos"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/todos/completed [get]
// @Security     BearerAuth
func (h *Handler) listCompletedTodos(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	todos, err := h.services.Todos.ListCompleted(c.Request.Context(), u.ID)
	if err != nil {
		h.jsonServiceError(c, "todos_list_completed_failed", err, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(todos),
		"todos": todos,
	})
}

// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        input  body  todoRequest  true  "title, optional description/completed"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/todos [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input todoRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	t, err := h.services.Todos.Create(c.Request.Context(), u.ID, service.CreateTodoParams{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		h.jsonServiceError(c, "todo_create_failed", err, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Get one todo
// @Tags         todos
// @Produce      json
// @Param        id  path  int  true  "todo id"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/todos/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTodo(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	t, err := h.services.Todos.Get(c.Request.Context(), id, u.ID)
	if err != nil {
		h.jsonServiceError(c, "todo_get_failed", err, "id", id, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Update a todo
// @Description  Partial update; only fields present in the body are applied.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id     path  int               true  "todo id"
// @Param        input  body  models.TodoPatch  true  "fields to change"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/todos/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateTodo(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	var patch models.TodoPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	t, err := h.services.Todos.Update(c.Request.Context(), id, u.ID, patch)
	if err != nil {
		h.jsonServiceError(c, "todo_update_failed", err, "id", id, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Param        id  path  int  true  "todo id"
// @Success      200  {object}  models.Todo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/todos/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	t, err := h.services.Todos.Delete(c.Request.Context(), id, u.ID)
	if err != nil {
		h.jsonServiceError(c, "todo_delete_failed", err, "id", id, "owner", u.ID)
		return
	}
	c.JSON(http.StatusOK, t)
}
