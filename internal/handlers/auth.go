package handlers

import (
	"errors"
	"net/http"

	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

// Registration payload. Username is optional.
type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Login payload, accepted as JSON or a classic form post.
type signInRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// serviceErrorStatus maps the typed service errors onto HTTP statuses.
// Anything unrecognized is an internal failure.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTodoNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmptyTitle):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

// jsonServiceError logs the failure and writes the mapped status.
func (h *Handler) jsonServiceError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code, msg := serviceErrorStatus(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Infow(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": msg})
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body  signUpRequest  true  "email, optional username, password"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Users.Create(c.Request.Context(), service.CreateUserParams{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		h.jsonServiceError(c, "sign_up_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, u)
}

// @Summary      Log in and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body  signInRequest  true  "email and password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.services.Authorization.GenerateToken(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.jsonServiceError(c, "sign_in_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
