package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"user-registry-service/internal/adapter/gin/view"
	"user-registry-service/internal/usecase/user"
	pkgerrors "user-registry-service/pkg/errors"
	"user-registry-service/pkg/logger"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc    user.Usecase
	log   *zap.Logger
	views bool
}

// NewUserHandler creates a new UserHandler instance.
// When views is true, the page routes render HTML instead of JSON.
func NewUserHandler(uc user.Usecase, log *zap.Logger, views bool) *UserHandler {
	return &UserHandler{
		uc:    uc,
		log:   log,
		views: views,
	}
}

// userIDURI binds the :id path segment
type userIDURI struct {
	ID int64 `uri:"id" binding:"required"`
}

// createUserURI binds POST /user/:username/:age
type createUserURI struct {
	Username string `uri:"username" binding:"required"`
	Age      int    `uri:"age" binding:"required"`
}

// updateUserURI binds PUT /user/:id/:username/:age
type updateUserURI struct {
	ID       int64  `uri:"id" binding:"required"`
	Username string `uri:"username" binding:"required"`
	Age      int    `uri:"age" binding:"required"`
}

// updateUserQuery binds PUT /user/:id?username=&age=
type updateUserQuery struct {
	Username string `form:"username" binding:"required"`
	Age      int    `form:"age" binding:"required"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int    `json:"age"`
}

// MessageResponse is a plain informational reply
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Age: u.Age}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = toResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser handles POST /user/:username/:age
func (h *UserHandler) CreateUser(c *gin.Context) {
	var params createUserURI
	if err := c.ShouldBindUri(&params); err != nil {
		h.bindingError(c, "create user", err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Username: params.Username,
		Age:      params.Age,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// UpdateUser handles PUT /user/:id/:username/:age
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var params updateUserURI
	if err := c.ShouldBindUri(&params); err != nil {
		h.bindingError(c, "update user", err)
		return
	}

	h.update(c, user.UpdateUserRequest{
		ID:       params.ID,
		Username: params.Username,
		Age:      params.Age,
	})
}

// UpdateUserByQuery handles PUT /user/:id?username=&age=
func (h *UserHandler) UpdateUserByQuery(c *gin.Context) {
	var id userIDURI
	if err := c.ShouldBindUri(&id); err != nil {
		h.bindingError(c, "update user", err)
		return
	}

	var query updateUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.bindingError(c, "update user", err)
		return
	}

	h.update(c, user.UpdateUserRequest{
		ID:       id.ID,
		Username: query.Username,
		Age:      query.Age,
	})
}

func (h *UserHandler) update(c *gin.Context, req user.UpdateUserRequest) {
	resp, err := h.uc.UpdateUser(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// DeleteUser handles DELETE /user/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var params userIDURI
	if err := c.ShouldBindUri(&params); err != nil {
		h.bindingError(c, "delete user", err)
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: params.ID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp))
}

// GetUser handles GET /user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	var params userIDURI
	if err := c.ShouldBindUri(&params); err != nil {
		h.bindingError(c, "get user", err)
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: params.ID})
	if err != nil {
		h.handleError(c, err)
		return
	}

	if h.views {
		c.HTML(http.StatusOK, view.UsersPage, gin.H{"User": toResponse(resp)})
		return
	}
	c.JSON(http.StatusOK, toResponse(resp))
}

// Home handles GET /
func (h *UserHandler) Home(c *gin.Context) {
	if !h.views {
		c.JSON(http.StatusOK, MessageResponse{Message: "Main page"})
		return
	}

	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	rows := make([]UserResponse, len(users))
	for i := range users {
		rows[i] = toResponse(&users[i])
	}
	c.HTML(http.StatusOK, view.UsersPage, gin.H{"Users": rows})
}

// bindingError reports path or query parameters that failed coercion or constraints
func (h *UserHandler) bindingError(c *gin.Context, op string, err error) {
	logger.WithContext(c.Request.Context(), h.log).Warn("invalid request parameters",
		zap.String("operation", op),
		zap.Error(err),
	)
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// errorNames maps the status codes clients may see to response error names
var errorNames = map[codes.Code]string{
	codes.InvalidArgument: "validation_error",
	codes.NotFound:        "not_found",
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	code := pkgerrors.Code(err)

	name, ok := errorNames[code]
	if !ok {
		logger.WithContext(c.Request.Context(), h.log).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := runtime.HTTPStatusFromCode(code)
	if code == codes.InvalidArgument {
		// Parameter validation failures are reported as 422, like binding failures
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, ErrorResponse{
		Error:   name,
		Message: err.Error(),
	})
}
