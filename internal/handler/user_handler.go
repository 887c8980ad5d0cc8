package handler

import (
	"moviestream/internal/models"
	"moviestream/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	crud *CRUDHandler[models.User, models.RegisterRequest, models.UpdateUserRequest]
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserServicer) *UserHandler {
	return &UserHandler{crud: NewCRUDHandler[models.User, models.RegisterRequest, models.UpdateUserRequest](svc, "user")}
}

// GetAllUsers godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Param        email  query     string  false  "Filter by email"
// @Success      200    {object}  response.Response{data=[]models.User}
// @Failure      401    {object}  response.Response
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) { h.crud.List(c) }

// GetUser godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) { h.crud.Get(c) }

// CreateUser godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      models.RegisterRequest  true  "User"
// @Success      201      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) { h.crud.Create(c) }

// UpdateUser godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "User ID"
// @Param        request  body      models.UpdateUserRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=models.User}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) { h.crud.Update(c) }

// DeleteUser godoc
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=models.User}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) { h.crud.Delete(c) }
