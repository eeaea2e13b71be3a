package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive/internal/auth"
	"github.com/bookhive/bookhive/internal/entities"
)

// UserLister defines the read operations the users controller needs.
type UserLister interface {
	GetAllUsers() ([]entities.User, error)
}

// UsersController handles registration, login, and user listing.
type UsersController struct {
	service *auth.Service
	store   UserLister
}

// NewUsersController creates a new UsersController.
func NewUsersController(service *auth.Service, store UserLister) *UsersController {
	return &UsersController{service: service, store: store}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// authResponse carries the user alongside their freshly issued token.
type authResponse struct {
	Message string         `json:"message"`
	Data    *entities.User `json:"data"`
	Token   string         `json:"token"`
}

// Register creates a user account and returns a signed token.
// POST /api/register
func (uc *UsersController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The user could not be created: "+err.Error())
		return
	}

	user, token, err := uc.service.Register(req.Username, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondBadRequest(c, "This username is already taken.")
		case errors.Is(err, auth.ErrUsernameInvalid),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, "The user could not be created: "+err.Error())
		default:
			respondInternalError(c, err, "register user")
		}
		return
	}

	c.JSON(201, authResponse{
		Message: fmt.Sprintf("The user %s has been created.", user.Username),
		Data:    user,
		Token:   token,
	})
}

// Login checks credentials and returns a signed token.
// POST /api/login
func (uc *UsersController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "The login payload is invalid: "+err.Error())
		return
	}

	user, token, err := uc.service.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			respondNotFound(c, "The requested user does not exist.")
		case errors.Is(err, auth.ErrInvalidPassword):
			respondUnauthorized(c, "The password is incorrect.")
		default:
			respondInternalError(c, err, "login")
		}
		return
	}

	c.JSON(200, authResponse{
		Message: "The user has been logged in.",
		Data:    user,
		Token:   token,
	})
}

// ListUsers returns all registered users. Password hashes are never
// serialized.
// GET /api/users
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.store.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	respondOK(c, "The list of users has been retrieved.", users)
}

// GetUser returns a single user by ID.
// GET /api/users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := uc.service.GetUserByID(id)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "The requested user does not exist.")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	respondOK(c, fmt.Sprintf("The user %s has been retrieved.", user.Username), user)
}
