package vetlinkserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/vetlink/vetlink-api/internal/domains/accounts/adapters/http/mapper"
	accountports "github.com/vetlink/vetlink-api/internal/domains/accounts/ports"
)

// UserAPI wires HTTP transport with the accounts bounded context.
type UserAPI struct {
	service accountports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service accountports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/users
// Create a clinic account
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload usermapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := usermapper.ToUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromUser(saved))
}

// Get /v1/users/login
// Exchange credentials for a session token
func (api *UserAPI) LoginUser(c *gin.Context) {
	username := c.Query("username")
	password := c.Query("password")
	token, err := api.service.Login(c.Request.Context(), username, password)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.LoginView{Token: token})
}

// Get /v1/users/logout
// Invalidate the current session
func (api *UserAPI) LogoutUser(c *gin.Context) {
	if user, ok := authenticatedUser(c); ok {
		api.service.Logout(c.Request.Context(), user.Username)
	} else if username := c.Query("username"); username != "" {
		api.service.Logout(c.Request.Context(), username)
	}
	c.Status(http.StatusOK)
}

// Get /v1/users/:username
// Fetch an account by username
func (api *UserAPI) GetUserByName(c *gin.Context) {
	user, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromUser(user))
}

// Put /v1/users/:username
// Update an existing account
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload usermapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := usermapper.ToUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), c.Param("username"), user)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromUser(updated))
}

// Delete /v1/users/:username
// Remove an account
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
