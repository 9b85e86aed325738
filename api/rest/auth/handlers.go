package auth

import (
	stderrors "errors"
	"net/http"
	"slices"

	"codeberg.org/interprep/server/internal/auth"
	"codeberg.org/interprep/server/internal/errors"
	"codeberg.org/interprep/server/internal/logger"
	"codeberg.org/interprep/server/interprep/users"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

// RegisterHandler godoc
// @Summary Register
// @Description Create a local account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users.RegisterRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/register [post]
func RegisterHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.BadRequest(c, "invalid password", err)
			return
		}

		user, err := store.Create(c.Request.Context(), req.Username, req.Email, hash)
		switch {
		case stderrors.Is(err, users.ErrUsernameTaken):
			errors.Conflict(c, "username already exists")
			return
		case stderrors.Is(err, users.ErrEmailTaken):
			errors.Conflict(c, "email already exists")
			return
		case err != nil:
			errors.InternalError(c, "failed to register user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, user.Username)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{
			Message: "user registered successfully",
			Token:   token,
			User:    user,
		})
	}
}

// LoginHandler godoc
// @Summary Login
// @Description Exchange username and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users.LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/login [post]
func LoginHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := store.FindByUsername(c.Request.Context(), req.Username)
		if err != nil && !stderrors.Is(err, users.ErrUserNotFound) {
			errors.InternalError(c, "failed to look up user", err)
			return
		}

		if user == nil || auth.CheckPassword(user.PasswordHash, req.Password) != nil {
			errors.Unauthorized(c, "invalid username or password")
			return
		}

		if !user.IsActive {
			errors.Forbidden(c, "account is disabled")
			return
		}

		if err := store.TouchLastLogin(c.Request.Context(), user.ID); err != nil {
			logger.ErrorErr(err, "failed to record last login", "user_id", user.ID)
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, user.Username)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Message: "login successful",
			Token:   token,
			User:    user,
		})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with a configured provider
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler(providers []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !slices.Contains(providers, provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description OAuth provider callback. Returns user data and JWT token
// @Tags auth
// @Produce json
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(store UserStore, providers []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !slices.Contains(providers, provider) {
			errors.BadRequest(c, "invalid provider", nil)
			return
		}

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			errors.InternalError(c, "authentication failed", err)
			return
		}

		user, err := store.FindOrCreateByProvider(
			c.Request.Context(),
			gothUser.Provider,
			gothUser.UserID,
			gothUser.Email,
			gothUser.Name,
		)
		if err != nil {
			errors.InternalError(c, "failed to create user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email, user.Username)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get authenticated user's account and profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		user, err := store.FindByID(c.Request.Context(), userID)
		if err != nil {
			errors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// UpdateProfileHandler godoc
// @Summary Update current user
// @Description Update email, password and profile fields; omitted fields are unchanged
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users.UpdateProfileRequest true "Profile update"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [put]
// @Security BearerAuth
func UpdateProfileHandler(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req users.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		var passwordHash *string

		if req.Password != nil {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				errors.BadRequest(c, "invalid password", err)
				return
			}

			passwordHash = &hash
		}

		user, err := store.UpdateProfile(c.Request.Context(), userID, req, passwordHash)
		switch {
		case stderrors.Is(err, users.ErrEmailTaken):
			errors.Conflict(c, "email already exists")
			return
		case stderrors.Is(err, users.ErrUserNotFound):
			errors.NotFound(c, "user")
			return
		case err != nil:
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Clear the OAuth session; clients discard their token
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.Debug("no oauth session to clear", "error", err)
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "logout successful"})
	}
}
