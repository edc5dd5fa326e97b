package handler

import (
	"errors"
	"net/http"

	"socialgraph/backend/internal/auth"
	"socialgraph/backend/internal/config"
	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/models"
	"socialgraph/backend/internal/session"
	"socialgraph/backend/pkg/token"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SignupInput defines the structure for user registration.
type SignupInput struct {
	Name     string `json:"name" binding:"required,alphaunicode" example:"Alice"`
	LastName string `json:"last_name" binding:"required,alphaunicode" example:"Doe"`
	Username string `json:"username" binding:"required,min=4,username" example:"alice.doe"`
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=4" example:"password123"`
}

// SigninInput defines the structure for user login.
type SigninInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=4" example:"password123"`
}

// TokenResponse is returned by every operation that issues an access token.
type TokenResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"`
}

// issueCredentials mints an access token, records a new refresh session and
// sets the signed refresh cookie.
func issueCredentials(c *gin.Context, userID uint) (string, error) {
	accessToken, err := token.Issue(userID, config.AppConfig.AccessTokenTTL)
	if err != nil {
		return "", err
	}

	refresh, err := session.Create(database.DB, userID)
	if err != nil {
		return "", err
	}

	if err := auth.SetRefreshCookie(c, refresh); err != nil {
		return "", err
	}
	return accessToken, nil
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a user, starts a refresh session and returns an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Registration Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      500  {object}  MessageResponse
// @Router       /users/signup [post]
func Signup(c *gin.Context) {
	var input SignupInput
	var errs []ErrorItem

	if err := c.ShouldBindJSON(&input); err != nil {
		items, ok := fieldErrors(err)
		if !ok {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
			return
		}
		errs = items
	}

	if input.Email != "" {
		var existing models.User
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			errs = append(errs, ErrorItem{Error: "The E-Mail is already in use"})
		}
	}
	if input.Username != "" {
		var existing models.User
		if err := database.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			errs = append(errs, ErrorItem{Error: "The Username is already in use"})
		}
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to create user"})
		return
	}

	accessToken, err := issueCredentials(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Success: true, Token: accessToken})
}

// Signin godoc
// @Summary      Log in a user
// @Description  Verifies credentials, starts a refresh session and returns an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SigninInput true "Login Info"
// @Success      200  {object}  TokenResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      401  {object}  MessageResponse
// @Failure      500  {object}  MessageResponse
// @Router       /users/signin [post]
func Signin(c *gin.Context) {
	var input SigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if items, ok := fieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: items})
		} else {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		}
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized: invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to look up user"})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized: invalid credentials"})
		return
	}

	accessToken, err := issueCredentials(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Success: true, Token: accessToken})
}

// RefreshToken godoc
// @Summary      Rotate the refresh session
// @Description  Exchanges the signed refresh cookie for a new access token and a rotated cookie. The old refresh value is single-use.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Router       /users/refreshToken [post]
func RefreshToken(c *gin.Context) {
	presented, err := auth.RefreshCookieValue(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized: Refresh token does not exist or is invalid"})
		return
	}

	userID, err := token.Verify(presented)
	if err != nil {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized: Refresh token expired"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "User not found"})
		return
	}

	newRefresh, accessToken, err := session.Rotate(database.DB, userID, presented)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Unauthorized: Refresh token mismatch"})
		} else {
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to rotate session"})
		}
		return
	}

	if err := auth.SetRefreshCookie(c, newRefresh); err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to set refresh cookie"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Success: true, Token: accessToken})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the refresh session named by the cookie and clears it. Revoking an unknown session is a no-op.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]bool "{"success": true}"
// @Failure      400  {object}  MessageResponse
// @Failure      401  {object}  MessageResponse
// @Router       /users/logout [get]
func Logout(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	presented, err := auth.RefreshCookieValue(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request"})
		return
	}

	if err := session.Revoke(database.DB, userID, presented); err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to revoke session"})
		return
	}

	auth.ClearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
