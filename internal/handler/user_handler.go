package handler

import (
	"net/http"
	"strconv"
	"time"

	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/models"
	"socialgraph/backend/internal/relation"

	"github.com/gin-gonic/gin"
)

// UserSummary is the short form of a user embedded in lists.
type UserSummary struct {
	ID       uint   `json:"id" example:"1"`
	Name     string `json:"name" example:"Alice"`
	LastName string `json:"last_name" example:"Doe"`
	Username string `json:"username" example:"alice.doe"`
}

// ProfileResponse is the authenticated user's own profile.
type ProfileResponse struct {
	ID             uint       `json:"id" example:"1"`
	Name           string     `json:"name"`
	LastName       string     `json:"last_name"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Description    string     `json:"description"`
	DateBirth      *time.Time `json:"date_birth,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Genre          string     `json:"genre,omitempty"`
	PrivateProfile bool       `json:"private_profile"`
	FollowersCount int64      `json:"followers_count"`
	FollowingCount int64      `json:"following_count"`
}

// PublicProfileResponse is another user's profile. For a private profile the
// viewer does not follow, only the fields up to PrivateProfile are filled.
type PublicProfileResponse struct {
	ID             uint       `json:"id" example:"2"`
	Name           string     `json:"name"`
	LastName       string     `json:"last_name"`
	Username       string     `json:"username"`
	Description    string     `json:"description"`
	PrivateProfile bool       `json:"private_profile"`
	DateBirth      *time.Time `json:"date_birth,omitempty"`
	Genre          string     `json:"genre,omitempty"`
	FollowersCount *int64     `json:"followers_count,omitempty"`
	FollowingCount *int64     `json:"following_count,omitempty"`
}

// UpdateProfileInput defines the editable profile fields. Pointer fields are
// left unchanged when absent.
type UpdateProfileInput struct {
	Name           string     `json:"name" binding:"required,alphaunicode"`
	LastName       string     `json:"last_name" binding:"required,alphaunicode"`
	Description    *string    `json:"description"`
	DateBirth      *time.Time `json:"date_birth"`
	PhoneNumber    *string    `json:"phone_number" binding:"omitempty,numeric,len=10"`
	Genre          *string    `json:"genre" binding:"omitempty,alphaunicode"`
	PrivateProfile *bool      `json:"private_profile"`
}

func newUserSummary(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, LastName: u.LastName, Username: u.Username}
}

func edgeCounts(userID uint) (followers, following int64) {
	database.DB.Model(&models.FollowEdge{}).Where("followee_id = ?", userID).Count(&followers)
	database.DB.Model(&models.FollowEdge{}).Where("follower_id = ?", userID).Count(&following)
	return followers, following
}

// Profile godoc
// @Summary      Get own profile
// @Description  Returns the authenticated user's full profile. Credential and session data never appear in the body.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Router       /users/profile [get]
func Profile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "User not found"})
		return
	}

	followers, following := edgeCounts(user.ID)
	c.JSON(http.StatusOK, ProfileResponse{
		ID:             user.ID,
		Name:           user.Name,
		LastName:       user.LastName,
		Username:       user.Username,
		Email:          user.Email,
		Description:    user.Description,
		DateBirth:      user.DateBirth,
		PhoneNumber:    user.PhoneNumber,
		Genre:          user.Genre,
		PrivateProfile: user.PrivateProfile,
		FollowersCount: followers,
		FollowingCount: following,
	})
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Updates profile fields. All field violations are reported together.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields"
// @Success      200  {object}  map[string]bool "{"success": true}"
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Router       /users/updateProfile [put]
func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "User not found"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if items, ok := fieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: items})
		} else {
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid request body"})
		}
		return
	}

	updates := map[string]interface{}{
		"name":      input.Name,
		"last_name": input.LastName,
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.DateBirth != nil {
		updates["date_birth"] = *input.DateBirth
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.Genre != nil {
		updates["genre"] = *input.Genre
	}
	if input.PrivateProfile != nil {
		updates["private_profile"] = *input.PrivateProfile
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserProfile godoc
// @Summary      Get a user's profile
// @Description  Returns another user's profile. A private profile shows a reduced view unless the viewer follows the user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicProfileResponse
// @Failure      400  {object}  MessageResponse
// @Failure      401  {object}  MessageResponse
// @Failure      404  {object}  MessageResponse
// @Router       /users/profile/{id} [get]
func GetUserProfile(c *gin.Context) {
	viewerID := c.MustGet("userID").(uint)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Invalid user ID"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "User to view not found"})
		return
	}

	response := PublicProfileResponse{
		ID:             target.ID,
		Name:           target.Name,
		LastName:       target.LastName,
		Username:       target.Username,
		Description:    target.Description,
		PrivateProfile: target.PrivateProfile,
	}

	if target.PrivateProfile && viewerID != target.ID {
		follows, err := relation.IsFollowing(database.DB, viewerID, target.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to check relationship"})
			return
		}
		if !follows {
			c.JSON(http.StatusOK, response)
			return
		}
	}

	followers, following := edgeCounts(target.ID)
	response.DateBirth = target.DateBirth
	response.Genre = target.Genre
	response.FollowersCount = &followers
	response.FollowingCount = &following

	c.JSON(http.StatusOK, response)
}

// GetFollowing godoc
// @Summary      List followed users
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"followingCount": 1, "followingUsers": [...]}"
// @Failure      401  {object}  MessageResponse
// @Router       /users/following [get]
func GetFollowing(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	users, err := relation.Following(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to fetch following"})
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, newUserSummary(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"followingCount": len(summaries),
		"followingUsers": summaries,
	})
}

// GetFollowers godoc
// @Summary      List followers
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{} "{"followersCount": 1, "followerUsers": [...]}"
// @Failure      401  {object}  MessageResponse
// @Router       /users/followers [get]
func GetFollowers(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	users, err := relation.Followers(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to fetch followers"})
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, newUserSummary(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"followersCount": len(summaries),
		"followerUsers":  summaries,
	})
}

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches users by name, last name or username with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  true   "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[UserSummary]
// @Failure      400   {object}  MessageResponse
// @Failure      401   {object}  MessageResponse
// @Router       /users/search [get]
func SearchUsers(c *gin.Context) {
	viewerID := c.MustGet("userID").(uint)

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Query parameter is required"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	pattern := "%" + q + "%"
	query := database.DB.Model(&models.User{}).
		Where("id <> ?", viewerID).
		Where("username ILIKE ? OR name ILIKE ? OR last_name ILIKE ?", pattern, pattern, pattern)

	users, totalItems, err := paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Failed to search users"})
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, newUserSummary(u))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(summaries, totalItems, page, limit))
}
