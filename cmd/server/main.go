package main

import (
	"fmt"
	"log"
	"net/http"

	"socialgraph/backend/internal/auth"
	"socialgraph/backend/internal/config"
	"socialgraph/backend/internal/database"
	"socialgraph/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "socialgraph/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Socialgraph API
// @version         1.0
// @description     Identity, session and social-graph API.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/signup", handler.Signup)
			users.POST("/signin", handler.Signin)
			users.POST("/refreshToken", handler.RefreshToken)
		}

		// Everything else requires a bearer token and a signed refresh cookie.
		protected := users.Group("")
		protected.Use(auth.Middleware())
		{
			protected.GET("/logout", handler.Logout)

			protected.GET("/profile", handler.Profile)
			protected.PUT("/updateProfile", handler.UpdateProfile)
			protected.GET("/profile/:id", handler.GetUserProfile)
			protected.GET("/search", handler.SearchUsers)

			protected.POST("/follow/:id", handler.FollowUser)
			protected.PUT("/follow-request/:id", handler.ChangeFollowRequestStatus)
			protected.POST("/unfollow/:id", handler.UnfollowUser)
			protected.GET("/following", handler.GetFollowing)
			protected.GET("/followers", handler.GetFollowers)

			protected.GET("/notifications", handler.GetNotifications)
			protected.GET("/notifications/stream", handler.StreamNotifications)
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost:" + config.AppConfig.Port + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
