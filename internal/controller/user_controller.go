package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/service"
	"github.com/digirioh/hub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UserController struct {
	router  *gin.RouterGroup
	auth    *service.AuthService
	account *service.AccountService
}

func NewUserController(router *gin.RouterGroup, auth *service.AuthService, account *service.AccountService) *UserController {
	return &UserController{
		router:  router,
		auth:    auth,
		account: account,
	}
}

func (controller *UserController) SetupRoutes() {
	userGroup := controller.router.Group("/user")
	userGroup.POST("/register", controller.registerHandler)
	userGroup.POST("/login", controller.loginHandler)
	userGroup.POST("/logout", controller.logoutHandler)
	userGroup.GET("/profile", controller.getProfileHandler)
	userGroup.PUT("/profile", controller.updateProfileHandler)
}

func (controller *UserController) registerHandler(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Failed to bind JSON")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	user, err := controller.auth.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)

	if errors.Is(err, service.ErrEmailTaken) {
		c.JSON(409, gin.H{
			"status":  409,
			"message": "Email already registered",
		})
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to register user")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	log.Info().Str("userId", user.ID).Msg("User registered")

	err = controller.auth.CreateSessionCookie(c, &config.SessionCookie{
		UserID: user.ID,
		Email:  user.Email,
		Name:   fmt.Sprintf("%s %s", req.FirstName, req.LastName),
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to create session cookie")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  200,
		"message": "Registration successful",
	})
}

func (controller *UserController) loginHandler(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Failed to bind JSON")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	log.Debug().Str("email", req.Email).Msg("Login attempt")

	isLocked, remaining := controller.auth.IsAccountLocked(req.Email)

	if isLocked {
		log.Warn().Str("email", req.Email).Msg("Account is locked due to too many failed login attempts")
		c.Writer.Header().Add("x-digirioh-lock-locked", "true")
		c.Writer.Header().Add("x-digirioh-lock-reset", time.Now().Add(time.Duration(remaining)*time.Second).Format(time.RFC3339))
		c.JSON(429, gin.H{
			"status":  429,
			"message": fmt.Sprintf("Too many failed login attempts. Try again in %d seconds", remaining),
		})
		return
	}

	user, ok := controller.auth.VerifyUser(c.Request.Context(), req.Email, req.Password)

	if !ok {
		log.Warn().Str("email", req.Email).Msg("Invalid credentials")
		controller.auth.RecordLoginAttempt(req.Email, false)
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	log.Info().Str("email", req.Email).Msg("Login successful")

	controller.auth.RecordLoginAttempt(req.Email, true)

	profile, err := controller.account.GetProfile(c.Request.Context(), user.ID)

	if err != nil {
		log.Error().Err(err).Msg("Failed to read profile")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	err = controller.auth.CreateSessionCookie(c, &config.SessionCookie{
		UserID: user.ID,
		Email:  user.Email,
		Name:   fmt.Sprintf("%s %s", profile.FirstName, profile.LastName),
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to create session cookie")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  200,
		"message": "Login successful",
	})
}

func (controller *UserController) logoutHandler(c *gin.Context) {
	log.Debug().Msg("Logout request received")

	controller.auth.DeleteSessionCookie(c)

	c.JSON(200, gin.H{
		"status":  200,
		"message": "Logout successful",
	})
}

func (controller *UserController) getProfileHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	profile, err := controller.account.GetProfile(c.Request.Context(), context.UserID)

	if err != nil {
		log.Error().Err(err).Msg("Failed to read profile")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, gin.H{
		"email":     context.Email,
		"firstName": profile.FirstName,
		"lastName":  profile.LastName,
	})
}

func (controller *UserController) updateProfileHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	var req ProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Failed to bind JSON")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	if err := controller.account.UpdateProfile(c.Request.Context(), context.UserID, req.FirstName, req.LastName); err != nil {
		log.Error().Err(err).Msg("Failed to update profile")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  200,
		"message": "OK",
	})
}
