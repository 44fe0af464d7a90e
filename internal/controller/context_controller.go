package controller

import (
	"github.com/digirioh/hub/internal/config"
	"github.com/digirioh/hub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContextControllerConfig struct {
	AppURL string
	Title  string
}

type ContextController struct {
	config ContextControllerConfig
	router *gin.RouterGroup
}

func NewContextController(config ContextControllerConfig, router *gin.RouterGroup) *ContextController {
	return &ContextController{
		config: config,
		router: router,
	}
}

func (controller *ContextController) SetupRoutes() {
	contextGroup := controller.router.Group("/context")
	contextGroup.GET("/app", controller.appContextHandler)
	contextGroup.GET("/user", controller.userContextHandler)
}

func (controller *ContextController) appContextHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  200,
		"message": "OK",
		"appUrl":  controller.config.AppURL,
		"title":   controller.config.Title,
		"version": config.Version,
	})
}

func (controller *ContextController) userContextHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(200, gin.H{
			"isLoggedIn": false,
		})
		return
	}

	c.JSON(200, gin.H{
		"isLoggedIn": true,
		"email":      context.Email,
		"name":       context.Name,
	})
}
