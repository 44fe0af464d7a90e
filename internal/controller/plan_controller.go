package controller

import (
	"errors"
	"time"

	"github.com/digirioh/hub/internal/service"
	"github.com/digirioh/hub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SelectPlanRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type PlanController struct {
	router  *gin.RouterGroup
	account *service.AccountService
}

func NewPlanController(router *gin.RouterGroup, account *service.AccountService) *PlanController {
	return &PlanController{
		router:  router,
		account: account,
	}
}

func (controller *PlanController) SetupRoutes() {
	planGroup := controller.router.Group("/plans")
	planGroup.GET("", controller.listHandler)
	planGroup.POST("/select", controller.selectHandler)
}

func (controller *PlanController) listHandler(c *gin.Context) {
	response := gin.H{
		"plans": controller.account.Plans(),
	}

	context, err := utils.GetContext(c)

	if err == nil && context.IsLoggedIn {
		plan, found, err := controller.account.GetPlan(c.Request.Context(), context.UserID)

		if err != nil {
			log.Error().Err(err).Msg("Failed to read user plan")
			c.JSON(500, gin.H{
				"status":  500,
				"message": "Internal Server Error",
			})
			return
		}

		if found {
			current := gin.H{
				"plan": plan.PlanName,
			}
			if plan.ExpiresAt.Valid {
				current["expiresAt"] = time.Unix(plan.ExpiresAt.Int64, 0).UTC().Format(time.RFC3339)
			}
			response["current"] = current
		}
	}

	c.JSON(200, response)
}

func (controller *PlanController) selectHandler(c *gin.Context) {
	context, err := utils.GetContext(c)

	if err != nil || !context.IsLoggedIn {
		c.JSON(401, gin.H{
			"status":  401,
			"message": "Unauthorized",
		})
		return
	}

	var req SelectPlanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error().Err(err).Msg("Failed to bind JSON")
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Bad Request",
		})
		return
	}

	err = controller.account.SelectPlan(c.Request.Context(), context.UserID, req.Plan)

	if errors.Is(err, service.ErrUnknownPlan) {
		c.JSON(400, gin.H{
			"status":  400,
			"message": "Unknown plan",
		})
		return
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to select plan")
		c.JSON(500, gin.H{
			"status":  500,
			"message": "Internal Server Error",
		})
		return
	}

	log.Info().Str("userId", context.UserID).Str("plan", req.Plan).Msg("Plan selected")

	c.JSON(200, gin.H{
		"status":  200,
		"message": "OK",
	})
}
