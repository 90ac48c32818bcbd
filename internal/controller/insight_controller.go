package controller

import (
	"ai-retirement-be/internal/pkg/serverutils"
	"ai-retirement-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type insightController struct {
	planService service.IPlanService
}

func NewInsightController(planService service.IPlanService) IInsightController {
	return &insightController{
		planService: planService,
	}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/insight/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
}

func (c *insightController) List(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.planService.GetInsights(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list insights", res))
}
