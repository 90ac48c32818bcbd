package controller

import (
	"ai-retirement-be/internal/dto"
	"ai-retirement-be/internal/pkg/serverutils"
	"ai-retirement-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Cached(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plan/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Get("cached", c.Cached)
}

// Generate serves the documented plan contract directly, without the
// standard response envelope.
func (c *planController) Generate(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	authToken, _ := ctx.Locals("auth_token").(string)

	var req dto.GeneratePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.GeneratePlan(ctx.Context(), userId, authToken, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *planController) Cached(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.planService.GetCachedPlan(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no cached plan")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show cached plan", res))
}
