package controller

import (
	"ai-retirement-be/internal/dto"
	"ai-retirement-be/internal/pkg/serverutils"
	"ai-retirement-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IToolDataController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type toolDataController struct {
	toolDataService service.IToolDataService
}

func NewToolDataController(toolDataService service.IToolDataService) IToolDataController {
	return &toolDataController{
		toolDataService: toolDataService,
	}
}

func (c *toolDataController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tooldata/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":toolId", c.Show)
	h.Put(":toolId", c.Save)
}

func (c *toolDataController) Save(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	toolId := ctx.Params("toolId")

	var req dto.SaveToolDataRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.toolDataService.Save(ctx.Context(), userId, toolId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save tool data", res))
}

func (c *toolDataController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	toolId := ctx.Params("toolId")

	res, err := c.toolDataService.Show(ctx.Context(), userId, toolId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show tool data", res))
}

func (c *toolDataController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.toolDataService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tool data", res))
}
