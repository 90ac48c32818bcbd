package serverutils

import (
	"errors"

	"ai-retirement-be/pkg/plan"
	"ai-retirement-be/pkg/planner"

	"github.com/gofiber/fiber/v2"
)

// PlanFailureResponse is the documented failure envelope for plan generation:
// the error message verbatim, plus named tool suggestions only for the
// zero-tools-with-data case.
type PlanFailureResponse struct {
	Error                  string                       `json:"error"`
	MissingDataSuggestions []plan.MissingDataSuggestion `json:"missingDataSuggestions,omitempty"`
}

// ErrorHandlerMiddleware maps the planner error taxonomy (and everything else)
// onto HTTP responses. Routed as a catch-all so controllers just return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var noData *planner.NoDataError
		if errors.As(err, &noData) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(PlanFailureResponse{
				Error:                  noData.Error(),
				MissingDataSuggestions: noData.Suggestions,
			})
		}

		var noProvider *planner.NoProviderError
		if errors.As(err, &noProvider) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(PlanFailureResponse{
				Error: noProvider.Error(),
			})
		}

		var providerCall *planner.ProviderCallError
		if errors.As(err, &providerCall) {
			return ctx.Status(fiber.StatusBadGateway).JSON(PlanFailureResponse{
				Error: providerCall.Error(),
			})
		}

		var parseErr *planner.PlanParseError
		if errors.As(err, &parseErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(PlanFailureResponse{
				Error: parseErr.Error(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
