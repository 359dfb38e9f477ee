package rest

import (
	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Explanation struct {
	Service domainExplanation.IExplanationUsecase
}

func InitRestExplanation(app fiber.Router, service domainExplanation.IExplanationUsecase) Explanation {
	rest := Explanation{Service: service}
	app.Post("/explanations/explain", rest.Explain)
	app.Get("/explanations", rest.History)
	app.Get("/explanations/stats", rest.Stats)

	return rest
}

func (handler *Explanation) Explain(c *fiber.Ctx) error {
	var request domainExplanation.ExplainRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	result, err := handler.Service.Explain(c.UserContext(), request)
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Explanation resolved",
		Results: result,
	})
}

func (handler *Explanation) History(c *fiber.Ctx) error {
	records, err := handler.Service.History(c.UserContext(), c.Query("user_id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Explanation history retrieved",
		Results: records,
	})
}

func (handler *Explanation) Stats(c *fiber.Ctx) error {
	stats, err := handler.Service.Stats(c.UserContext(), c.Query("user_id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Explanation cache stats retrieved",
		Results: stats,
	})
}
