package rest

import (
	domainHealth "github.com/estudia-app/estudia/domains/health"
	"github.com/estudia-app/estudia/pkg/jobworker"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	Service domainHealth.IHealthUsecase
	Pool    *jobworker.Pool
}

func InitRestHealth(app fiber.Router, service domainHealth.IHealthUsecase, pool *jobworker.Pool) Health {
	rest := Health{Service: service, Pool: pool}
	app.Get("/health", rest.GetStatus)
	app.Post("/health/check", rest.CheckNow)
	app.Get("/system/workers", rest.WorkerStats)

	return rest
}

func (handler *Health) GetStatus(c *fiber.Ctx) error {
	records := handler.Service.GetStatus(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: records,
	})
}

func (handler *Health) CheckNow(c *fiber.Ctx) error {
	records := handler.Service.CheckAll(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Health checks executed",
		Results: records,
	})
}

func (handler *Health) WorkerStats(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Worker pool stats retrieved",
		Results: handler.Pool.GetStats(),
	})
}
