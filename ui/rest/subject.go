package rest

import (
	domainSubject "github.com/estudia-app/estudia/domains/subject"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Subject struct {
	Service domainSubject.ISubjectUsecase
}

func InitRestSubject(app fiber.Router, service domainSubject.ISubjectUsecase) Subject {
	rest := Subject{Service: service}
	app.Post("/subjects", rest.Create)
	app.Get("/subjects", rest.List)
	app.Get("/subjects/:id", rest.Get)
	app.Put("/subjects/:id", rest.Update)
	app.Delete("/subjects/:id", rest.Delete)

	return rest
}

func (handler *Subject) Create(c *fiber.Ctx) error {
	var request domainSubject.CreateSubjectRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	subject, err := handler.Service.Create(c.UserContext(), request)
	panicIfNeeded(err)

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: "Subject created",
		Results: subject,
	})
}

func (handler *Subject) List(c *fiber.Ctx) error {
	subjects, err := handler.Service.ListByUser(c.UserContext(), c.Query("user_id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Subjects retrieved",
		Results: subjects,
	})
}

func (handler *Subject) Get(c *fiber.Ctx) error {
	subject, err := handler.Service.GetByID(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Subject retrieved",
		Results: subject,
	})
}

func (handler *Subject) Update(c *fiber.Ctx) error {
	var request domainSubject.UpdateSubjectRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	subject, err := handler.Service.Update(c.UserContext(), c.Params("id"), request)
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Subject updated",
		Results: subject,
	})
}

func (handler *Subject) Delete(c *fiber.Ctx) error {
	err := handler.Service.Delete(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Subject deleted",
	})
}
