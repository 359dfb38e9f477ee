package rest

import (
	domainTodo "github.com/estudia-app/estudia/domains/todo"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Todo struct {
	Service domainTodo.ITodoUsecase
}

func InitRestTodo(app fiber.Router, service domainTodo.ITodoUsecase) Todo {
	rest := Todo{Service: service}
	app.Post("/todos", rest.Create)
	app.Get("/todos", rest.List)
	app.Get("/todos/:id", rest.Get)
	app.Put("/todos/:id", rest.Update)
	app.Post("/todos/:id/toggle", rest.Toggle)
	app.Delete("/todos/:id", rest.Delete)

	return rest
}

func (handler *Todo) Create(c *fiber.Ctx) error {
	var request domainTodo.CreateTodoRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	t, err := handler.Service.Create(c.UserContext(), request)
	panicIfNeeded(err)

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: "Todo created",
		Results: t,
	})
}

func (handler *Todo) List(c *fiber.Ctx) error {
	filter := domainTodo.TodoFilter{}
	if v := c.Query("subject_id"); v != "" {
		filter.SubjectID = &v
	}
	if v := c.Query("completed"); v != "" {
		completed := v == "true" || v == "1"
		filter.Completed = &completed
	}

	todos, err := handler.Service.ListByUser(c.UserContext(), c.Query("user_id"), filter)
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Todos retrieved",
		Results: todos,
	})
}

func (handler *Todo) Get(c *fiber.Ctx) error {
	t, err := handler.Service.GetByID(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Todo retrieved",
		Results: t,
	})
}

func (handler *Todo) Update(c *fiber.Ctx) error {
	var request domainTodo.UpdateTodoRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	t, err := handler.Service.Update(c.UserContext(), c.Params("id"), request)
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Todo updated",
		Results: t,
	})
}

func (handler *Todo) Toggle(c *fiber.Ctx) error {
	t, err := handler.Service.ToggleComplete(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Todo toggled",
		Results: t,
	})
}

func (handler *Todo) Delete(c *fiber.Ctx) error {
	err := handler.Service.Delete(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Todo deleted",
	})
}
