package rest

import (
	"io"

	domainNote "github.com/estudia-app/estudia/domains/note"
	pkgError "github.com/estudia-app/estudia/pkg/error"
	"github.com/estudia-app/estudia/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Note struct {
	Service domainNote.INoteUsecase
}

func InitRestNote(app fiber.Router, service domainNote.INoteUsecase) Note {
	rest := Note{Service: service}
	app.Post("/notes", rest.Create)
	app.Get("/notes", rest.List)
	app.Get("/notes/:id", rest.Get)
	app.Put("/notes/:id", rest.Update)
	app.Post("/notes/:id/reprocess", rest.Reprocess)
	app.Delete("/notes/:id", rest.Delete)

	return rest
}

// Create accepts multipart form data: text fields plus an optional "image"
// file that triggers the async OCR pipeline.
func (handler *Note) Create(c *fiber.Ctx) error {
	request := domainNote.CreateNoteRequest{
		UserID:    c.FormValue("user_id"),
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		SubjectID: c.FormValue("subject_id"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		panicIfNeeded(err)
		defer src.Close()

		data, err := io.ReadAll(src)
		panicIfNeeded(err)

		request.ImageData = data
		request.ImageMime = file.Header.Get("Content-Type")
		if request.ImageMime == "" {
			panic(pkgError.ValidationError("image: missing content type."))
		}
	}

	n, err := handler.Service.Create(c.UserContext(), request)
	panicIfNeeded(err)

	message := "Note created"
	if n.Status == domainNote.StatusPending {
		message = "Note created, image queued for processing"
	}

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: message,
		Results: n,
	})
}

func (handler *Note) List(c *fiber.Ctx) error {
	notes, err := handler.Service.ListByUser(c.UserContext(), c.Query("user_id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Notes retrieved",
		Results: notes,
	})
}

func (handler *Note) Get(c *fiber.Ctx) error {
	n, err := handler.Service.GetByID(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Note retrieved",
		Results: n,
	})
}

func (handler *Note) Update(c *fiber.Ctx) error {
	var request domainNote.UpdateNoteRequest
	err := c.BodyParser(&request)
	panicIfNeeded(err)

	n, err := handler.Service.Update(c.UserContext(), c.Params("id"), request)
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Note updated",
		Results: n,
	})
}

func (handler *Note) Reprocess(c *fiber.Ctx) error {
	n, err := handler.Service.Reprocess(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.Status(fiber.StatusAccepted).JSON(utils.ResponseData{
		Status:  202,
		Code:    "ACCEPTED",
		Message: "Note queued for reprocessing",
		Results: n,
	})
}

func (handler *Note) Delete(c *fiber.Ctx) error {
	err := handler.Service.Delete(c.UserContext(), c.Params("id"))
	panicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Note deleted",
	})
}
