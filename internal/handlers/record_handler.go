package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jiseti/jiseti-api/internal/dto"
	"github.com/jiseti/jiseti-api/internal/identity"
	"github.com/jiseti/jiseti-api/internal/services"
)

type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.recordService.Create(auth, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Record created successfully",
		"record":  record,
	})
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	record, err := h.recordService.Get(auth, recordID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(record)
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	page, perPage := pageParams(c)
	records, pagination, err := h.recordService.List(auth, page, perPage)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"records":    records,
		"pagination": pagination,
	})
}

func (h *RecordHandler) Update(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	var req dto.RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.recordService.Update(auth, recordID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Record updated successfully",
		"record":  record,
	})
}

func (h *RecordHandler) UpdateLocation(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	record, err := h.recordService.UpdateLocation(auth, recordID, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Location updated successfully",
		"record":  record,
	})
}

func (h *RecordHandler) UploadImage(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	defer file.Close()

	record, err := h.recordService.AttachImage(auth, recordID, fileHeader.Filename, file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "File uploaded successfully",
		"record":  record,
	})
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	auth, ok := identity.FromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	if err := h.recordService.Delete(auth, recordID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Record deleted successfully"})
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "10"))
	return page, perPage
}
