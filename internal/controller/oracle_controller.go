package controller

import (
	"github.com/oraclehub-commits/brain-hub/internal/dto"
	"github.com/oraclehub-commits/brain-hub/internal/pkg/serverutils"
	"github.com/oraclehub-commits/brain-hub/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOracleController interface {
	RegisterRoutes(r fiber.Router)
	Consult(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetSessionHistory(ctx *fiber.Ctx) error
	ArchiveSession(ctx *fiber.Ctx) error
}

type oracleController struct {
	oracleService service.IOracleService
}

func NewOracleController(oracleService service.IOracleService) IOracleController {
	return &oracleController{
		oracleService: oracleService,
	}
}

func (c *oracleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oracle/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("consult", c.Consult)
	h.Get("sessions", c.GetAllSessions)
	h.Get("sessions/:id/history", c.GetSessionHistory)
	h.Delete("sessions/:id", c.ArchiveSession)
}

func (c *oracleController) Consult(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ConsultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.oracleService.Consult(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success consult oracle", res))
}

func (c *oracleController) GetAllSessions(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.oracleService.GetAllSessions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *oracleController) GetSessionHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.oracleService.GetSessionHistory(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *oracleController) ArchiveSession(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.oracleService.ArchiveSession(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success archive session", nil))
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userId, _ := ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)
	return userId
}
