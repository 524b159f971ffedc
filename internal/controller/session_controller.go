// FILE: internal/controller/session_controller.go
package controller

import (
	"context"

	"doc-templates-be/internal/dto"
	"doc-templates-be/internal/pkg/serverutils"
	"doc-templates-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(api fiber.Router)
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(api fiber.Router) {
	api.Post("/sessions", c.Start)

	s := api.Group("/sessions/:id")
	s.Get("/", c.Get)
	s.Post("/view", c.SetView)
	s.Post("/search", c.Search)
	s.Post("/category", c.SetCategory)
	s.Post("/templates/:templateId/select", c.SelectTemplate)
	s.Post("/auth/open", c.action(c.service.OpenAuth))
	s.Post("/auth/complete", c.CompleteAuth)
	s.Post("/auth/dismiss", c.action(c.service.DismissAuth))
	s.Post("/limit/dismiss", c.action(c.service.DismissLimit))
	s.Post("/limit/pricing", c.action(c.service.ChoosePlan))
	s.Post("/upgrade", c.action(c.service.Upgrade))
	s.Post("/editor/documents", c.action(c.service.RecordDocument))
	s.Post("/editor/back", c.action(c.service.LeaveEditor))
	s.Get("/activity", c.Activity)
}

// Start
// @Summary Open a new browsing session
// @Tags Sessions
// @Success 201 {object} dto.SessionResponse
// @Router /api/sessions [post]
func (c *sessionController) Start(ctx *fiber.Ctx) error {
	res, err := c.service.Start(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.SessionResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "Session started",
		Data:    res,
	})
}

func (c *sessionController) Get(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session ID")
	}
	res, err := c.service.Get(ctx.Context(), id)
	return c.reply(ctx, res, err)
}

func (c *sessionController) SetView(ctx *fiber.Ctx) error {
	var req dto.SetViewRequest
	return c.withBody(ctx, &req, func(id uuid.UUID) (*dto.SessionResponse, error) {
		return c.service.SetView(ctx.Context(), id, &req)
	})
}

func (c *sessionController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	return c.withBody(ctx, &req, func(id uuid.UUID) (*dto.SessionResponse, error) {
		return c.service.Search(ctx.Context(), id, &req)
	})
}

func (c *sessionController) SetCategory(ctx *fiber.Ctx) error {
	var req dto.SetCategoryRequest
	return c.withBody(ctx, &req, func(id uuid.UUID) (*dto.SessionResponse, error) {
		return c.service.SetCategory(ctx.Context(), id, &req)
	})
}

func (c *sessionController) SelectTemplate(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session ID")
	}
	res, err := c.service.SelectTemplate(ctx.Context(), id, ctx.Params("templateId"))
	return c.reply(ctx, res, err)
}

// CompleteAuth
// @Summary Sign the session in with an identity token from the auth provider
// @Tags Sessions
// @Param request body dto.CompleteAuthRequest true "Identity token"
// @Router /api/sessions/{id}/auth/complete [post]
func (c *sessionController) CompleteAuth(ctx *fiber.Ctx) error {
	var req dto.CompleteAuthRequest
	return c.withBody(ctx, &req, func(id uuid.UUID) (*dto.SessionResponse, error) {
		return c.service.CompleteAuth(ctx.Context(), id, &req)
	})
}

func (c *sessionController) Activity(ctx *fiber.Ctx) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session ID")
	}
	res, err := c.service.Activity(ctx.Context(), id, ctx.Query("kind"), ctx.QueryInt("limit", 20))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Activity retrieved", res))
}

// action adapts a body-less session operation to a handler.
func (c *sessionController) action(op func(context.Context, uuid.UUID) (*dto.SessionResponse, error)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := sessionID(ctx)
		if err != nil {
			return badRequest(ctx, "Invalid session ID")
		}
		res, err := op(ctx.Context(), id)
		return c.reply(ctx, res, err)
	}
}

func (c *sessionController) withBody(ctx *fiber.Ctx, req interface{}, op func(uuid.UUID) (*dto.SessionResponse, error)) error {
	id, err := sessionID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid session ID")
	}
	if err := ctx.BodyParser(req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return badRequest(ctx, err.Error())
	}
	res, err := op(id)
	return c.reply(ctx, res, err)
}

func (c *sessionController) reply(ctx *fiber.Ctx, res *dto.SessionResponse, err error) error {
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func sessionID(ctx *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(ctx.Params("id"))
}
