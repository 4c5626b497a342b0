package handler

import (
	"github.com/fadilmartias/ai-interviewer/internal/dto"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/response"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// InterviewerHandler serves the review dashboard. Every route requires an
// interviewer token.
type InterviewerHandler struct {
	candidates *usecase.CandidateUsecase
	interviews *usecase.InterviewUsecase
	tokens     *service.JWTService
}

func NewInterviewerHandler(candidates *usecase.CandidateUsecase, interviews *usecase.InterviewUsecase, tokens *service.JWTService) *InterviewerHandler {
	return &InterviewerHandler{candidates: candidates, interviews: interviews, tokens: tokens}
}

func (h *InterviewerHandler) RegisterRoutes(router fiber.Router) {
	interviewer := router.Group("/interviewer", middleware.JWTAuth(h.tokens))
	interviewer.Get("/me", h.Me)
	interviewer.Get("/candidates", h.ListCandidates)
	interviewer.Get("/candidates/:id", h.CandidateDetail)
	interviewer.Get("/sessions/:id", h.SessionDetail)
}

func (h *InterviewerHandler) Me(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return util.AppErrorResponse(c, "unauthorized", errs.Unauthorized("missing claims"))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    fiber.Map{"id": claims.InterviewerID, "email": claims.Email},
	})
}

func (h *InterviewerHandler) ListCandidates(c *fiber.Ctx) error {
	var query dto.ListCandidatesQuery
	if err := util.BindQuery(c, &query); err != nil {
		return util.AppErrorResponse(c, "invalid query", err)
	}

	page, err := h.candidates.List(c.UserContext(), query.Page, query.PageSize, query.Status)
	if err != nil {
		return util.AppErrorResponse(c, "failed to list candidates", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get candidates",
		Data:       dto.NewCandidates(page.Items),
		Pagination: response.NewPagination(page.Page, page.PageSize, page.Total, len(page.Items)),
	})
}

func (h *InterviewerHandler) CandidateDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.AppErrorResponse(c, "invalid candidate id", errs.Validation("candidate id must be a uuid"))
	}

	candidate, sessions, err := h.candidates.Detail(c.UserContext(), id)
	if err != nil {
		return util.AppErrorResponse(c, "failed to get candidate", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data:    dto.NewCandidateDetail(*candidate, sessions),
	})
}

func (h *InterviewerHandler) SessionDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.AppErrorResponse(c, "invalid session id", errs.Validation("session id must be a uuid"))
	}

	session, err := h.interviews.GetSession(c.UserContext(), id)
	if err != nil {
		return util.AppErrorResponse(c, "failed to get session", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get session",
		Data:    dto.NewSession(*session),
	})
}
