package handler

import (
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/dto"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	uc      *usecase.InterviewUsecase
	gateway *service.LLMGateway
}

func NewInterviewHandler(uc *usecase.InterviewUsecase, gateway *service.LLMGateway) *InterviewHandler {
	return &InterviewHandler{uc: uc, gateway: gateway}
}

func (h *InterviewHandler) RegisterRoutes(router fiber.Router) {
	interview := router.Group("/interview")
	interview.Post("/start", middleware.RateLimiter(5, 1*time.Minute), h.Start)
	interview.Post("/answer", h.SubmitAnswer)
	interview.Post("/finish", h.Finish)
	interview.Get("/gateway", h.Gateway)
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	var req dto.StartInterviewRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	session, err := h.uc.Start(c.UserContext(), uuid.MustParse(req.CandidateID))
	if err != nil {
		return util.AppErrorResponse(c, "failed to start interview", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview started",
		Data: dto.StartInterviewResponse{
			SessionID: session.ID,
			Attempt:   session.Attempt,
			Questions: dto.NewQuestions(session.Slots),
		},
	})
}

func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	eval, err := h.uc.SubmitAnswer(c.UserContext(), usecase.SubmitAnswerInput{
		SessionID:        uuid.MustParse(req.SessionID),
		QID:              req.QID,
		Answer:           req.Answer,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})
	if err != nil {
		return util.AppErrorResponse(c, "failed to score answer", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer scored",
		Data: dto.SubmitAnswerResponse{
			QID:       req.QID,
			Score:     eval.Score,
			Summary:   eval.Summary,
			Breakdown: eval.Breakdown,
		},
	})
}

func (h *InterviewHandler) Finish(c *fiber.Ctx) error {
	var req dto.FinishInterviewRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	result, err := h.uc.Finish(c.UserContext(), uuid.MustParse(req.SessionID))
	if err != nil {
		return util.AppErrorResponse(c, "failed to finish interview", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview finished",
		Data: dto.FinishInterviewResponse{
			SessionID:  result.SessionID,
			TotalScore: result.TotalScore,
			Summary:    result.Summary,
			Status:     result.Status,
		},
	})
}

// Gateway reports whether answers are scored by a model or by the fallback.
func (h *InterviewHandler) Gateway(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get gateway info",
		Data:    h.gateway.Info(),
	})
}
