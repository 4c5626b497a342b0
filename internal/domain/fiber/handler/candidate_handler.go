package handler

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/dto"
	"github.com/fadilmartias/ai-interviewer/internal/errs"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxResumeSize = 5 * 1024 * 1024

type CandidateHandler struct {
	uc *usecase.CandidateUsecase
}

func NewCandidateHandler(uc *usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(router fiber.Router) {
	candidates := router.Group("/candidates")
	candidates.Post("/", h.Register)
	candidates.Post("/upload", middleware.RateLimiter(5, 1*time.Minute), h.Upload)
}

func (h *CandidateHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterCandidateRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}
	return h.register(c, req)
}

// Upload registers a candidate from a multipart form with a PDF resume in
// the "resume" field. Form fields override what is read from the file.
func (h *CandidateHandler) Upload(c *fiber.Ctx) error {
	var req dto.RegisterCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.AppErrorResponse(c, "invalid request", errs.Validation("invalid multipart form"))
	}
	if err := util.ValidateStruct(&req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	text, err := h.resumeText(c)
	if err != nil {
		return util.AppErrorResponse(c, "failed to read resume", err)
	}
	req.ResumeText = text
	return h.register(c, req)
}

func (h *CandidateHandler) register(c *fiber.Ctx, req dto.RegisterCandidateRequest) error {
	candidate, parsed, err := h.uc.Register(c.UserContext(), usecase.RegisterCandidateInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		AppliedPosition: req.AppliedPosition,
		ResumeText:      req.ResumeText,
	})
	if err != nil {
		return util.AppErrorResponse(c, "failed to register candidate", err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Candidate registered",
		Data: dto.RegisterCandidateResponse{
			Candidate: dto.NewCandidate(*candidate),
			Parsed:    parsedResume(parsed),
		},
	})
}

func (h *CandidateHandler) resumeText(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("resume")
	if err != nil {
		return "", errs.Validation("resume file is required")
	}
	if file.Size > maxResumeSize {
		return "", errs.Validation("resume file size is too large (max 5MB)")
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", errs.Validation("unsupported resume file type " + ext)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	text, err := util.ExtractPDFText(data)
	if errors.Is(err, util.ErrEmptyDocument) {
		return "", errs.Validation("resume has no readable text")
	}
	if err != nil {
		return "", errs.Validation("resume is not a readable PDF")
	}
	return text, nil
}

func parsedResume(p service.ParsedResume) dto.ParsedResumeDTO {
	return dto.ParsedResumeDTO{Name: p.Name, Email: p.Email, Phone: p.Phone, Missing: p.Missing}
}
