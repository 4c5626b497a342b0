package handler

import (
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/dto"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth", middleware.RateLimiter(10, 1*time.Minute))
	auth.Post("/signup", h.SignUp)
	auth.Post("/signin", h.SignIn)
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	result, err := h.uc.SignUp(c.UserContext(), usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return util.AppErrorResponse(c, "failed to sign up", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Signed up",
		Data:    authResponse(result),
	})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := util.BindJSON(c, &req); err != nil {
		return util.AppErrorResponse(c, "invalid request", err)
	}

	result, err := h.uc.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return util.AppErrorResponse(c, "failed to sign in", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Signed in",
		Data:    authResponse(result),
	})
}

func authResponse(r usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Interviewer: dto.NewInterviewer(*r.Interviewer),
		Token:       r.Token,
		ExpiresAt:   r.ExpiresAt,
	}
}
