package handlers

import (
	"net/http"

	"portfolio/models"
	"portfolio/services/auth"
	"portfolio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: svc}
}

// bind decodes the JSON body into req, answering 400 with msg on failure.
func bind(c *gin.Context, req any, msg string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.JSONError(c, utils.NewValidationError(msg))
		return false
	}
	return true
}

// RegisterHandler starts a sign-up and mails the verification code.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bind(c, &req, "Please provide all fields") {
		return
	}
	if err := h.AuthService.Register(c.Request.Context(), req); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Verification code sent to email", nil)
}

// VerifyEmailHandler confirms a sign-up code and creates the account.
func (h *AuthHandler) VerifyEmailHandler(c *gin.Context) {
	var req models.VerifyCodeRequest
	if !bind(c, &req, "Please provide email and verification code") {
		return
	}
	resp, err := h.AuthService.VerifyEmail(c.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	getLogger(c).Info("Account created", zap.String("email", resp.Email))
	utils.JSONSuccess(c, http.StatusCreated, "User registered successfully", resp)
}

func (h *AuthHandler) ResendCodeHandler(c *gin.Context) {
	var req models.ResendCodeRequest
	if !bind(c, &req, "Email is required") {
		return
	}
	if err := h.AuthService.ResendCode(c.Request.Context(), req.Email); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "New verification code sent to email", nil)
}

// LoginHandler answers 200 with a session, or 202 when a new device must be
// confirmed by email first.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bind(c, &req, "Please provide all fields") {
		return
	}
	res, err := h.AuthService.Login(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	if res.Challenge {
		utils.JSONSuccess(c, http.StatusAccepted, "New device detected. Verification code sent to email", nil)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "User logged in", res.Auth)
}

func (h *AuthHandler) VerifyLoginEmailHandler(c *gin.Context) {
	var req models.VerifyCodeRequest
	if !bind(c, &req, "Please provide email and verification code") {
		return
	}
	resp, err := h.AuthService.VerifyLoginEmail(c.Request.Context(), req.Email, req.VerificationCode)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "User confirmed", resp)
}

func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if !bind(c, &req, "Please provide all fields") {
		return
	}
	resp, err := h.AuthService.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Password updated successfully", resp)
}
