package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/dkozyrev/devconnect/api/http/presenter"
	"github.com/dkozyrev/devconnect/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *logrus.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email is invalid"),
			is.Email.Error("Email is invalid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password is required"),
		),
	)
}

// Login verifies credentials and issues a session token.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorListResponse
// @Failure 401 {object} presenter.ErrorListResponse
// @Router  /auth [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		// The same response whether the email is unknown or the password is
		// wrong; the caller must not be able to tell the two apart.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.ErrorList(c, http.StatusUnauthorized, "Invalid credentials")
		}
		h.log.WithError(err).Error("login failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{"token": result.Token})
}

// CurrentUser resolves the token on the request to its user record.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} auth.User
// @Failure 401 {object} presenter.MsgResponse
// @Router  /auth [get]
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	user, err := h.useCase.CurrentUser(c.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
		}
		h.log.WithError(err).Error("current user lookup failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, user)
}
