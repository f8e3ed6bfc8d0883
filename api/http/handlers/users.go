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

type UsersHandler struct {
	useCase auth.AuthUseCase
	log     *logrus.Logger
}

func NewUsersHandler(useCase auth.AuthUseCase, log *logrus.Logger) *UsersHandler {
	return &UsersHandler{useCase: useCase, log: log}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Email is invalid"),
			is.Email.Error("Email is invalid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password should be at least 6 characters"),
			validation.Length(6, 0).Error("Password should be at least 6 characters"),
		),
	)
}

// Register creates a new user account.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /users [post]
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}

	result, err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			return presenter.ErrorList(c, http.StatusBadRequest, "User already exists")
		}
		h.log.WithError(err).Error("register failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{"token": result.Token})
}
