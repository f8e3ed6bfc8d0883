package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dkozyrev/devconnect/api/http/presenter"
	"github.com/dkozyrev/devconnect/pkg/github"
	"github.com/dkozyrev/devconnect/pkg/profile"
)

type ProfileHandler struct {
	useCase profile.UseCase
	github  *github.Client
	log     *logrus.Logger
}

func NewProfileHandler(useCase profile.UseCase, gh *github.Client, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{useCase: useCase, github: gh, log: log}
}

// skillList accepts both JSON forms clients send: an array of strings or a
// single comma-separated string.
type skillList []string

func (s *skillList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = arr
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = profile.SplitSkills(str)
	return nil
}

type profileRequest struct {
	Status         string         `json:"status"`
	Skills         skillList      `json:"skills"`
	Company        string         `json:"company"`
	Website        string         `json:"website"`
	Location       string         `json:"location"`
	Bio            string         `json:"bio"`
	GithubUsername string         `json:"githubusername"`
	Social         profile.Social `json:"social"`
}

func (r profileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required.Error("Status is required")),
		validation.Field(&r.Skills, validation.Required.Error("Skills are required")),
	)
}

// Save creates or updates the caller's profile.
// @Summary Create/update own profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body profileRequest true "profile fields"
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /profile [post]
func (h *ProfileHandler) Save(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}
	p, err := h.useCase.Save(c.Context(), id, profile.Input{
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social,
	})
	if err != nil {
		h.log.WithError(err).Error("save profile failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Me returns the caller's profile.
// @Summary Own profile
// @Tags    profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Failure 404 {object} presenter.MsgResponse
// @Router  /profile/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	p, err := h.useCase.Me(c.Context(), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return presenter.Msg(c, http.StatusNotFound, "There is no profile for the user")
		}
		h.log.WithError(err).Error("get own profile failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// List returns all profiles.
// @Summary List profiles
// @Tags    profile
// @Produce json
// @Success 200 {array} profile.Profile
// @Router  /profile [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.useCase.List(c.Context())
	if err != nil {
		h.log.WithError(err).Error("list profiles failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Server error")
	}
	return presenter.JSON(c, http.StatusOK, profiles)
}

// DeleteAccount removes the caller's posts, profile and user record.
// @Summary Delete account
// @Tags    profile
// @Produce json
// @Security TokenAuth
// @Success 200 {object} presenter.MsgResponse
// @Router  /profile [delete]
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	if err := h.useCase.DeleteAccount(c.Context(), id); err != nil {
		h.log.WithError(err).Error("delete account failed")
		return presenter.Msg(c, http.StatusInternalServerError, "Could not delete user")
	}
	return presenter.Msg(c, http.StatusOK, "Deleted User")
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r experienceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("Title is required")),
		validation.Field(&r.Company, validation.Required.Error("Company is required")),
		validation.Field(&r.From, validation.Required.Error("From is required")),
	)
}

// AddExperience prepends an experience entry to the caller's profile.
// @Summary Add experience
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body experienceRequest true "experience entry"
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /profile/experience [post]
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}
	from, err := parseDate(req.From)
	if err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "From is invalid")
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "To is invalid")
	}
	p, err := h.useCase.AddExperience(c.Context(), id, profile.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return h.profileMutationError(c, err, "add experience")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// ListExperience returns the caller's experience entries.
// @Summary List experience
// @Tags    profile
// @Produce json
// @Security TokenAuth
// @Success 200 {array} profile.Experience
// @Router  /profile/experience [get]
func (h *ProfileHandler) ListExperience(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	p, err := h.useCase.Me(c.Context(), id)
	if err != nil {
		return h.profileMutationError(c, err, "list experience")
	}
	return presenter.JSON(c, http.StatusOK, p.Experience)
}

// RemoveExperience deletes one experience entry by id.
// @Summary Remove experience
// @Tags    profile
// @Produce json
// @Param   exp_id path string true "experience id"
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Router  /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	expID, err := uuid.Parse(c.Params("exp_id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Invalid id")
	}
	p, err := h.useCase.RemoveExperience(c.Context(), id, expID)
	if err != nil {
		return h.profileMutationError(c, err, "remove experience")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r educationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.School, validation.Required.Error("School is required")),
		validation.Field(&r.Degree, validation.Required.Error("Degree is required")),
		validation.Field(&r.FieldOfStudy, validation.Required.Error("Field of study is required")),
		validation.Field(&r.From, validation.Required.Error("From is required")),
	)
}

// AddEducation prepends an education entry to the caller's profile.
// @Summary Add education
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body educationRequest true "education entry"
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorListResponse
// @Router  /profile/education [post]
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if err := req.Validate(); err != nil {
		return presenter.ValidationErrors(c, err)
	}
	from, err := parseDate(req.From)
	if err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "From is invalid")
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return presenter.ErrorList(c, http.StatusBadRequest, "To is invalid")
	}
	p, err := h.useCase.AddEducation(c.Context(), id, profile.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return h.profileMutationError(c, err, "add education")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// ListEducation returns the caller's education entries.
// @Summary List education
// @Tags    profile
// @Produce json
// @Security TokenAuth
// @Success 200 {array} profile.Education
// @Router  /profile/education [get]
func (h *ProfileHandler) ListEducation(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	p, err := h.useCase.Me(c.Context(), id)
	if err != nil {
		return h.profileMutationError(c, err, "list education")
	}
	return presenter.JSON(c, http.StatusOK, p.Education)
}

// RemoveEducation deletes one education entry by id.
// @Summary Remove education
// @Tags    profile
// @Produce json
// @Param   edu_id path string true "education id"
// @Security TokenAuth
// @Success 200 {object} profile.Profile
// @Router  /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c *fiber.Ctx) error {
	id, ok := actorID(c)
	if !ok {
		return presenter.Msg(c, http.StatusUnauthorized, "Token is not valid")
	}
	eduID, err := uuid.Parse(c.Params("edu_id"))
	if err != nil {
		return presenter.Msg(c, http.StatusBadRequest, "Invalid id")
	}
	p, err := h.useCase.RemoveEducation(c.Context(), id, eduID)
	if err != nil {
		return h.profileMutationError(c, err, "remove education")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// GithubRepos proxies the latest public repositories of a GitHub user.
// @Summary Github repositories
// @Tags    profile
// @Produce json
// @Param   username path string true "github username"
// @Success 200 {array} github.Repo
// @Failure 404 {object} presenter.MsgResponse
// @Router  /profile/github/{username} [get]
func (h *ProfileHandler) GithubRepos(c *fiber.Ctx) error {
	repos, err := h.github.Repos(c.Context(), c.Params("username"))
	if err != nil {
		return presenter.Msg(c, http.StatusNotFound, "Could not find user")
	}
	return presenter.JSON(c, http.StatusOK, repos)
}

func (h *ProfileHandler) profileMutationError(c *fiber.Ctx, err error, op string) error {
	if errors.Is(err, profile.ErrNotFound) {
		return presenter.Msg(c, http.StatusNotFound, "There is no profile for the user")
	}
	h.log.WithError(err).Error(op + " failed")
	return presenter.Msg(c, http.StatusInternalServerError, "Server error")
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
