package presenter

import (
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// ErrorItem is a single client-visible error message.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorListResponse is the envelope for validation and credential failures:
// {"errors":[{"msg":"..."}]}.
type ErrorListResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// MsgResponse is the envelope for single-message failures: {"msg":"..."}.
type MsgResponse struct {
	Msg string `json:"msg"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Msg(c *fiber.Ctx, status int, msg string) error {
	return JSON(c, status, MsgResponse{Msg: msg})
}

func ErrorList(c *fiber.Ctx, status int, msgs ...string) error {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	return JSON(c, status, ErrorListResponse{Errors: items})
}

// ValidationErrors renders an ozzo validation result as a 400 with one error
// item per failed field, ordered by field name so responses are stable.
func ValidationErrors(c *fiber.Ctx, err error) error {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return ErrorList(c, http.StatusBadRequest, err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, verrs[f].Error())
	}
	return ErrorList(c, http.StatusBadRequest, msgs...)
}
