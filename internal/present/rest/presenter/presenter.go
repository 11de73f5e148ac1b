package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Resource is a JSON:API resource object.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    map[string]any          `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Ref is a resource identifier inside a relationship.
type Ref struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship holds either a single Ref or a []Ref.
type Relationship struct {
	Data any `json:"data"`
}

// Document is a JSON:API top-level document.
type Document struct {
	Data     any            `json:"data"`
	Included []Resource     `json:"included,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ErrorSource points at the request parameter that caused a failure.
type ErrorSource struct {
	Parameter string `json:"parameter"`
}

// ErrorObject is a JSON:API error.
type ErrorObject struct {
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorDocument wraps errors for the client.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, detail string) error {
	slog.Debug("bad request", slog.String("detail", detail))
	return c.JSON(http.StatusBadRequest, ErrorDocument{Errors: []ErrorObject{
		{Title: "Invalid Request", Detail: detail},
	}})
}

func BadRequestParam(c echo.Context, param, detail string) error {
	slog.Debug("bad request", slog.String("param", param), slog.String("detail", detail))
	return c.JSON(http.StatusBadRequest, ErrorDocument{Errors: []ErrorObject{
		{Title: "Invalid Request", Detail: detail, Source: &ErrorSource{Parameter: param}},
	}})
}

func NotFound(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ErrorDocument{Errors: []ErrorObject{
		{Title: "Not Found", Detail: detail},
	}})
}

func Unauthorized(c echo.Context, param, title, detail string) error {
	doc := ErrorDocument{Errors: []ErrorObject{{Title: title, Detail: detail}}}
	if param != "" {
		doc.Errors[0].Source = &ErrorSource{Parameter: param}
	}
	return c.JSON(http.StatusUnauthorized, doc)
}

func Conflict(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ErrorDocument{Errors: []ErrorObject{
		{Title: "Conflict", Detail: detail},
	}})
}

func InternalError(c echo.Context, err error) error {
	slog.Error("internal error", slog.String("error", err.Error()))
	return c.JSON(http.StatusInternalServerError, ErrorDocument{Errors: []ErrorObject{
		{Title: "Internal Server Error", Detail: "something went wrong"},
	}})
}
