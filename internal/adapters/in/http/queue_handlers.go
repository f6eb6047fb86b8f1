package http

import (
	"fmt"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// queue serves one worklist. Only the general list accepts ?status; on the
// other queues it is rejected by the query constructor.
func (s *Server) queue(queue queries.Queue) echo.HandlerFunc {
	return func(c echo.Context) error {
		var params listQueueParams
		if err := params.bind(c); err != nil {
			return err
		}

		limit := queries.DefaultQueueLimit
		if params.Limit != nil {
			limit = *params.Limit
		}
		offset := 0
		if params.Offset != nil {
			offset = *params.Offset
		}

		query, err := queries.NewListQueueQuery(queue, deref(params.Status), deref(params.Search), limit, offset)
		if err != nil {
			return err
		}

		resp, err := s.handlers.ListQueue.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, resp)
	}
}

// AssembleProductionDocument handles GET /api/v1/production-documents/:sku.
func (s *Server) AssembleProductionDocument(c echo.Context) error {
	var orderIDs *[]string
	err := runtime.BindQueryParameter("form", false, false, "orderIds", c.QueryParams(), &orderIDs)
	if err != nil {
		return invalidParameter("orderIds", err)
	}

	var ids []string
	if orderIDs != nil {
		ids = nonBlank(*orderIDs)
	}

	query, err := queries.NewAssembleProductionDocumentQuery(c.Param("sku"), ids)
	if err != nil {
		return err
	}

	doc, err := s.handlers.AssembleDocument.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	s.metrics.DocumentsAssembled.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, "application/pdf", doc.Content)
}

// listQueueParams are the query parameters shared by every worklist.
type listQueueParams struct {
	Status *string
	Search *string
	Limit  *int
	Offset *int
}

func (p *listQueueParams) bind(c echo.Context) error {
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &p.Status); err != nil {
		return invalidParameter("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", c.QueryParams(), &p.Search); err != nil {
		return invalidParameter("search", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &p.Limit); err != nil {
		return invalidParameter("limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &p.Offset); err != nil {
		return invalidParameter("offset", err)
	}
	return nil
}

func invalidParameter(name string, err error) error {
	return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("invalid format for parameter %s: %w", name, err))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonBlank trims the elements of a comma list and drops empty ones, so
// "a,+b," yields [a b].
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
