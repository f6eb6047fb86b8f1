package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"fulfillment/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// apiDocument is the parsed OpenAPI description of /api/v1. It validates
// incoming requests and is served as swagger doc.json.
type apiDocument struct {
	doc    *openapi3.T
	router routers.Router
	raw    string
}

// ReadDoc implements swag.Swagger.
func (d *apiDocument) ReadDoc() string {
	return d.raw
}

// loadAPIDocument parses the embedded document once per process; swag keeps
// a global registry that rejects a second registration under the same name.
var loadAPIDocument = sync.OnceValues(func() (*apiDocument, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode openapi document: %w", err)
	}

	d := &apiDocument{doc: doc, router: router, raw: string(raw)}
	swag.Register(swag.Name, d)
	return d, nil
})

// validateRequests checks parameters and bodies against the document before
// the handler runs. Requests for routes the document does not describe are
// passed through untouched.
func validateRequests(d *apiDocument) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := d.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}

			return next(c)
		}
	}
}
