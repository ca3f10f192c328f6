package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// RequestValidator checks requests against the OpenAPI document. Paths the
// document does not describe are left to the router.
func RequestValidator(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building OpenAPI router: %w", err)
	}

	options := &openapi3filter.Options{
		MultiError:          false,
		ExcludeResponseBody: true,
		AuthenticationFunc:  openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)

				return
			}

			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)

				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}

			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeValidationError(w, err)

				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func writeValidationError(w http.ResponseWriter, err error) {
	var requestErr *openapi3filter.RequestError
	if !errors.As(err, &requestErr) {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())

		return
	}

	if requestErr.RequestBody != nil && isDecodeError(requestErr.Err) {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")

		return
	}

	writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationMessage(requestErr))
}

func isDecodeError(err error) bool {
	var parseErr *openapi3filter.ParseError

	return errors.As(err, &parseErr)
}

func validationMessage(requestErr *openapi3filter.RequestError) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(requestErr.Err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if field == "" {
			return schemaErr.Reason
		}

		return field + ": " + schemaErr.Reason
	}

	if requestErr.Parameter != nil {
		return requestErr.Parameter.Name + ": " + requestErr.Reason
	}

	if requestErr.Reason != "" {
		return requestErr.Reason
	}

	return requestErr.Error()
}
