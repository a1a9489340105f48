package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

// CatalogError describes a problem with attribute catalog input or schema
// construction. Validation failures of user data are never CatalogErrors.
type CatalogError struct {
	Attribute string
	Value     string
	Facet     string
	Path      string
	Message   string
	status    int
}

func NewCatalogError(msg string) *CatalogError {
	return &CatalogError{
		Message: msg,
		status:  http.StatusBadRequest,
	}
}

// NewCatalogErrorf creates a new CatalogError with a formatted message
func NewCatalogErrorf(format string, args ...any) *CatalogError {
	return NewCatalogError(fmt.Sprintf(strings.ReplaceAll(format, "%w", "%v"), args...))
}

func WrapCatalogError(e error) *CatalogError {
	if e == nil {
		return nil
	}

	if catalogError, ok := e.(*CatalogError); ok {
		return catalogError
	}

	return NewCatalogError(e.Error())
}

func (e *CatalogError) Error() string {
	path := []string{}
	if e.Facet != "" {
		path = append(path, fmt.Sprintf("facet '%s'", e.Facet))
	}
	if e.Attribute != "" {
		path = append(path, fmt.Sprintf("attribute '%s'", e.Attribute))
	}
	if e.Value != "" {
		path = append(path, fmt.Sprintf("value '%s'", e.Value))
	}
	if e.Path != "" {
		path = append(path, fmt.Sprintf("path '%s'", e.Path))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

func (e *CatalogError) AddAttribute(attributeID string) *CatalogError {
	e.Attribute = attributeID
	return e
}

func (e *CatalogError) AddValue(valueID string) *CatalogError {
	e.Value = valueID
	return e
}

func (e *CatalogError) AddFacet(facet string) *CatalogError {
	e.Facet = facet
	return e
}

func (e *CatalogError) AddPath(path string) *CatalogError {
	e.Path = path
	return e
}

// WithStatus overrides the HTTP status reported by ToHTTPError.
func (e *CatalogError) WithStatus(status int) *CatalogError {
	e.status = status
	return e
}

func (e *CatalogError) StatusCode() int {
	if e.status == 0 {
		return http.StatusBadRequest
	}
	return e.status
}

func (e *CatalogError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(e.StatusCode(), e.Error()).
		AddMetaValue("attribute_id", e.Attribute).
		AddMetaValue("value_id", e.Value).
		AddMetaValue("facet", e.Facet).
		AddMetaValue("path", e.Path)
}

func IsCatalogError(err error) bool {
	_, ok := err.(*CatalogError)
	return ok
}
