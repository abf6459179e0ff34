package http

import (
	"strconv"
	"strings"

	"p2p-lending-ledger/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// uintParam parses a path ID. IDs are allocated from zero and stay within the
// signed 64-bit range every supported database can store.
func uintParam(c echo.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 63)
	return v, err == nil
}

// page reads limit/offset query params; absent values are zero.
func page(c echo.Context) (limit, offset int, err error) {
	err = echo.QueryParamsBinder(c).
		Int("limit", &limit).
		Int("offset", &offset).
		BindError()
	if err == nil && (limit < 0 || offset < 0) {
		err = strconv.ErrRange
	}
	return limit, offset, err
}

func caller(c echo.Context) string { return middleware.CallerFrom(c) }

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
