package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sociumhq/social-api/errs"
)

// statusForCode maps application error codes to HTTP status codes.
var statusForCode = map[string]int{
	errs.EINVALID:    http.StatusBadRequest,
	errs.ESELF:       http.StatusBadRequest,
	errs.ENOPENDING:  http.StatusBadRequest,
	errs.ENOTFRIENDS: http.StatusBadRequest,
	errs.ENOTFOUND:   http.StatusNotFound,
	errs.ECONFLICT:   http.StatusConflict,
	errs.EINTERNAL:   http.StatusInternalServerError,
}

// writeError translates a domain error into the structured failure
// response. Transport-level *echo.HTTPError values pass through untouched;
// unknown errors surface as 500 with a masked message.
func writeError(c echo.Context, err error) error {
	if httpErr, ok := err.(*echo.HTTPError); ok {
		return httpErr
	}
	code := errs.ErrorCode(err)
	status, ok := statusForCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, echo.Map{
		"error": echo.Map{
			"code":    code,
			"message": errs.ErrorMessage(err),
		},
	})
}
