package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID reads the ":id" path param. Malformed ids cannot match a row.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// bind decodes the request into i, reporting malformed input as a 400.
func bind(ctx echo.Context, i interface{}) error {
	if err := ctx.Bind(i); err != nil {
		if herr, ok := err.(*echo.HTTPError); ok {
			return herr
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
