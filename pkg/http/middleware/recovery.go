package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "StockDash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.String("path", c.Path()),
						applogger.Error(err),
						applogger.String("stack", string(debug.Stack())),
					)
					if !c.Response().Committed {
						returnErr = c.JSON(http.StatusInternalServerError, map[string]interface{}{
							"status":  http.StatusInternalServerError,
							"message": "Internal Server Error",
						})
					}
				}
			}()
			return next(c)
		}
	}
}
