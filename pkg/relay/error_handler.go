package relay

import (
	"errors"

	"github.com/Abraxas-365/mailgun/pkg/errx"
	"github.com/Abraxas-365/mailgun/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts handler errors to JSON responses. With debug set, the
// underlying cause of an errx.Error is included.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)

		logx.WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"ip":         c.IP(),
			"request_id": requestID,
		}).WithError(err).Warn("Request error")

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errx.HTTPErrorResponse{
				Code:       "FIBER_ERROR",
				Message:    fe.Message,
				Type:       string(errx.TypeValidation),
				StatusCode: fe.Code,
				RequestID:  requestID,
			})
		}

		resp := errx.AsHTTPResponse(err)
		resp.RequestID = requestID

		var e *errx.Error
		if debug && errors.As(err, &e) && e.Err != nil {
			details := make(map[string]interface{}, len(resp.Details)+1)
			for k, v := range resp.Details {
				details[k] = v
			}
			details["underlying_error"] = e.Err.Error()
			resp.Details = details
		}

		return c.Status(resp.StatusCode).JSON(resp)
	}
}

// NotFound handles unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(errx.HTTPErrorResponse{
		Code:       "NOT_FOUND",
		Message:    "The requested endpoint does not exist",
		Type:       string(errx.TypeNotFound),
		StatusCode: fiber.StatusNotFound,
		RequestID:  c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
