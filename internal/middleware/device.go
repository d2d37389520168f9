package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/ghaniswara/people-swipe/internal/entity"
	"github.com/ghaniswara/people-swipe/pkg/http_util"
	"github.com/labstack/echo"
)

const (
	DeviceIDHeader = "X-Device-Id"
	DeviceIDField  = "device_id"

	deviceIDContextKey = "deviceID"

	// device ids are tiny; anything beyond this is not worth parsing
	maxDeviceBodyBytes = 64 << 10
)

// DeviceIdentity resolves the anonymous device id from the X-Device-Id
// header, falling back to a device_id query, form or JSON body field. The
// request is rejected with 422 when none carries a usable value.
func DeviceIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			request := entity.DeviceIdentityRequest{
				DeviceID: c.Request().Header.Get(DeviceIDHeader),
			}

			if strings.TrimSpace(request.DeviceID) == "" {
				request.DeviceID = lookupDeviceField(c)
			}

			ok, err := http_util.ValidateRequest(c.Request().Context(), c, &request, DeviceIDHeader+" required")
			if !ok || err != nil {
				return err
			}

			deviceID, err := entity.NewDeviceID(request.DeviceID)
			if err != nil {
				return http_util.EncodeMessage(c, http.StatusUnprocessableEntity, DeviceIDHeader+" required")
			}

			c.Set(deviceIDContextKey, deviceID)

			return next(c)
		}
	}
}

// DeviceIDFromContext returns the id stored by DeviceIdentity.
func DeviceIDFromContext(c echo.Context) (entity.DeviceID, bool) {
	deviceID, ok := c.Get(deviceIDContextKey).(entity.DeviceID)
	return deviceID, ok
}

func lookupDeviceField(c echo.Context) string {
	if value := c.QueryParam(DeviceIDField); strings.TrimSpace(value) != "" {
		return value
	}

	req := c.Request()
	if req.Body == nil || req.Method == http.MethodGet {
		return ""
	}

	contentType := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		return deviceIDFromJSON(c)
	case strings.HasPrefix(contentType, echo.MIMEApplicationForm),
		strings.HasPrefix(contentType, echo.MIMEMultipartForm):
		return c.FormValue(DeviceIDField)
	default:
		return ""
	}
}

// deviceIDFromJSON peeks at the body and puts it back for the handler.
func deviceIDFromJSON(c echo.Context) string {
	req := c.Request()

	body, err := io.ReadAll(io.LimitReader(req.Body, maxDeviceBodyBytes))
	req.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(body), req.Body),
		Closer: req.Body,
	}

	if err != nil || len(body) == 0 {
		return ""
	}

	decoded, err := http_util.DecodeBody(body, entity.DeviceIdentityRequest{})
	if err != nil {
		return ""
	}

	return decoded.DeviceID
}

type readCloser struct {
	io.Reader
	io.Closer
}
