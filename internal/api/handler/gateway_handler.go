package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-gateway/internal/api/gateway"
)

const maxBodyBytes = 64 << 10

// GatewayHandler serves the single action endpoint.
type GatewayHandler struct {
	dispatcher *gateway.Dispatcher
}

func NewGatewayHandler(dispatcher *gateway.Dispatcher) *GatewayHandler {
	return &GatewayHandler{dispatcher: dispatcher}
}

// Handle dispatches on the action field of the body.
//
// @Summary      Sign up, sign in or ping
// @Description  SignUp creates the identity and returns a token; SignIn returns a token; Ping returns Pong.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      gateway.Request          true  "Action envelope"
// @Success      200   {object}  gateway.TokenResponse
// @Failure      400   {object}  gateway.MessageResponse
// @Failure      413   {object}  gateway.MessageResponse
// @Failure      429   {object}  gateway.MessageResponse
// @Failure      500   {object}  gateway.MessageResponse
// @Router       / [post]
func (h *GatewayHandler) Handle(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return gateway.ErrMalformedRequest
	}
	if len(body) > maxBodyBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge))
	}

	req, err := gateway.ParseRequest(body)
	if err != nil {
		return err
	}

	out, err := h.dispatcher.Dispatch(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
