// Package lambda adapts the gateway dispatcher to API Gateway proxy events.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/api/gateway"
	"github.com/99minutos/auth-gateway/pkg/logger"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

type Handler struct {
	dispatcher *gateway.Dispatcher
	log        zerolog.Logger
}

func NewHandler(dispatcher *gateway.Dispatcher, log zerolog.Logger) *Handler {
	return &Handler{dispatcher: dispatcher, log: log}
}

// Handle never returns an error: every failure becomes a JSON response so API
// Gateway does not answer with its own 502.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = logger.WithRequest(ctx, h.log, event.RequestContext.RequestID)

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return h.fail(ctx, gateway.ErrMalformedRequest), nil
		}
		body = decoded
	}

	req, err := gateway.ParseRequest(body)
	if err != nil {
		return h.fail(ctx, err), nil
	}

	out, err := h.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return h.fail(ctx, err), nil
	}
	return respond(http.StatusOK, out), nil
}

func (h *Handler) fail(ctx context.Context, err error) events.APIGatewayProxyResponse {
	code, msg, expected := gateway.Resolve(err)
	if !expected {
		logger.FromContext(ctx, h.log).Error().Err(err).Msg("unhandled error")
	}
	return respond(code, gateway.MessageResponse{Message: msg})
}

func respond(code int, body any) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		code = http.StatusInternalServerError
		payload = []byte(`{"message":"Internal Server Error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    jsonHeaders,
		Body:       string(payload),
	}
}
