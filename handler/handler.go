// Package handler exposes the flux-web use cases over HTTP. The same gin
// route table serves API Gateway proxy events in Lambda and plain HTTP
// requests in the local server.
package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flux-web/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	correlationKey    = "correlation_id"

	// statusClientClosedRequest is the de facto status for a request the
	// client abandoned.
	statusClientClosedRequest = 499
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var reasonMessages = map[string]string{
	"invalid_json":       "Request body must be valid JSON",
	"email_send_error":   "Failed to send message. Please try again later.",
	"email_rate_limited": "Too many messages right now. Please try again later.",
	"concurrent_turn":    "Another message is being processed for this chat",
	"route_not_found":    "Route not found",
}

type Handler struct {
	svc    Services
	router *gin.Engine
	logger *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewHandler(svc Services, opts ...Option) (*Handler, error) {
	if svc.Chat == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	h := &Handler{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.router = h.routes()
	return h, nil
}

// ServeHTTP lets the local server use the route table directly.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Handle serves one API Gateway proxy event.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := proxyRequest(ctx, event)
	if err != nil {
		h.logger.WarnContext(ctx, "malformed proxy event", "err", err)
		body, _ := json.Marshal(errorResponse{Error: string(usecase.ErrorInvalidInput), Message: "Malformed request"})
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
			Body:       string(body),
		}, nil
	}
	w := newProxyWriter()
	h.router.ServeHTTP(w, req)
	return w.response(), nil
}

func (h *Handler) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), correlationID(), h.logRequests())
	r.NoRoute(func(c *gin.Context) {
		h.fail(c, &usecase.Error{Code: usecase.ErrorNotFound, Reason: "route_not_found"})
	})

	h.publicRoutes(r)
	h.dashboardRoutes(r)
	h.exportRoutes(r)
	return r
}

func correlationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(correlationHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationKey, id)
		c.Header(correlationHeader, id)
		c.Next()
	}
}

func (h *Handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.InfoContext(c.Request.Context(), "request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"correlation_id", c.GetString(correlationKey),
		)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, body := toErrorResponse(err)
	attrs := []any{"err", err, "code", body.Error, "correlation_id", c.GetString(correlationKey)}
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(c.Request.Context(), "request failed", attrs...)
	} else {
		h.logger.WarnContext(c.Request.Context(), "request rejected", attrs...)
	}
	c.AbortWithStatusJSON(status, body)
}

func toErrorResponse(err error) (int, errorResponse) {
	var uerr *usecase.Error
	if !errors.As(err, &uerr) {
		return http.StatusInternalServerError, errorResponse{Error: string(usecase.ErrorInternal), Message: "Internal error"}
	}

	resp := errorResponse{Error: string(uerr.Code), Message: reasonMessage(uerr.Reason)}
	var fields usecase.FieldErrors
	if errors.As(uerr.Err, &fields) {
		resp.Fields = fields
		resp.Message = fields.Error()
	}

	switch uerr.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, resp
	case usecase.ErrorNotFound:
		return http.StatusNotFound, resp
	case usecase.ErrorConflict:
		return http.StatusConflict, resp
	case usecase.ErrorRateLimited:
		return http.StatusTooManyRequests, resp
	case usecase.ErrorUpstream:
		return http.StatusBadGateway, resp
	case usecase.ErrorCanceled:
		return statusClientClosedRequest, resp
	default:
		resp.Error = string(usecase.ErrorInternal)
		return http.StatusInternalServerError, resp
	}
}

func reasonMessage(reason string) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return strings.ReplaceAll(reason, "_", " ")
}

func invalid(reason string, err error) error {
	return &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: reason, Err: err}
}

func (h *Handler) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.fail(c, invalid("invalid_json", err))
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("invalid_"+name, err)
	}
	return n, nil
}

func respondPage[T any](h *Handler, c *gin.Context, items []T) {
	page, err := queryInt(c, "page")
	if err != nil {
		h.fail(c, err)
		return
	}
	perPage, err := queryInt(c, "per_page")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usecase.Paginate(items, page, perPage))
}

func proxyRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	query := url.Values{}
	for k, vs := range event.MultiValueQueryStringParameters {
		query[k] = append([]string(nil), vs...)
	}
	for k, v := range event.QueryStringParameters {
		if _, ok := query[k]; !ok {
			query.Set(k, v)
		}
	}

	path := event.Path
	if path == "" {
		path = "/"
	}
	u := &url.URL{Path: path, RawQuery: query.Encode()}
	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, vs := range event.MultiValueHeaders {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, v := range event.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	req.RemoteAddr = event.RequestContext.Identity.SourceIP
	return req, nil
}

// proxyWriter buffers a response for the API Gateway proxy integration.
type proxyWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newProxyWriter() *proxyWriter {
	return &proxyWriter{header: make(http.Header)}
}

func (w *proxyWriter) Header() http.Header { return w.header }

func (w *proxyWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

func (w *proxyWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *proxyWriter) response() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	headers := make(map[string]string, len(w.header))
	for k, vs := range w.header {
		if len(vs) > 0 {
			headers[k] = vs[0]
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           headers,
		MultiValueHeaders: map[string][]string(w.header.Clone()),
		Body:              w.body.String(),
	}
}
