package utils

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "storefront-gateway/errors"
	"storefront-gateway/logger"
	"storefront-gateway/models"
	"storefront-gateway/session"
)

// BodyMode says how an operation's request body travels upstream.
type BodyMode string

const (
	// BodyNone sends no body.
	BodyNone BodyMode = "none"
	// BodyJSON streams the inbound JSON body verbatim.
	BodyJSON BodyMode = "json"
	// BodyMultipart streams the inbound multipart body verbatim. It is
	// never re-serialized: boundary markers must survive untouched.
	BodyMultipart BodyMode = "multipart"
)

// AuthLevel is the credential requirement recorded per operation.
type AuthLevel int

const (
	AuthNone AuthLevel = iota
	AuthSession
	AuthAdmin
)

// Operation is one forwarding rule in the route table: an inbound pattern
// mapped to an upstream path template plus its auth and body requirements.
type Operation struct {
	Name     string
	Method   string
	Pattern  string
	Upstream string
	Auth     AuthLevel
	Body     BodyMode
}

// Forwarder builds and sends upstream requests and normalizes responses.
type Forwarder struct {
	baseURL string
	client  *http.Client
}

func NewForwarder(baseURL string, timeout time.Duration) *Forwarder {
	return &Forwarder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Proxy forwards the inbound request for op and streams the normalized
// upstream response back to the client. The Authorization header is always
// re-derived from the session store; the inbound Authorization and Cookie
// headers never travel upstream, so a client-set token cannot diverge from
// the proxied one.
func (f *Forwarder) Proxy(c *gin.Context, op Operation) {
	targetURL := f.baseURL + ExpandPath(op.Upstream, c.Params)
	if c.Request.URL.RawQuery != "" {
		targetURL += "?" + c.Request.URL.RawQuery
	}

	var body io.Reader
	if op.Body != BodyNone {
		body = c.Request.Body
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, body)
	if err != nil {
		logger.Log.Error("Failed to build upstream request",
			zap.String("operation", op.Name),
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		apperrors.Respond(c, apperrors.ErrUpstreamUnavailable)
		return
	}

	if op.Body != BodyNone {
		// Content-Type carries the multipart boundary; it must pass
		// through exactly as the browser sent it.
		if ct := c.GetHeader("Content-Type"); ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		req.ContentLength = c.Request.ContentLength
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", logger.RequestID(c))

	if token, ok := session.FromContext(c); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Error("Upstream request failed",
			zap.String("operation", op.Name),
			zap.String("url", targetURL),
			zap.String("request_id", logger.RequestID(c)),
			zap.Error(err),
		)
		apperrors.Respond(c, apperrors.ErrUpstreamUnavailable)
		return
	}
	defer resp.Body.Close()

	if !isJSON(resp.Header.Get("Content-Type")) {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Log.Warn("Upstream returned non-JSON response",
			zap.String("operation", op.Name),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(snippet)),
		)
		c.JSON(resp.StatusCode, gin.H{"success": false, "message": "Backend Error"})
		return
	}

	c.Header("Content-Type", "application/json")
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		logger.Log.Error("Failed to copy upstream response body",
			zap.String("operation", op.Name),
			zap.Error(err),
		)
	}
}

// Result is a fully read, normalized upstream response for workflow calls
// that need to inspect the body before answering the client.
type Result struct {
	StatusCode int
	IsJSON     bool
	Body       []byte
	Envelope   models.Envelope
}

// Ok reports explicit success: a 2xx status with a JSON envelope that does
// not flag success=false. A 2xx carrying anything else is still a failure.
func (r *Result) Ok() bool {
	return r.IsJSON && r.StatusCode >= 200 && r.StatusCode < 300 && !r.Envelope.Rejected()
}

// Exchange sends one upstream request and reads the whole response. A nil
// error means the round trip completed; business failures live in the
// Result. Transport failures come back as an error for the caller to
// classify.
func (f *Forwarder) Exchange(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, token string) (*Result, error) {
	targetURL := f.baseURL + path
	if len(query) > 0 {
		targetURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		IsJSON:     isJSON(resp.Header.Get("Content-Type")),
		Body:       raw,
	}
	if result.IsJSON {
		// A malformed JSON body from a JSON content type is treated the
		// same as a non-JSON response.
		if err := json.Unmarshal(raw, &result.Envelope); err != nil {
			result.IsJSON = false
		}
	}
	return result, nil
}

// ExpandPath substitutes :param segments of an upstream path template with
// the matched route parameters.
func ExpandPath(template string, params gin.Params) string {
	if !strings.Contains(template, ":") {
		return template
	}
	segments := strings.Split(template, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			if v, ok := params.Get(seg[1:]); ok {
				segments[i] = url.PathEscape(v)
			}
		}
	}
	return strings.Join(segments, "/")
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
