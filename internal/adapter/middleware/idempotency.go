package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	// lockTTL bounds how long a crashed handler can hold a request id hostage.
	lockTTL = 60 * time.Second
	// maxClockSkew is the tolerated drift of Ax-Request-At from server time.
	maxClockSkew = 10 * time.Minute
	// storeTimeout caps each Redis round-trip on the request path.
	storeTimeout = 2 * time.Second
)

// record is what we keep in Redis per (method, route, account, request id):
// first a pending marker, then the finished response for replay.
type record struct {
	Pending     bool      `json:"pending"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type captureWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// IdempotencyMiddleware makes mutating requests exactly-once per
// Ax-Request-Id. The first attempt takes a pending lock, runs the handler,
// and stores the response for ttl; retries with the same id and body get the
// stored response replayed; the same id with a different body is a 409.
//
// Required headers on POST/PUT/PATCH/DELETE:
//
//	Ax-Request-Id  UUID v4 or 32-char lowercase hex
//	Ax-Request-At  epoch seconds/millis or RFC3339 with timezone
//	Ax-Account-Id  32-char lowercase hex
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get("Ax-Request-Id"))
			if reqID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-Request-Id"})
			}
			if !validReqID(reqID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Request-Id format"})
			}
			reqAt, err := parseRequestAt(req.Header.Get("Ax-Request-At"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			now := time.Now().UTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Ax-Request-At too skewed"})
			}
			accountID := strings.TrimSpace(req.Header.Get("Ax-Account-Id"))
			if accountID == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing Ax-Account-Id"})
			}
			if !reHex32.MatchString(accountID) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid Ax-Account-Id"})
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			digest := sha256Hex(body)

			key := redisKey(req.Method, c.Path(), accountID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			acquired, err := acquireLock(ctx, rdb, key, record{
				Pending:     true,
				BodySHA256:  digest,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   now,
			})
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !acquired {
				prev, err := fetchRecord(ctx, rdb, key)
				if err != nil {
					log.Printf("idempotency: fetch %s: %v", key, err)
				}
				if prev.BodySHA256 != "" && prev.BodySHA256 != digest {
					return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
				}
				if !prev.Pending && prev.Code != 0 && len(prev.Body) > 0 {
					return c.Blob(prev.Code, echo.MIMEApplicationJSON, prev.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				c.Error(err)
			}

			// detached context: the response already went out, the record should too
			_ = storeResult(context.Background(), rdb, key, record{
				Code:        cw.code,
				Body:        cw.buf.Bytes(),
				BodySHA256:  digest,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   now,
			}, ttl)
			return nil
		}
	}
}
