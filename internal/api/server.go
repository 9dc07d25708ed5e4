// Package api serves the XFS decoder over HTTP.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/xfsconv/internal/logger"
	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/internal/version"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

const (
	HeaderRequestID   = "X-Request-ID"
	HeaderDiagnostics = "X-XFS-Diagnostics"

	// DefaultMaxBodyBytes caps uploaded containers.
	DefaultMaxBodyBytes int64 = 64 << 20
)

// Config holds the decode defaults a Server applies to every request.
// Query parameters override Strict, Charset and MaxDepth per request.
type Config struct {
	MaxBodyBytes int64
	Format       render.Format
	Charset      xfs.Charset
	Strict       bool
	MaxDepth     int
}

type Server struct {
	cfg Config
	log logger.Logger
}

func NewServer(cfg Config, log logger.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Format == "" {
		cfg.Format = render.DefaultFormat
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Server{cfg: cfg, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)
	e.POST("/v1/decode", s.handleDecode)
	e.POST("/v1/inspect", s.handleInspect)
	e.GET("/healthz", s.handleHealth)
}

// requestID echoes a client supplied X-Request-ID or assigns a new one.
func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(HeaderRequestID, id)
		return next(c)
	}
}

func (s *Server) requestLog(c *echo.Context) logger.Logger {
	return s.log.With("request_id", c.Response().Header().Get(HeaderRequestID))
}

func (s *Server) handleDecode(c *echo.Context) error {
	log := s.requestLog(c)

	format := s.cfg.Format
	if q := c.QueryParam("format"); q != "" {
		f, err := render.ParseFormat(q)
		if err != nil {
			return writeBadRequest(c, err.Error(), "format")
		}
		format = f
	}
	opts, err := s.decodeOptions(c, log)
	if err != nil {
		return writeFailure(c, err)
	}
	body, err := s.readBody(c)
	if err != nil {
		return writeFailure(c, err)
	}

	container, err := xfs.Decode(body, opts...)
	if err != nil {
		log.Warn("decode failed", "bytes", len(body), "error", err)
		return writeFailure(c, err)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, container, format); err != nil {
		log.Error("render failed", "format", string(format), "error", err)
		return writeFailure(c, err)
	}
	log.Info("decoded container",
		"bytes", len(body),
		"structures", len(container.Structures),
		"diagnostics", len(container.Diagnostics),
		"format", string(format),
	)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, render.ContentType(format))
	res.Header().Set(HeaderDiagnostics, strconv.Itoa(len(container.Diagnostics)))
	res.WriteHeader(http.StatusOK)
	_, err = res.Write(buf.Bytes())
	return err
}

func (s *Server) handleInspect(c *echo.Context) error {
	log := s.requestLog(c)

	opts, err := s.decodeOptions(c, log)
	if err != nil {
		return writeFailure(c, err)
	}
	body, err := s.readBody(c)
	if err != nil {
		return writeFailure(c, err)
	}

	streams, err := xfs.Load(body, opts...)
	if err != nil {
		log.Warn("load failed", "bytes", len(body), "error", err)
		return writeFailure(c, err)
	}
	container, err := xfs.NewDecoder(streams, opts...).Decode()
	if err != nil {
		log.Warn("decode failed", "bytes", len(body), "error", err)
		return writeFailure(c, err)
	}

	return writeJSON(c, http.StatusOK, InspectResponse{
		Magic:       streams.Header.MagicString(),
		Version:     streams.Header.Version,
		StructInfo:  streams.StructInfo,
		ParamInfo:   streams.ParamInfo,
		Offsets:     len(streams.Offsets),
		Stats:       xfs.Summarize(container),
		Diagnostics: container.Diagnostics,
	})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, HealthResponse{Status: "ok", Version: version.String()})
}

func (s *Server) decodeOptions(c *echo.Context, log logger.Logger) ([]xfs.Option, error) {
	strict := s.cfg.Strict
	if q := c.QueryParam("strict"); q != "" {
		v, err := strconv.ParseBool(q)
		if err != nil {
			return nil, newInvalidRequest(fmt.Sprintf("strict: %q is not a boolean", q))
		}
		strict = v
	}
	charset := s.cfg.Charset
	if q := c.QueryParam("charset"); q != "" {
		cs, err := xfs.ParseCharset(q)
		if err != nil {
			return nil, newInvalidRequest(err.Error())
		}
		charset = cs
	}
	depth := s.cfg.MaxDepth
	if q := c.QueryParam("max_depth"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v <= 0 {
			return nil, newInvalidRequest(fmt.Sprintf("max_depth: %q is not a positive integer", q))
		}
		depth = v
	}
	return []xfs.Option{
		xfs.WithStrict(strict),
		xfs.WithCharset(charset),
		xfs.WithMaxDepth(depth),
		xfs.WithLogger(log),
	}, nil
}

// readBody reads at most MaxBodyBytes of the request body.
func (s *Server) readBody(c *echo.Context) ([]byte, error) {
	body := c.Request().Body
	if body == nil {
		return nil, newInvalidRequest("request body is empty")
	}
	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, newInvalidRequest(fmt.Sprintf("read request body: %v", err))
	}
	if int64(len(data)) > s.cfg.MaxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, s.cfg.MaxBodyBytes)
	}
	if len(data) == 0 {
		return nil, newInvalidRequest("request body is empty")
	}
	return data, nil
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err = res.Write(b)
	return err
}

func writeBadRequest(c *echo.Context, msg, param string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, param)
}

func writeFailure(c *echo.Context, err error) error {
	status, errType := classify(err)
	return writeError(c, status, errType, err.Error(), "")
}

func writeError(c *echo.Context, status int, errType, msg, param string) error {
	return writeJSON(c, status, ErrorResponse{
		Error: ResponseError{
			Message: msg,
			Type:    errType,
			Param:   param,
		},
		RequestID: c.Response().Header().Get(HeaderRequestID),
	})
}
