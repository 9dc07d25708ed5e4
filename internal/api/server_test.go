package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/xfsconv/internal/xfstest"
)

func newTestEcho(cfg Config) *echo.Echo {
	e := echo.New()
	NewServer(cfg, nil).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "application/octet-stream")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return out
}

func sample() []byte {
	return xfstest.Build(
		&xfstest.Struct{Hash: 1, Fields: []xfstest.Field{
			xfstest.Floats("speed", 3.5),
			xfstest.Nested("kids", &xfstest.Struct{Fields: []xfstest.Field{xfstest.Strings("n", "x")}}),
		}},
	)
}

// misaligned has table entries 8 and 24 with padding between them.
func misaligned() []byte {
	return xfstest.Container(2, xfstest.Cat(
		xfstest.I32(8, 24),
		xfstest.U32(1), xfstest.I32(0),
		make([]byte, 8),
		xfstest.U32(2), xfstest.I32(0),
	), 0, nil)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var out HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != "ok" || out.Version == "" {
		t.Fatalf("health: %+v", out)
	}
	if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
		t.Fatalf("request id %q: %v", rec.Header().Get(HeaderRequestID), err)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	newTestEcho(Config{}).ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("request id: got %q", got)
	}
}

func TestDecodeXML(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/decode", sample())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("content type: %s", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<ArrayOfStructure>",
		`<data name="speed" type="12" dataLength="4">`,
		"<Value>3.5</Value>",
		"<XFS_structure>",
		"<Value>x</Value>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
	if rec.Header().Get(HeaderDiagnostics) != "0" {
		t.Fatalf("diagnostics header: %q", rec.Header().Get(HeaderDiagnostics))
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/decode?format=json", sample())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Structures []struct {
			Hash   uint32 `json:"hash"`
			Fields []struct {
				Name   string   `json:"name"`
				Values []string `json:"values"`
			} `json:"fields"`
		} `json:"structures"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Structures) != 1 || doc.Structures[0].Hash != 1 {
		t.Fatalf("structures: %+v", doc.Structures)
	}
	if got := doc.Structures[0].Fields[0].Values; len(got) != 1 || got[0] != "3.5" {
		t.Fatalf("values: %v", got)
	}
}

func TestDecodeDiagnosticsHeader(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/decode", misaligned())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(HeaderDiagnostics) != "1" {
		t.Fatalf("diagnostics header: %q", rec.Header().Get(HeaderDiagnostics))
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    Config
		path   string
		body   []byte
		status int
		typ    string
	}{
		{"truncated", Config{}, "/v1/decode", sample()[:30], http.StatusBadRequest, "truncated_input"},
		{"empty body", Config{}, "/v1/decode", nil, http.StatusBadRequest, "invalid_request_error"},
		{"unknown format", Config{}, "/v1/decode?format=toml", sample(), http.StatusBadRequest, "invalid_request_error"},
		{"bad strict", Config{}, "/v1/decode?strict=maybe", sample(), http.StatusBadRequest, "invalid_request_error"},
		{"bad charset", Config{}, "/v1/decode?charset=ebcdic", sample(), http.StatusBadRequest, "invalid_request_error"},
		{"bad depth", Config{}, "/v1/decode?max_depth=-1", sample(), http.StatusBadRequest, "invalid_request_error"},
		{"strict query", Config{}, "/v1/decode?strict=true", misaligned(), http.StatusBadRequest, "misaligned"},
		{"strict config", Config{Strict: true}, "/v1/inspect", misaligned(), http.StatusBadRequest, "misaligned"},
		{"too large", Config{MaxBodyBytes: 16}, "/v1/decode", sample(), http.StatusRequestEntityTooLarge, "request_too_large"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, newTestEcho(tc.cfg), http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status: got %d want %d body=%s", rec.Code, tc.status, rec.Body.String())
			}
			out := decodeError(t, rec)
			if out.Error.Type != tc.typ {
				t.Fatalf("error type: got %q want %q (%s)", out.Error.Type, tc.typ, out.Error.Message)
			}
			if out.RequestID == "" || out.RequestID != rec.Header().Get(HeaderRequestID) {
				t.Fatalf("request id: body %q header %q", out.RequestID, rec.Header().Get(HeaderRequestID))
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestEcho(Config{}), http.MethodPost, "/v1/inspect", sample())
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var out InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Magic != "XFS" || out.Version != 0x10 {
		t.Fatalf("header: %+v", out)
	}
	if out.Offsets != 2 || out.StructInfo.Count != 2 {
		t.Fatalf("offset table: %d entries, info %+v", out.Offsets, out.StructInfo)
	}
	if out.Stats.TopLevel != 1 || out.Stats.Structures != 2 || out.Stats.Fields != 3 || out.Stats.MaxDepth != 1 {
		t.Fatalf("stats: %+v", out.Stats)
	}
}
