package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/custodia-labs/codelens/internal/core/domain"
	"github.com/custodia-labs/codelens/internal/logger"
)

const (
	// stdioClient is the identifier charged for every call of a stdio session.
	stdioClient   = "stdio"
	unknownClient = "unknown"

	explainTool = "explain_function"

	// rateLimitedCode is the JSON-RPC server error returned on a denied call.
	rateLimitedCode = -32000
)

// allow consumes one request for id.
func (s *Server) allow(id string) error {
	allowed := s.ports.Limiter.IsAllowed(id)
	s.ports.Metrics.RateLimit(allowed)
	if !allowed {
		logger.Debug("rate limit exceeded", "client", id, "transport", "mcp")
		return domain.ErrRateLimited
	}
	return nil
}

// rpcCall is the part of a JSON-RPC request needed to spot tool calls.
type rpcCall struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params struct {
		Name string `json:"name"`
	} `json:"params"`
}

// explainCalls returns the explain_function calls in a JSON-RPC message or
// batch. Bodies that do not decode are left to the MCP handler to reject.
func explainCalls(body []byte) []rpcCall {
	body = bytes.TrimSpace(body)
	var calls []rpcCall
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &calls); err != nil {
			return nil
		}
	} else {
		var call rpcCall
		if err := json.Unmarshal(body, &call); err != nil {
			return nil
		}
		calls = []rpcCall{call}
	}

	out := calls[:0]
	for _, c := range calls {
		if c.Method == "tools/call" && c.Params.Name == explainTool {
			out = append(out, c)
		}
	}
	return out
}

// limitExplain charges each explain_function call to the caller's address
// and answers 429 once the window's quota is spent.
func (s *Server) limitExplain(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			http.Error(w, "reading request body", http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		id := clientAddress(r)
		for _, call := range explainCalls(body) {
			if err := s.allow(id); err != nil {
				writeRateLimited(w, call.ID)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeRateLimited(w http.ResponseWriter, id json.RawMessage) {
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]any{
			"code":    rateLimitedCode,
			"message": "Rate limit exceeded",
		},
	})
}

// clientAddress returns the first X-Forwarded-For address, else the
// connection's host, else "unknown".
func clientAddress(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return unknownClient
}
