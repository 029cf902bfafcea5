package common

import "context"

// ScriptStore is the narrow interface to a remote scripting store. It is
// the only seam between the cache and the network: implementations adapt a
// concrete client (go-redis, redigo, or the in-process local store) to the
// two primitives the cache needs.
type ScriptStore interface {
	// LoadScript uploads script source and returns the store's
	// content-derived identifier, stable for identical source text.
	LoadScript(ctx context.Context, source string) (string, error)

	// InvokeByID executes a previously loaded script. keys and args are
	// always transmitted explicitly, including when both are empty; the
	// store fails if it no longer holds contentID.
	InvokeByID(ctx context.Context, contentID string, keys []string, args ...interface{}) (interface{}, error)
}

// Response structures for the HTTP test server

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// RegisterRequest is the body of POST /scripts/{name}.
type RegisterRequest struct {
	Source string `json:"source"`
}

// InvokeRequest is the body of POST /scripts/{name}/invoke. Keys and Args
// may both be empty; an empty invocation is still a full invoke call.
type InvokeRequest struct {
	Keys []string      `json:"keys"`
	Args []interface{} `json:"args"`
}

// RegisterResponse reports the content identifier a registration produced.
type RegisterResponse struct {
	Name      string `json:"name"`
	ContentID string `json:"content_id"`
}
