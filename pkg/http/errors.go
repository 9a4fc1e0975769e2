package http

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	// KindConstruction: the request could not be built or sent.
	KindConstruction ErrorKind = iota
	// KindNetwork: the request was sent but no response arrived.
	KindNetwork
	// KindServer: the server answered with a non-2xx status.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindConstruction:
		return "construction"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by Client.Do for every failed call. Response is set
// only for KindServer.
type Error struct {
	Kind     ErrorKind
	Message  string
	Request  *Request
	Response *Response
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the response status, or 0 when no response arrived.
func (e *Error) StatusCode() int {
	if e == nil || e.Response == nil {
		return 0
	}
	return e.Response.Status
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsStatus reports whether err is a server error with the given status.
func IsStatus(err error, status int) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindServer && e.StatusCode() == status
}

func newServerError(req *Request, resp *Response) *Error {
	return &Error{
		Kind:     KindServer,
		Message:  fmt.Sprintf("request failed with status code %d", resp.Status),
		Request:  req,
		Response: resp,
	}
}

func newNetworkError(req *Request, err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Request: req, Err: err}
}

func newConstructionError(req *Request, msg string, err error) *Error {
	return &Error{Kind: KindConstruction, Message: msg, Request: req, Err: err}
}
