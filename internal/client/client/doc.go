// Package client talks to the fileshare HTTP API.
//
// HTTPClient implements Client on top of netx.DoJSON. A successful Register,
// Login or AdminLogin stores the returned bearer token, which is then sent
// with every later request. Token and SetToken let callers persist and
// restore it.
//
// # Error Handling
//
// Status codes are mapped to sentinel errors matchable with errors.Is:
//
//	400 -> common.ErrorValidation
//	401 -> ErrUnauthorized
//	404 -> common.ErrorNotFound
//	409 -> common.ErrorAlreadyExists
//
// Connection failures and timeouts become ErrUnavailable. The server's
// message, when present, follows the sentinel in the error text.
package client
