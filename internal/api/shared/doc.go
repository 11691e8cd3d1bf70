// Package shared holds the request context keys and the JSON request and
// response helpers used by the api handlers and middleware.
package shared
