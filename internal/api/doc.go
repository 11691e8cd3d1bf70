// Package api serves the board over HTTP. It routes requests with chi,
// validates request bodies, maps service and domain errors to status codes
// and streams board events to websocket subscribers.
package api
