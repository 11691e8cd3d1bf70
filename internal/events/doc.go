// Package events carries board activity between components.
//
// The service layer emits a BoardEvent for every successful mutation of a
// board. Handlers registered on an emitter react to it: the activity journal
// persists it, the metrics collector counts it, and the live feed pushes it
// to websocket subscribers. None of them need to know about each other.
package events
