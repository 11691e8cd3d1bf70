// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides typed
// access to settings for the server, the board, the activity journal
// database, and the live feed.
package config
