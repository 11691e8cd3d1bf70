// Package main implements the overboard command: a question and answer
// board served over HTTP, with tools to migrate its activity journal and
// replay seed scenarios.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
