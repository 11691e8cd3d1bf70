// Package seed replays scripted board activity from YAML scenario files.
//
// A scenario names its users and then lists steps, each performed by one of
// them:
//
//	users:
//	  - {ref: anelle, name: Anelle}
//	  - {ref: sally, name: Sally}
//	steps:
//	  - {action: ask, as: anelle, ref: q1, text: "What is a unit?"}
//	  - {action: answer, as: sally, target: q1, ref: a1, text: "The smallest testable part."}
//	  - {action: upvote, as: anelle, target: a1}
//	  - {action: accept, as: sally, target: a1, expect_error: acceptance}
//
// Steps are applied through service.BoardService, so a scenario exercises
// the same rules as the HTTP API.
package seed
