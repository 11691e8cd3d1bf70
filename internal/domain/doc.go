// Package domain contains the question-and-answer board model: boards, the
// users registered on them, and the questions and answers those users post.
//
// The Board is the aggregate root. Users hold a non-owning reference to the
// board that created them, and every Question and Answer is registered on the
// board exactly once, in creation order. Reputation is derived on demand from
// the board's registries and is never cached.
//
// Nothing in this package is safe for concurrent use; see the service package
// for a synchronized facade.
package domain
