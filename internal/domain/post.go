package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is anything on a board that can be voted on: a Question or an Answer.
type Post interface {
	ID() uuid.UUID
	Author() *User
	CreatedAt() time.Time

	// UpVoters and DownVoters return copies of the voter sets in the order
	// the votes were cast.
	UpVoters() []*User
	DownVoters() []*User

	UpVotes() int
	DownVotes() int

	// base gives User access to the shared vote bookkeeping. It also keeps
	// Post closed to types outside this package.
	base() *post
}

// post is the state shared by Question and Answer. A user appears in at most
// one of upVoters and downVoters.
type post struct {
	id         uuid.UUID
	author     *User
	createdAt  time.Time
	upVoters   []*User
	downVoters []*User
}

func newPost(author *User) post {
	return post{
		id:        uuid.New(),
		author:    author,
		createdAt: time.Now().UTC(),
	}
}

// ID returns the post's unique identifier.
func (p *post) ID() uuid.UUID { return p.id }

// Author returns the user who created the post.
func (p *post) Author() *User { return p.author }

// CreatedAt returns when the post was created.
func (p *post) CreatedAt() time.Time { return p.createdAt }

// UpVoters returns the users who up-voted the post, in voting order.
func (p *post) UpVoters() []*User { return cloneUsers(p.upVoters) }

// DownVoters returns the users who down-voted the post, in voting order.
func (p *post) DownVoters() []*User { return cloneUsers(p.downVoters) }

// UpVotes returns the number of up-votes.
func (p *post) UpVotes() int { return len(p.upVoters) }

// DownVotes returns the number of down-votes.
func (p *post) DownVotes() int { return len(p.downVoters) }

func (p *post) base() *post { return p }

// addUpVoter records u as an up-voter. An existing down-vote by u is moved.
// Returns false if u had already up-voted.
func (p *post) addUpVoter(u *User) bool {
	if containsUser(p.upVoters, u) {
		return false
	}
	p.downVoters = removeUser(p.downVoters, u)
	p.upVoters = append(p.upVoters, u)
	return true
}

// addDownVoter records u as a down-voter. An existing up-vote by u is moved.
// Returns false if u had already down-voted.
func (p *post) addDownVoter(u *User) bool {
	if containsUser(p.downVoters, u) {
		return false
	}
	p.upVoters = removeUser(p.upVoters, u)
	p.downVoters = append(p.downVoters, u)
	return true
}

func containsUser(users []*User, u *User) bool {
	for _, v := range users {
		if v == u {
			return true
		}
	}
	return false
}

func removeUser(users []*User, u *User) []*User {
	for i, v := range users {
		if v == u {
			return append(users[:i:i], users[i+1:]...)
		}
	}
	return users
}

func cloneUsers(users []*User) []*User {
	out := make([]*User, len(users))
	copy(out, users)
	return out
}
