package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Step actions.
const (
	ActionAsk      = "ask"
	ActionAnswer   = "answer"
	ActionUpVote   = "upvote"
	ActionDownVote = "downvote"
	ActionAccept   = "accept"
)

// Expected rule violations.
const (
	ExpectVoting     = "voting"
	ExpectAcceptance = "acceptance"
)

// ErrInvalidScenario indicates a scenario that cannot be run as written.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted sequence of board activity.
type Scenario struct {
	Name  string     `yaml:"name"`
	Users []UserSpec `yaml:"users" validate:"required,min=1,dive"`
	Steps []Step     `yaml:"steps" validate:"dive"`
}

// UserSpec declares a user. Ref defaults to Name.
type UserSpec struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name" validate:"required"`
}

// Step is one action performed by the user referenced by As.
//
// Target references the question being answered, the post being voted on or
// the answer being accepted. Ref names the question or answer a step
// creates so later steps can target it.
type Step struct {
	Action        string `yaml:"action"        validate:"required,oneof=ask answer upvote downvote accept"`
	As            string `yaml:"as"            validate:"required"`
	Ref           string `yaml:"ref"`
	Target        string `yaml:"target"        validate:"required_unless=Action ask"`
	Text          string `yaml:"text"          validate:"required_if=Action ask,required_if=Action answer"`
	ExpectError   string `yaml:"expect_error"  validate:"omitempty,oneof=voting acceptance"`
	ExpectChanged *bool  `yaml:"expect_changed"`
}

var validate = validator.New()

// Load decodes and validates a scenario. Unknown keys are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile reads a scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Validate checks field constraints and that every reference resolves to
// something declared earlier.
func (sc *Scenario) Validate() error {
	if err := validate.Struct(sc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	users := make(map[string]bool, len(sc.Users))
	for _, u := range sc.Users {
		ref := u.ref()
		if users[ref] {
			return fmt.Errorf("%w: duplicate user ref %q", ErrInvalidScenario, ref)
		}
		users[ref] = true
	}

	posts := make(map[string]string)
	for i, step := range sc.Steps {
		if !users[step.As] {
			return fmt.Errorf("%w: step %d: unknown user %q", ErrInvalidScenario, i+1, step.As)
		}

		switch step.Action {
		case ActionAnswer:
			if posts[step.Target] != ActionAsk {
				return fmt.Errorf("%w: step %d: %q is not a question", ErrInvalidScenario, i+1, step.Target)
			}
		case ActionUpVote, ActionDownVote:
			if posts[step.Target] == "" {
				return fmt.Errorf("%w: step %d: unknown post %q", ErrInvalidScenario, i+1, step.Target)
			}
		case ActionAccept:
			if posts[step.Target] != ActionAnswer {
				return fmt.Errorf("%w: step %d: %q is not an answer", ErrInvalidScenario, i+1, step.Target)
			}
		}

		if step.Ref != "" {
			if step.Action != ActionAsk && step.Action != ActionAnswer {
				return fmt.Errorf("%w: step %d: only ask and answer steps may set ref", ErrInvalidScenario, i+1)
			}
			if posts[step.Ref] != "" {
				return fmt.Errorf("%w: step %d: duplicate post ref %q", ErrInvalidScenario, i+1, step.Ref)
			}
			posts[step.Ref] = step.Action
		}
	}
	return nil
}

func (u UserSpec) ref() string {
	if u.Ref != "" {
		return u.Ref
	}
	return u.Name
}
