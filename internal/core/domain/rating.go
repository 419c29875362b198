package domain

import (
	"errors"
	"fmt"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrSubmissionPending = errors.New("a rating submission for this store is still in flight")
)

// PriorRating is the explicit result of looking up the current user's
// existing rating for a store.
type PriorRating struct {
	value int
}

// NoRating is the lookup result for a store the user never rated.
var NoRating = PriorRating{}

// ExistingRating is the lookup result for a store already rated v.
func ExistingRating(v int) PriorRating { return PriorRating{value: v} }

// Exists reports whether a rating was found, and returns it.
func (p PriorRating) Exists() (int, bool) {
	return p.value, p.value != 0
}

func (p PriorRating) String() string {
	if v, ok := p.Exists(); ok {
		return fmt.Sprintf("existing(%d)", v)
	}
	return "none"
}

// PriorRatingOf reads the prior rating embedded in a fetched store.
func PriorRatingOf(s Store) PriorRating {
	if s.UserRating == nil || !ValidRating(*s.UserRating) {
		return NoRating
	}
	return ExistingRating(*s.UserRating)
}

// ValidRating reports whether v is a star value.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// RatingDecision is what a star selection must do on the server.
type RatingDecision string

const (
	DecisionCreate RatingDecision = "create"
	DecisionUpdate RatingDecision = "update"
	DecisionNoop   RatingDecision = "noop"
)

// Decide maps a prior rating and a selected star value to a decision.
// Re-selecting the current star is a no-op.
func Decide(prior PriorRating, v int) RatingDecision {
	current, ok := prior.Exists()
	switch {
	case !ok:
		return DecisionCreate
	case current != v:
		return DecisionUpdate
	default:
		return DecisionNoop
	}
}
