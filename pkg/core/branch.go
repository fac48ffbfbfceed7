package core

import (
	"context"
	"fmt"
	"strings"
)

// Branch is an ordered, immutable sequence of runnables, itself a runnable,
// so compositions nest uniformly. Execution is strictly sequential: element
// i's resulting state (or propagated failure) is element i+1's input, and the
// branch's result is the last element's result. A failure short-circuits the
// remaining elements unless a later element's OnError recovers it.
type Branch struct {
	Base
	components []Runnable
}

// NewBranch builds a branch from an explicit component list. At least one
// component is required.
func NewBranch(components ...Runnable) (*Branch, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: branch requires at least one component", ErrInvalidValue)
	}
	return &Branch{components: append([]Runnable(nil), components...)}, nil
}

// Chain is the sequencing operator: Chain(a, b) runs a then b. Branch
// arguments are flattened one level into the new component list, so chains of
// chains stay a single flat sequence; sequential feeding is associative, so
// the flattened branch is behaviourally identical to the nested one.
func Chain(first Runnable, rest ...Runnable) *Branch {
	components := make([]Runnable, 0, 1+len(rest))
	components = flattenInto(components, first)
	for _, r := range rest {
		components = flattenInto(components, r)
	}
	return &Branch{components: components}
}

// Then appends a runnable, yielding a new branch; the receiver is unchanged.
func (b *Branch) Then(next Runnable) *Branch {
	components := append([]Runnable(nil), b.components...)
	return &Branch{components: flattenInto(components, next)}
}

func flattenInto(components []Runnable, r Runnable) []Runnable {
	if br, ok := r.(*Branch); ok {
		return append(components, br.components...)
	}
	return append(components, r)
}

// Components returns the ordered component list. The slice is a copy.
func (b *Branch) Components() []Runnable {
	return append([]Runnable(nil), b.components...)
}

// Name joins the component names, mirroring the composition that built the
// branch.
func (b *Branch) Name() string {
	names := make([]string, len(b.components))
	for i, c := range b.components {
		names[i] = c.Name()
	}
	return strings.Join(names, " | ")
}

// Next feeds the state through each component in order. Components run
// inline: the branch as a whole is dispatched by Run, and no implicit
// parallelism exists within one branch.
func (b *Branch) Next(ctx context.Context, s *State) (*State, error) {
	var cur Future[*State] = present(s)
	for _, c := range b.components {
		cur = Run(ctx, c, cur, Inline())
	}
	return cur.Result()
}

// Stop fans the cancellation request out to every component.
func (b *Branch) Stop() {
	b.Base.Stop()
	for _, c := range b.components {
		c.Stop()
	}
}
