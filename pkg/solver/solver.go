/*
Package solver enumerates every dictionary word satisfying a ConstraintSet by
a pruned depth-first descent of a WordIndex.

The candidate sequence is realized as a channel fed by a goroutine: Solve
returns immediately, the goroutine walks the tree and sends accepted words,
and the channel closes when traversal completes or the caller's context is
canceled. The Solver performs no I/O and never blocks on anything but the
send itself.
*/
package solver

import (
	"context"

	"github.com/spellbee/solver/pkg/alphabet"
	"github.com/spellbee/solver/pkg/constraintset"
	"github.com/spellbee/solver/pkg/wordindex"
)

// Solve returns a lazy, finite, non-restartable sequence of every word in idx
// that satisfies cs: built only from symbols in cs.Available(), containing
// every symbol of cs.Required() at least once, no symbol more than
// cs.RepeatCap() times, and with length in [cs.MinLength(), cs.MaxLength()].
// Words are emitted in the child-traversal order of idx, so repeated calls
// against the same idx and an equal cs produce the same order.
//
// Canceling ctx stops the traversal between tree-node visits; the channel is
// closed without emitting further candidates.
func Solve(ctx context.Context, idx *wordindex.WordIndex, cs *constraintset.ConstraintSet) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		alpha := idx.Alphabet()
		availableMask := cs.AvailableMask()
		requiredMask := cs.RequiredMask()
		repeatCap := cs.RepeatCap()
		maxLength := cs.MaxLength()
		minLength := cs.MinLength()

		stopped := false

		idx.Walk(func(path []rune, isTerminal bool, descend wordindex.Descend) {
			if stopped {
				return
			}
			select {
			case <-ctx.Done():
				stopped = true
				return
			default:
			}

			depth := len(path)

			if isTerminal && depth >= minLength {
				used := maskOf(path, alpha)
				if requiredMask.SubsetOf(used) {
					select {
					case out <- string(path):
					case <-ctx.Done():
						stopped = true
						return
					}
				}
			}

			// Length prune: every child is one symbol deeper, so if the next
			// depth would already exceed max_length the whole subtree is
			// fully prunable — no need to consider individual children.
			if maxLength != nil && depth+1 > *maxLength {
				return
			}

			usage := usageCounts(path, alpha)

			descend(func(sym rune) bool {
				pos, ok := alpha.PositionOf(sym)
				if !ok {
					return false
				}
				if !availableMask.Has(pos) {
					return false
				}
				if repeatCap != nil && usage[pos]+1 > *repeatCap {
					return false
				}
				return true
			})
		})
	}()

	return out
}

// Collect drains Solve's channel into a slice, for callers (the request/
// response glue, the ValidationPipeline) that need the full candidate list
// materialized rather than streamed.
func Collect(ctx context.Context, idx *wordindex.WordIndex, cs *constraintset.ConstraintSet) []string {
	var words []string
	for w := range Solve(ctx, idx, cs) {
		words = append(words, w)
	}
	return words
}

func maskOf(path []rune, alpha *alphabet.Alphabet) alphabet.Mask {
	var m alphabet.Mask
	for _, r := range path {
		pos, ok := alpha.PositionOf(r)
		if !ok {
			continue
		}
		m = m.Set(pos)
	}
	return m
}

func usageCounts(path []rune, alpha *alphabet.Alphabet) []int {
	counts := make([]int, alpha.Size())
	for _, r := range path {
		pos, ok := alpha.PositionOf(r)
		if !ok {
			continue
		}
		counts[pos]++
	}
	return counts
}
