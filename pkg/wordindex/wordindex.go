/*
Package wordindex builds and queries a prefix tree over a bulk dictionary word
list.

The tree is a fixed-size child-array trie: each node holds one child pointer
per alphabet position. A dense array is preferred over a map here because the
alphabet is always small (26 or 52 symbols) and the tree is immutable after
Build, so the array's O(1), allocation-free child lookup pays for itself on
every node visited during a solve.

go-patricia is not used here: it compresses runs of single-child nodes into
one multi-byte edge, which hides exactly the per-symbol transitions the
Solver needs in order to prune a subtree by an omitted letter. go-patricia is
still wired into this module — see pkg/validate — just not for this concern.
*/
package wordindex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spellbee/solver/pkg/alphabet"
)

// ErrMalformedUTF8 is wrapped by BuildError when the dictionary stream
// contains a line that is not valid UTF-8.
var ErrMalformedUTF8 = errors.New("wordindex: malformed utf-8 in dictionary stream")

// BuildError reports a fatal failure while building a WordIndex, with the
// byte offset into the source stream at which it occurred.
type BuildError struct {
	Offset int64
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("wordindex: build failed at byte offset %d: %v", e.Offset, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// node is one vertex of the prefix tree. children is indexed by the active
// alphabet's bit position, so a case-sensitive tree's nodes are twice as wide
// as a case-insensitive one's.
type node struct {
	children []*node
	terminal bool
}

func newNode(width int) *node {
	return &node{children: make([]*node, width)}
}

// WordIndex is an immutable, read-only-after-build prefix tree. It is safe
// for concurrent use by multiple readers once Build has returned.
type WordIndex struct {
	alphabet *alphabet.Alphabet
	root     *node
	size     int
}

// Alphabet returns the alphabet this index was built under.
func (idx *WordIndex) Alphabet() *alphabet.Alphabet { return idx.alphabet }

// Size returns the number of distinct words stored in the index.
func (idx *WordIndex) Size() int { return idx.size }

// Build consumes a line-oriented UTF-8 dictionary (one lowercase word per
// line in the reference format, though Build itself performs the case
// normalization) and returns an immutable WordIndex.
//
// Each line is stripped of its trailing line terminator; blank lines are
// skipped. In case-insensitive mode every line is lowercased before
// insertion; in case-sensitive mode it is preserved verbatim. A line
// containing any symbol outside the active alphabet is silently discarded.
// Insertion is idempotent. A malformed UTF-8 byte sequence or an I/O error
// aborts the build with a BuildError carrying the byte offset at which it
// was detected.
func Build(source io.Reader, caseSensitive bool) (*WordIndex, error) {
	idx := &WordIndex{
		alphabet: alphabet.For(caseSensitive),
		root:     newNode(alphabet.For(caseSensitive).Size()),
	}

	br := bufio.NewReader(source)
	var offset int64
	lineNo := 0

	for {
		raw, err := br.ReadString('\n')
		lineNo++

		if !utf8ValidAfterTrim(raw) {
			return nil, &BuildError{Offset: offset, Err: ErrMalformedUTF8}
		}

		line := strings.TrimRight(raw, "\r\n")
		offset += int64(len(raw))

		if line != "" {
			idx.insertLine(line, lineNo)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &BuildError{Offset: offset, Err: err}
		}
	}

	return idx, nil
}

func utf8ValidAfterTrim(s string) bool {
	return strings.ToValidUTF8(s, "") == s
}

// insertLine normalizes and inserts a single dictionary line, discarding it
// if any symbol falls outside the active alphabet.
func (idx *WordIndex) insertLine(line string, lineNo int) {
	word := make([]rune, 0, len(line))
	for _, r := range line {
		norm := idx.alphabet.Normalize(r)
		if !idx.alphabet.Contains(norm) {
			log.Debugf("wordindex: skipping line %d (%q): symbol %q outside alphabet", lineNo, line, r)
			return
		}
		word = append(word, norm)
	}
	if len(word) == 0 {
		return
	}
	idx.insert(word)
}

func (idx *WordIndex) insert(word []rune) {
	n := idx.root
	for _, r := range word {
		pos, ok := idx.alphabet.PositionOf(r)
		if !ok {
			return
		}
		if n.children[pos] == nil {
			n.children[pos] = newNode(idx.alphabet.Size())
		}
		n = n.children[pos]
	}
	if !n.terminal {
		n.terminal = true
		idx.size++
	}
}

// Contains reports whether word is present in the index, under exact match
// against the index's own case-normalization rule.
func (idx *WordIndex) Contains(word string) bool {
	n := idx.root
	for _, r := range word {
		norm := idx.alphabet.Normalize(r)
		pos, ok := idx.alphabet.PositionOf(norm)
		if !ok {
			return false
		}
		n = n.children[pos]
		if n == nil {
			return false
		}
	}
	return n.terminal
}

// Descend is handed to a Visitor at every node; calling it with an accept
// predicate recurses into each child edge for which accept returns true (a
// nil accept recurses into every existing child). Not calling Descend at all
// prunes the entire subtree rooted at the current node.
type Descend func(accept func(sym rune) bool)

// Visitor is called once per node in child-order, depth-first. path is the
// sequence of symbols from the root to this node (empty at the root);
// isTerminal reports whether path itself is a complete stored word.
type Visitor func(path []rune, isTerminal bool, descend Descend)

// Walk performs a depth-first, child-order traversal of the index starting
// at the root, invoking visitor at every node reached. This is the Solver's
// sole entry point into the index.
func (idx *WordIndex) Walk(visitor Visitor) {
	idx.walk(idx.root, nil, visitor)
}

func (idx *WordIndex) walk(n *node, path []rune, visitor Visitor) {
	symbols := idx.alphabet.Symbols()
	visitor(path, n.terminal, func(accept func(rune) bool) {
		for pos, sym := range symbols {
			child := n.children[pos]
			if child == nil {
				continue
			}
			if accept != nil && !accept(sym) {
				continue
			}
			next := make([]rune, len(path)+1)
			copy(next, path)
			next[len(path)] = sym
			idx.walk(child, next, visitor)
		}
	})
}
