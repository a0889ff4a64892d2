// Package eytzinger implements the Eytzinger (BFS-heap) array layout and
// its point-query binary search.
//
// Classical binary search over a sorted array incurs a cache miss at
// nearly every level of the deeper half of the probe. Laying the array
// out the way a binary heap is laid out - root at slot 1, children of
// slot k at slots 2k and 2k+1 - puts the nodes visited early in a search
// in the same cache lines, which is why mapbufr commits every reader to
// this layout instead of a plain sorted array.
package eytzinger

import "math/bits"

// Permutation computes, for an ascending-sorted 0-indexed sequence of n
// keys, the sequence of source indices that places each key into its
// Eytzinger slot. The result out has length n; out[k-1] is the source
// index of the key that belongs at Eytzinger (1-indexed) slot k.
//
// The classical algorithm is a recursive in-order walk of the implicit
// heap (visit left child, emit current, visit right child). It is
// re-expressed here as an explicit stack so the depth-bound recursion
// (ceil(log2 n) + 1) never touches the native call stack, which matters
// when n is derived from untrusted input.
func Permutation(n int) []int {
	out := make([]int, n)
	if n == 0 {
		return out
	}

	// Each stack frame resumes an in-order visit of node k: phase 0
	// means "descend left, then come back for phase 1"; phase 1 means
	// "emit k, descend right".
	type frame struct {
		k     int
		phase int
	}

	next := 0
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{k: 1, phase: 0})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.k > n {
			stack = stack[:len(stack)-1]
			continue
		}

		switch top.phase {
		case 0:
			top.phase = 1
			stack = append(stack, frame{k: 2 * top.k, phase: 0})
		case 1:
			out[top.k-1] = next
			next++
			top.phase = 2
			stack = append(stack, frame{k: 2*top.k + 1, phase: 0})
		default:
			stack = stack[:len(stack)-1]
		}
	}

	return out
}

// KeyAt abstracts over the Eytzinger-ordered array so Search can run
// against any backing representation (a slice of structs, a reinterpreted
// byte buffer) without allocating.
type KeyAt func(slot int) uint64

// Search performs the canonical Eytzinger binary search for target over
// an array of length n addressed through at. It returns the 0-indexed
// slot whose key equals target, or ok == false if no such slot exists.
//
// The inner loop is branch-free: k = 2*k + (at(k-1) < target), which
// compiles to a conditional move on amd64 and arm64. The loop reads only
// slots 0..n-1, and the result is always validated against n and
// re-checked for equality before being trusted.
func Search(n int, target uint64, at KeyAt) (slot int, ok bool) {
	k := 1
	for k <= n {
		if at(k-1) < target {
			k = 2*k + 1
		} else {
			k = 2 * k
		}
	}

	// Clear the trailing run of 1-bits (and the 0 above it) by shifting
	// right by ffs(^k): this walks back up to the last branch where the
	// search went left.
	k >>= bits.TrailingZeros(^uint(k)) + 1
	k--

	if k < 0 || k >= n {
		return 0, false
	}
	if at(k) != target {
		return 0, false
	}

	return k, true
}
