package coverage

// DefaultRedirectBound is K, the upper end of the fixed range [0, K] walked by Redirect. It bounds the
// largest contract size the external fuzzer can distinguish by coverage id; exceeding it is not fatal,
// excess ids are simply indistinguishable from one another.
const DefaultRedirectBound = 2000

// sink receives side effects during Redirect. It is a no-op, since the side effect itself (a branch the
// fuzzer's compile-time instrumentation recognises) is what matters, not its return value.
var sink = func(x int) {}

// Redirect walks every integer x in [0, bound] and, if x appears in ids, performs a side effect (a call to
// sink with x+1) the external fuzzer's compile-time instrumentation recognises as the taken edge x. ids may
// contain duplicates and is not deduplicated by its callers, but the walk drives each present x exactly
// once, however many times it occurs in ids.
func Redirect(ids []uint64, bound int) {
	present := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	for x := 0; x <= bound; x++ {
		if present[uint64(x)] {
			sink(x + 1)
		}
	}
}
