package ws

// IDGenerator hands out small, dense, reusable connection tokens. Ported
// near-verbatim from original_source/idgenerator.rs: next() pops a
// recycled id before minting a new one, keeping the id space compact
// across connect/disconnect churn. The counter starts at 1 so 0 stays
// available as a zero-value sentinel for "no token".
//
// Not safe for concurrent use on its own; the Hub guards it with its own
// mutex.
type IDGenerator struct {
	counter int
	stack   []int
}

// NewIDGenerator returns a generator that mints tokens starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{counter: 1}
}

// Next returns a recycled token if one is available, otherwise mints the
// next unused integer.
func (g *IDGenerator) Next() int {
	if n := len(g.stack); n > 0 {
		id := g.stack[n-1]
		g.stack = g.stack[:n-1]
		return id
	}
	id := g.counter
	g.counter++
	return id
}

// Recycle returns id to the pool so a future Next() call can reuse it.
func (g *IDGenerator) Recycle(id int) {
	g.stack = append(g.stack, id)
}
