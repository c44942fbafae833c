package symbols

import (
	"fmt"
)

// TempCounter hands out unique temporary names. The counter is monotonic,
// so repeated compiles of the same source emit byte-identical C.
type TempCounter struct {
	next int
}

// Next returns prefix_N and advances the counter.
func (c *TempCounter) Next(prefix string) string {
	name := fmt.Sprintf("%s_%d", prefix, c.next)
	c.next++
	return name
}
