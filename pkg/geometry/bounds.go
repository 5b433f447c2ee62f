package geometry

import (
	"sync"

	"github.com/df07/go-ray-intersection/pkg/core"
)

// boundsCache memoizes a bounding box. The first computation wins and the
// value is safe to read from any goroutine afterwards.
type boundsCache struct {
	once sync.Once
	box  *core.BoundingBox
}

func (c *boundsCache) get(compute func() *core.BoundingBox) *core.BoundingBox {
	c.once.Do(func() {
		c.box = compute()
	})
	return c.box
}
