package shape

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Catalog is the complete set of fixed shapes of size 1 through MaxSize.
// Shape indexes are stable for the lifetime of a Catalog; it is read-only
// after NewCatalog returns and may be shared between goroutines.
type Catalog struct {
	shapes []*Shape
	index  map[Key]int
}

var (
	defaultCatalog *Catalog
	defaultOnce    sync.Once
)

// Default returns a process-wide catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
	})
	return defaultCatalog
}

// NewCatalog grows every shape from the single cell at the origin. Each
// shape smaller than MaxSize is expanded by one edge-adjacent cell in every
// direction from every cell; unseen children are queued and expanded in
// turn.
func NewCatalog() *Catalog {
	c := &Catalog{index: make(map[Key]int)}
	queue := []*Shape{FromPoints(Point{0, 0})}
	c.add(queue[0])

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, child := range s.children() {
			if c.add(child) {
				queue = append(queue, child)
			}
		}
	}
	log.Debug().Int("shapes", len(c.shapes)).Msg("built-shape-catalog")
	return c
}

func (c *Catalog) add(s *Shape) bool {
	if _, ok := c.index[s.key]; ok {
		return false
	}
	c.index[s.key] = len(c.shapes)
	c.shapes = append(c.shapes, s)
	return true
}

// Shapes lists every shape in catalog order. The slice must not be modified.
func (c *Catalog) Shapes() []*Shape {
	return c.shapes
}

func (c *Catalog) Len() int {
	return len(c.shapes)
}

func (c *Catalog) Shape(i int) *Shape {
	return c.shapes[i]
}

// Index returns the catalog index of s, compared by value.
func (c *Catalog) Index(s *Shape) (int, bool) {
	i, ok := c.index[s.key]
	return i, ok
}

// Lookup finds the catalog's own instance of the shape formed by pts.
func (c *Catalog) Lookup(pts ...Point) (*Shape, bool) {
	i, ok := c.Index(FromPoints(pts...))
	if !ok {
		return nil, false
	}
	return c.shapes[i], true
}

// CountBySize returns how many shapes there are of each size; index 0 is
// unused.
func (c *Catalog) CountBySize() [MaxSize + 1]int {
	var counts [MaxSize + 1]int
	for _, s := range c.shapes {
		counts[s.Size()]++
	}
	return counts
}
