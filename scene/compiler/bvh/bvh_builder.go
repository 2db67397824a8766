package bvh

import (
	"errors"
	"sync"
	"time"

	"github.com/achilleasa/go-raybench/log"
	"github.com/achilleasa/go-raybench/scene"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Advance to the next axis, wrapping around after Z.
func (a Axis) Next() Axis {
	return (a + 1) % 3
}

const (
	// The number of axis split attempts before the builder gives up on a
	// work list and stores it as a Jumble.
	maxSplitAttempts = 4
)

var (
	ErrEmptyWorkList = errors.New("bvh: cannot partition an empty work list")
)

// Build statistics.
type Stats struct {
	Items     int
	Volumes   int
	Leafs     int
	Jumbles   int
	MaxDepth  int
	BuildTime time.Duration
}

type builder struct {
	logger log.Logger

	// Subtrees above this depth are partitioned concurrently.
	parallelDepth int

	sync.Mutex
	stats Stats
}

// Construct a BVH from a set of leaf surfaces, starting with a split along
// the X axis.
//
// The builder splits each work list at the spatial midpoint of its bounds and
// picks the first axis that produces two non-empty halves. Split quality is
// not optimized; the tree is only guaranteed to be valid. If no axis works
// the whole list is wrapped in a Jumble.
func Build(workList []scene.Surface) (scene.Surface, Stats, error) {
	return build(workList, 0)
}

// Build a BVH partitioning the left and right subtrees of the top levels in
// parallel. The resulting tree is identical to the one returned by Build.
func BuildParallel(workList []scene.Surface, parallelDepth int) (scene.Surface, Stats, error) {
	return build(workList, parallelDepth)
}

func build(workList []scene.Surface, parallelDepth int) (scene.Surface, Stats, error) {
	if len(workList) == 0 {
		return nil, Stats{}, ErrEmptyWorkList
	}

	b := &builder{
		logger:        log.New("bvh builder"),
		parallelDepth: parallelDepth,
		stats: Stats{
			Items: len(workList),
		},
	}

	start := time.Now()
	root := b.partition(workList, scene.ComputeBounds(workList), XAxis, 0)
	b.stats.BuildTime = time.Since(start)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, volumes: %d, leafs: %d, jumbles: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Volumes, b.stats.Leafs, b.stats.Jumbles,
	)
	return root, b.stats, nil
}

// Partition work list and return the subtree root.
func (b *builder) partition(workList []scene.Surface, bounds scene.Bounds, axis Axis, depth int) scene.Surface {
	b.visit(depth)

	switch len(workList) {
	case 1:
		b.addLeafs(1)
		return workList[0]
	case 2:
		b.addLeafs(2)
		b.addVolume()
		return scene.NewVolume(bounds, workList[0], workList[1])
	}

	var left, right []scene.Surface
	for attempt := 0; ; attempt++ {
		if attempt == maxSplitAttempts {
			b.logger.Warningf("degenerate partition of %d surfaces at depth %d; falling back to a jumble", len(workList), depth)
			b.addJumble(len(workList))
			return scene.NewJumble(workList)
		}

		left, right = split(workList, bounds, axis)
		axis = axis.Next()
		if len(left) != 0 && len(right) != 0 {
			break
		}
	}

	b.addVolume()

	var leftNode, rightNode scene.Surface
	if depth < b.parallelDepth {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			leftNode = b.partition(left, scene.ComputeBounds(left), axis, depth+1)
		}()
		rightNode = b.partition(right, scene.ComputeBounds(right), axis, depth+1)
		wg.Wait()
	} else {
		leftNode = b.partition(left, scene.ComputeBounds(left), axis, depth+1)
		rightNode = b.partition(right, scene.ComputeBounds(right), axis, depth+1)
	}

	return scene.NewVolume(bounds, leftNode, rightNode)
}

// Split work list at the bounds midpoint along axis. Surfaces whose center
// lies on the midpoint go left.
func split(workList []scene.Surface, bounds scene.Bounds, axis Axis) (left, right []scene.Surface) {
	mid := bounds.Mid(int(axis))
	for _, s := range workList {
		if s.Center().Axis(int(axis)) <= mid {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right
}

func (b *builder) visit(depth int) {
	b.Lock()
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}
	b.Unlock()
}

func (b *builder) addLeafs(count int) {
	b.Lock()
	b.stats.Leafs += count
	b.Unlock()
}

func (b *builder) addVolume() {
	b.Lock()
	b.stats.Volumes++
	b.Unlock()
}

func (b *builder) addJumble(items int) {
	b.Lock()
	b.stats.Jumbles++
	b.stats.Leafs += items
	b.Unlock()
}
