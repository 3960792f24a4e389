package core

import (
	"slices"
	"sync"

	"github.com/loomui/loom/pkg/layout"
)

// BuildOwner coordinates the element tree's build phase: it queues dirty
// elements, rebuilds them parents-first, and disposes elements removed
// from the tree once the pass ends. It also owns the render pipeline the
// tree's render objects attach to.
type BuildOwner struct {
	mu       sync.Mutex
	dirty    []Element
	dirtySet map[Element]struct{}
	inactive []Element
	pipeline *layout.PipelineOwner

	// OnNeedsBuild fires when a clean owner gains its first dirty
	// element, signalling the scheduler to request a frame.
	OnNeedsBuild func()
}

// NewBuildOwner creates a build owner with a fresh render pipeline.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{
		dirtySet: make(map[Element]struct{}),
		pipeline: layout.NewPipelineOwner(),
	}
}

// Pipeline returns the render pipeline owned by this build owner.
func (b *BuildOwner) Pipeline() *layout.PipelineOwner { return b.pipeline }

// scheduleBuild enqueues element for the next build flush. The queue is
// ordered by (depth, insertion order) at flush time so parents always
// rebuild before their children.
func (b *BuildOwner) scheduleBuild(element Element) {
	b.mu.Lock()
	_, exists := b.dirtySet[element]
	if !exists {
		b.dirtySet[element] = struct{}{}
		b.dirty = append(b.dirty, element)
	}
	notify := !exists && b.OnNeedsBuild != nil
	b.mu.Unlock()
	if notify {
		b.OnNeedsBuild()
	}
}

// addInactive records an element removed from the tree this pass; it will
// be unmounted by finalize unless reactivated first.
func (b *BuildOwner) addInactive(element Element) {
	b.mu.Lock()
	b.inactive = append(b.inactive, element)
	b.mu.Unlock()
}

// NeedsBuild reports whether dirty elements are queued.
func (b *BuildOwner) NeedsBuild() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild rebuilds every dirty element in depth order, looping until
// rebuilds stop enqueueing new work, then unmounts deactivated elements.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			break
		}
		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		slices.SortStableFunc(dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})
		for _, element := range dirty {
			element.RebuildIfNeeded()
		}
	}
	b.finalize()
}

// finalize unmounts every element that left the tree during the pass.
func (b *BuildOwner) finalize() {
	b.mu.Lock()
	inactive := b.inactive
	b.inactive = nil
	b.mu.Unlock()
	for _, element := range inactive {
		if element.Lifecycle() == LifecycleInactive {
			element.Unmount()
		}
	}
}
