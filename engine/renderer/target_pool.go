package renderer

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// TargetPool hands out depth targets that live until the end of the frame.
type TargetPool interface {
	// AcquireTemporaryDepthTarget returns a depth target matching desc. Targets released by
	// the previous EndFrame are reused when their descriptor matches exactly.
	//
	// Parameters:
	//   - desc: the size, layer count, dimension and format of the target
	//
	// Returns:
	//   - DepthTarget: the target, owned by the pool
	//   - error: ErrInvalidTarget for an unusable descriptor, or a GPU allocation error
	AcquireTemporaryDepthTarget(desc DepthTargetDescriptor) (DepthTarget, error)

	// EndFrame returns every target acquired this frame to the pool. Idle targets that
	// were not reacquired during the frame are released.
	EndFrame()

	// InUse returns the number of targets acquired since the last EndFrame.
	InUse() int

	// Idle returns the number of targets waiting to be reused.
	Idle() int

	// Release frees every target the pool holds.
	Release()
}

// temporaryPool is the implementation of the TargetPool interface.
type temporaryPool struct {
	mu *sync.Mutex

	device *wgpu.Device
	nextID uint64

	inUse []*depthTarget
	idle  []*depthTarget
}

var _ TargetPool = &temporaryPool{}

// NewTemporaryPool creates a new TargetPool. Without WithDevice the pool hands out
// targets that carry descriptors and IDs but no GPU textures.
//
// Parameters:
//   - options: functional options to configure the pool
//
// Returns:
//   - TargetPool: the new pool
func NewTemporaryPool(options ...TargetPoolBuilderOption) TargetPool {
	p := &temporaryPool{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *temporaryPool) AcquireTemporaryDepthTarget(desc DepthTargetDescriptor) (DepthTarget, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, t := range p.idle {
		if t.desc == desc {
			p.idle = append(p.idle[:i], p.idle[i+1:]...)
			p.inUse = append(p.inUse, t)
			return t, nil
		}
	}

	var t *depthTarget
	if p.device != nil {
		created, err := createDepthTarget(p.device, desc)
		if err != nil {
			return nil, err
		}
		t = created
	} else {
		t = &depthTarget{desc: desc}
	}
	p.nextID++
	t.id = p.nextID
	p.inUse = append(p.inUse, t)
	return t, nil
}

func (p *temporaryPool) EndFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, t := range p.idle {
		t.release()
	}
	p.idle = p.inUse
	p.inUse = nil
}

func (p *temporaryPool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inUse)
}

func (p *temporaryPool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

func (p *temporaryPool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, t := range p.idle {
		t.release()
	}
	for _, t := range p.inUse {
		t.release()
	}
	p.idle = nil
	p.inUse = nil
}
