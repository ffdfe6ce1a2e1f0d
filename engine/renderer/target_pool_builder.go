package renderer

import "github.com/cogentcore/webgpu/wgpu"

// TargetPoolBuilderOption is a functional option applied to a pool during construction via NewTemporaryPool.
type TargetPoolBuilderOption func(*temporaryPool)

// WithDevice makes the pool allocate real depth textures on device.
//
// Parameters:
//   - device: the wgpu device to create textures on
//
// Returns:
//   - TargetPoolBuilderOption: a function that applies the device option to a pool
func WithDevice(device *wgpu.Device) TargetPoolBuilderOption {
	return func(p *temporaryPool) {
		p.device = device
	}
}
