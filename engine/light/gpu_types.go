package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUShadowData is the GPU-aligned representation of one light's shadow data.
// Size: 304 bytes (std140 / WGSL uniform aligned).
//
// Layout:
//
//	array<mat4x4<f32>, 4> light_vp  (256 bytes, offset 0)
//	vec4<f32>   split_far            ( 16 bytes, offset 256)
//	vec2<f32>   texel_size           (  8 bytes, offset 272)
//	f32         bias                 (  4 bytes, offset 280)
//	f32         normal_bias          (  4 bytes, offset 284)
//	u32         count                (  4 bytes, offset 288)
//	padding                          ( 12 bytes, offset 292)
type GPUShadowData struct {
	LightVP    [MaxCascades]mgl32.Mat4 // bias * projection * light view, per cascade or face
	SplitFar   [MaxCascades]float32    // far distance of each cascade in camera view space
	TexelSize  [2]float32              // 1.0 / shadow_map_resolution for PCF offset calculations
	Bias       float32                 // depth comparison bias to reduce shadow acne
	NormalBias float32                 // world-space normal-offset distance for shadow lookup
	Count      uint32                  // number of valid LightVP entries
	_pad       [3]uint32
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (304)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// ComputeNormalBias derives the world-space normal-offset bias from the shadow
// map parameters and stores it in the receiver's NormalBias field. The result is
// the distance (in world units) that fragment positions are shifted along their
// surface normal before projecting into light clip space.
//
// Parameters:
//   - worldWidth: width of the area covered by the shadow map in world units
//   - scale: multiplier on the per-texel world size (typically 2 to 4)
//   - resolution: shadow map resolution in texels (width and height)
func (s *GPUShadowData) ComputeNormalBias(worldWidth, scale float32, resolution int) {
	if resolution <= 0 {
		s.NormalBias = 0
		return
	}
	texelWorldSize := worldWidth / float32(resolution)
	s.NormalBias = texelWorldSize * scale
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 304-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 304)
	for m := 0; m < MaxCascades; m++ {
		putMat4(buf[m*64:(m+1)*64], s.LightVP[m])
	}
	for i := 0; i < MaxCascades; i++ {
		binary.LittleEndian.PutUint32(buf[256+i*4:260+i*4], math.Float32bits(s.SplitFar[i]))
	}
	binary.LittleEndian.PutUint32(buf[272:276], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[276:280], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[280:284], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[284:288], math.Float32bits(s.NormalBias))
	binary.LittleEndian.PutUint32(buf[288:292], s.Count)
	return buf
}

// GPUShadowUniform is the GPU-aligned representation of the shadow vertex
// shader uniform containing only the view-projection matrix of one pass.
// Size: 64 bytes (mat4x4<f32>).
type GPUShadowUniform struct {
	LightVP mgl32.Mat4 // projection * view of the pass being drawn
}

// Size returns the size of the GPUShadowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (u *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUShadowUniform struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (u *GPUShadowUniform) Marshal() []byte {
	buf := make([]byte, 64)
	putMat4(buf, u.LightVP)
	return buf
}

// putMat4 writes a column-major matrix into a 64-byte slice.
func putMat4(dst []byte, m mgl32.Mat4) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:(i+1)*4], math.Float32bits(m[i]))
	}
}
