package gltf

// ContainerFormat selects the on-the-wire framing of the container.
type ContainerFormat int

const (
	// ContainerGLB is the glTF 2.0 binary container: magic number,
	// version 2, then length-prefixed, type-tagged, padded chunks.
	ContainerGLB ContainerFormat = iota
	// ContainerGLTF1 is the glTF 1.0 binary container: ASCII magic,
	// version 1, scene length and format flag, then unpadded JSON and
	// body bytes.
	ContainerGLTF1
)

// Policy parameterizes the packing pipeline. Both format variants run
// the same sizing and packing code; only the policy differs, so the
// sizing/packing consistency invariant is enforced identically for
// both.
type Policy struct {
	Name string

	// IndexComponent is the GL component type indices are packed as.
	IndexComponent int

	// MaxIndexValues caps the number of indices in one primitive.
	// Records above the cap are split into locally re-indexed
	// partitions with duplicated vertex data. 0 means unlimited.
	MaxIndexValues int

	// SynthesizeColors emits a flat per-vertex color quad for records
	// without quantized colors instead of falling back to a class
	// material.
	SynthesizeColors bool

	Container ContainerFormat
}

// Binary2 packs 32-bit indices into a glTF 2.0 GLB container. No
// splitting is ever needed; colors are always present, synthesized
// when the source has none.
var Binary2 = Policy{
	Name:             "glb",
	IndexComponent:   ComponentUnsignedInt,
	MaxIndexValues:   0,
	SynthesizeColors: true,
	Container:        ContainerGLB,
}

// Binary1 packs 16-bit indices into a glTF 1.0 binary container.
// 16389 is the widest index count addressable safely by a 16-bit type
// while leaving headroom, and is divisible by 3 so partitions stay
// triangle-aligned.
var Binary1 = Policy{
	Name:             "gltf1",
	IndexComponent:   ComponentUnsignedShort,
	MaxIndexValues:   16389,
	SynthesizeColors: false,
	Container:        ContainerGLTF1,
}

// PolicyByName returns the preset policy with the given name.
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case Binary1.Name:
		return Binary1, true
	case Binary2.Name:
		return Binary2, true
	}
	return Policy{}, false
}

// indexByteSize returns the packed byte width of one index.
func (p Policy) indexByteSize() int {
	if p.IndexComponent == ComponentUnsignedShort {
		return 2
	}
	return 4
}

// needsSplit reports whether a record with the given index count must
// be partitioned under this policy.
func (p Policy) needsSplit(indexCount int) bool {
	return p.MaxIndexValues > 0 && indexCount > p.MaxIndexValues
}
