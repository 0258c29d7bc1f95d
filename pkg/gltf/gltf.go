// Package gltf packs triangulated solid geometry into binary glTF scene
// containers. It supports the glTF 1.0 binary layout (KHR_binary_glTF)
// with 16-bit indices and mesh splitting, and the glTF 2.0 GLB layout
// with 32-bit indices. Total and scene lengths have to be known before
// any byte is emitted, so packing is strictly two-pass and non-streaming.
package gltf

import "errors"

// GL component and target constants used in accessor and bufferView
// descriptors. Values are the GL enum numbers the glTF format mandates.
const (
	ComponentUnsignedByte  = 5121
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126

	TargetArrayBuffer        = 34962
	TargetElementArrayBuffer = 34963

	ModeTriangles = 4
)

// Binary container framing constants.
const (
	glbMagic       = 0x46546C67 // "glTF" little-endian
	glbJSONChunk   = 0x4E4F534A
	glbBinaryChunk = 0x004E4942

	gltf1Magic        = "glTF"
	gltf1FormatJSON   = 0
	gltf1HeaderLength = 20
)

// Packing errors.
var (
	ErrNoGeometry          = errors.New("no eligible geometry")
	ErrMissingGeometryData = errors.New("indices present but vertex or normal data missing")
	ErrMalformedGeometry   = errors.New("malformed geometry data")
	ErrIndexTooLarge       = errors.New("index too large for index component type")
	ErrSegmentSizeMismatch = errors.New("segment cursor does not match precomputed capacity")
)

// Warning is a non-fatal diagnostic collected during a packing run.
type Warning struct {
	ProductID string
	Message   string
}
