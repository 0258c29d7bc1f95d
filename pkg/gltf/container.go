package gltf

import (
	"encoding/binary"
	"fmt"
	"io"
)

// The framer runs only after both the scene JSON and the body are
// final: every length below is derived from complete byte slices, so
// the pre-known-length constraint of the format is satisfied by
// construction.

// writeContainer frames the finished scene and body bytes according to
// the policy's container format.
func writeContainer(w io.Writer, format ContainerFormat, scene, body []byte) error {
	switch format {
	case ContainerGLB:
		return writeGLB(w, scene, body)
	case ContainerGLTF1:
		return writeGLTF1(w, scene, body)
	default:
		return fmt.Errorf("unknown container format %d", format)
	}
}

// writeGLTF1 emits the glTF 1.0 binary layout: ASCII magic, version,
// total length, scene length, format flag, then the raw JSON and body
// bytes without padding.
func writeGLTF1(w io.Writer, scene, body []byte) error {
	if _, err := w.Write([]byte(gltf1Magic)); err != nil {
		return err
	}
	header := []uint32{
		1, // format version
		uint32(gltf1HeaderLength + len(scene) + len(body)),
		uint32(len(scene)),
		gltf1FormatJSON,
	}
	for _, v := range header {
		if err := writeUint32(w, v); err != nil {
			return err
		}
	}
	if _, err := w.Write(scene); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// writeGLB emits the glTF 2.0 binary layout: magic, version, total
// length, then a JSON chunk padded with spaces and a binary chunk
// padded with zero bytes, both to 4-byte boundaries. Chunk lengths
// record the padded size.
func writeGLB(w io.Writer, scene, body []byte) error {
	scenePad := pad4(len(scene))
	bodyPad := pad4(len(body))
	total := 12 + 8 + len(scene) + scenePad + 8 + len(body) + bodyPad

	for _, v := range []uint32{glbMagic, 2, uint32(total)} {
		if err := writeUint32(w, v); err != nil {
			return err
		}
	}
	if err := writeChunk(w, glbJSONChunk, scene, ' ', scenePad); err != nil {
		return err
	}
	return writeChunk(w, glbBinaryChunk, body, 0, bodyPad)
}

func writeChunk(w io.Writer, chunkType uint32, data []byte, padByte byte, padLen int) error {
	if err := writeUint32(w, uint32(len(data)+padLen)); err != nil {
		return err
	}
	if err := writeUint32(w, chunkType); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if padLen > 0 {
		pad := make([]byte, padLen)
		for i := range pad {
			pad[i] = padByte
		}
		if _, err := w.Write(pad); err != nil {
			return err
		}
	}
	return nil
}

// pad4 returns the number of bytes needed to reach the next 4-byte
// boundary.
func pad4(n int) int {
	if n%4 == 0 {
		return 0
	}
	return 4 - n%4
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}
