// Package export writes vessel meshes as STL.
//
// Facets are emitted in mesh winding order with the normal computed from
// that winding, so the outward orientation of the mesh carries over to the
// file unchanged.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/chazu/potter/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const headerSize = 80

// Tri is a binary STL facet record.
type Tri struct {
	// Normal plus three vertex triplets: [3]float{x,y,z}
	N, V1, V2, V3 [3]float32
	_             uint16 // unused attribute byte count
}

// BinarySize returns the size in bytes of a binary STL with n facets.
func BinarySize(n int) int {
	return headerSize + 4 + 50*n
}

// Triangles converts the mesh into sdfx triangles in winding order.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, m.TriangleCount())
	for t := range out {
		v := m.Triangle(t)
		out[t] = &sdf.Triangle3{vec(v[0]), vec(v[1]), vec(v[2])}
	}
	return out
}

func vec(p [3]float64) v3.Vec {
	return v3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

func f32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// normal returns the unit facet normal, or zero for a degenerate facet.
func normal(t *sdf.Triangle3) v3.Vec {
	if t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length() == 0 {
		return v3.Vec{}
	}
	return t.Normal()
}

// WriteBinary writes m as a binary STL. The header carries the part name.
func WriteBinary(w io.Writer, m *kernel.Mesh) error {
	bw := bufio.NewWriter(w)

	var header [headerSize]byte
	copy(header[:], "potter "+m.PartName)
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("export: count: %w", err)
	}

	for i, t := range Triangles(m) {
		rec := Tri{N: f32(normal(t)), V1: f32(t[0]), V2: f32(t[1]), V3: f32(t[2])}
		if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("export: facet %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteASCII writes m as an ASCII STL solid named after the part.
func WriteASCII(w io.Writer, m *kernel.Mesh) error {
	bw := bufio.NewWriter(w)
	name := m.PartName
	if name == "" {
		name = "vessel"
	}

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range Triangles(m) {
		n := normal(t)
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range t {
			fmt.Fprintf(bw, "      vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Save writes m to path as a binary STL using the sdfx renderer.
func Save(path string, m *kernel.Mesh) error {
	if m.TriangleCount() == 0 {
		return fmt.Errorf("export: %s: mesh is empty", path)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// SaveASCII writes m to path as an ASCII STL.
func SaveASCII(path string, m *kernel.Mesh) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	return WriteASCII(f, m)
}
