// Package catalog loads a YAML scene manifest listing the products to
// pack and their OBJ geometry files.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/bimgltf/pkg/gltf"
	"github.com/Faultbox/bimgltf/pkg/math3d"
	"github.com/Faultbox/bimgltf/pkg/obj"
)

var (
	ErrNoProducts  = errors.New("manifest lists no products")
	ErrMissingID   = errors.New("product entry without id")
	ErrMissingMesh = errors.New("product entry without mesh path")
)

// Entry is one product row of the manifest.
type Entry struct {
	ID    string `yaml:"id"`
	Class string `yaml:"class"`
	Mesh  string `yaml:"mesh"`

	// Optional flat RGBA color, components in [0, 1].
	Color []float32 `yaml:"color"`

	// Optional row-major 4x4 object-to-world transform.
	Transform []float64 `yaml:"transform"`
}

// Manifest is the top-level YAML document.
type Manifest struct {
	Name     string  `yaml:"name"`
	Products []Entry `yaml:"products"`
}

// Product is one loaded catalog entry with its flattened geometry.
type Product struct {
	id    string
	class string
	geom  *gltf.Geometry
}

func (p *Product) GlobalID() string         { return p.id }
func (p *Product) Class() string            { return p.class }
func (p *Product) Geometry() *gltf.Geometry { return p.geom }

// Catalog is a loaded scene. It yields products in manifest order, so
// the iteration order is stable across the sizing and packing passes.
type Catalog struct {
	Name     string
	products []gltf.Product
}

// Products implements gltf.Source.
func (c *Catalog) Products() []gltf.Product {
	return c.products
}

// Load reads a manifest file and the OBJ geometry it references. Mesh
// paths are resolved relative to the manifest's directory.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return build(&manifest, filepath.Dir(path))
}

func build(manifest *Manifest, baseDir string) (*Catalog, error) {
	if len(manifest.Products) == 0 {
		return nil, ErrNoProducts
	}

	c := &Catalog{Name: manifest.Name}
	for i, entry := range manifest.Products {
		if entry.ID == "" {
			return nil, fmt.Errorf("product %d: %w", i, ErrMissingID)
		}
		if entry.Mesh == "" {
			return nil, fmt.Errorf("product %s: %w", entry.ID, ErrMissingMesh)
		}

		geom, err := loadGeometry(filepath.Join(baseDir, entry.Mesh))
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", entry.ID, err)
		}

		if len(entry.Color) == 4 {
			geom.Color = &gltf.RGBA{
				R: entry.Color[0],
				G: entry.Color[1],
				B: entry.Color[2],
				A: entry.Color[3],
			}
		} else if len(entry.Color) != 0 {
			return nil, fmt.Errorf("product %s: color has %d components, want 4", entry.ID, len(entry.Color))
		}

		if len(entry.Transform) == 16 {
			copy(geom.Transform[:], entry.Transform)
		} else if len(entry.Transform) != 0 {
			return nil, fmt.Errorf("product %s: transform has %d values, want 16", entry.ID, len(entry.Transform))
		}

		c.products = append(c.products, &Product{
			id:    entry.ID,
			class: entry.Class,
			geom:  geom,
		})
	}
	return c, nil
}

// loadGeometry parses and flattens one OBJ file into the packing
// geometry layout.
func loadGeometry(path string) (*gltf.Geometry, error) {
	file, err := obj.ParseFile(path)
	if err != nil {
		return nil, err
	}
	mesh := file.Flatten()
	return &gltf.Geometry{
		Indices:   mesh.Indices,
		Vertices:  mesh.Positions,
		Normals:   mesh.Normals,
		Transform: math3d.Identity(),
	}, nil
}
