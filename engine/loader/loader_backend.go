package loader

import (
	"io"
	"io/fs"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
)

// materialLibrary is a set of named materials in declaration order.
type materialLibrary struct {
	Materials []common.ImportedMaterial
	index     map[string]int
}

func (lib *materialLibrary) lookup(name string) (int, bool) {
	if lib == nil || lib.index == nil {
		return -1, false
	}
	i, ok := lib.index[name]
	return i, ok
}

// loaderBackend defines the format-specific half of a two-stage load: a material library first, then the geometry
// that references it. Concrete implementations (e.g., objLoaderBackend) handle format details.
type loaderBackend interface {
	// LoadMaterials reads and parses a material library from fsys. Texture paths are resolved relative to the library.
	//
	// Parameters:
	//   - fsys: the asset file system
	//   - path: the library path within fsys
	//
	// Returns:
	//   - *materialLibrary: the parsed library
	//   - error: error if reading or parsing fails
	LoadMaterials(fsys fs.FS, path string) (*materialLibrary, error)

	// LoadGeometry reads and parses a geometry file from fsys, binding its material references against lib.
	//
	// Parameters:
	//   - fsys: the asset file system
	//   - path: the geometry path within fsys
	//   - lib: the material library, or nil
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if reading or parsing fails
	LoadGeometry(fsys fs.FS, path string, lib *materialLibrary) (*model.ImportedModel, error)

	// DecodeGeometry parses geometry from a reader stream.
	//
	// Parameters:
	//   - name: the model name
	//   - r: the reader providing geometry data
	//   - lib: the material library, or nil
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if parsing fails
	DecodeGeometry(name string, r io.Reader, lib *materialLibrary) (*model.ImportedModel, error)
}
