// Package catalog loads product catalogs and resolves products by id.
package catalog

import (
	"crypto/sha256"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/labelcritic/internal/nutrition"
	"github.com/dshills/labelcritic/internal/schema"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Format selects the decoder for a catalog source.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension. Unknown
// extensions are read as YAML, which also accepts most JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InvalidError reports records that failed validation.
type InvalidError struct {
	Source string
	Errs   []schema.ValidationError
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, ve := range e.Errs {
		msgs = append(msgs, ve.Error())
	}
	return fmt.Sprintf("catalog %s: %d invalid field(s): %s", e.Source, len(e.Errs), strings.Join(msgs, "; "))
}

// Catalog is an immutable, ordered set of products.
type Catalog struct {
	Name        string
	Description string
	Source      string
	Hash        string

	products []nutrition.Product
	byID     map[string]int
}

// FileVersion is the catalog document version this package reads. Documents
// that omit the version are read as this version.
const FileVersion = 1

type file struct {
	Name        string              `json:"name" yaml:"name"`
	Version     int                 `json:"version" yaml:"version"`
	Description string              `json:"description" yaml:"description"`
	Products    []nutrition.Product `json:"products" yaml:"products"`
}

// Parse decodes a catalog document. The document is either an object with a
// products list or a bare list of products.
func Parse(data []byte, format Format, source string) (*Catalog, error) {
	var f file
	var err error
	switch format {
	case FormatJSON:
		if err = json.Unmarshal(data, &f); err != nil {
			var list []nutrition.Product
			if json.Unmarshal(data, &list) == nil {
				f, err = file{Products: list}, nil
			}
		}
	case FormatYAML:
		if err = yaml.Unmarshal(data, &f); err != nil {
			var list []nutrition.Product
			if yaml.Unmarshal(data, &list) == nil {
				f, err = file{Products: list}, nil
			}
		}
	default:
		return nil, fmt.Errorf("catalog.Parse: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog.Parse: %s: %w", source, err)
	}
	if f.Version != 0 && f.Version != FileVersion {
		return nil, fmt.Errorf("catalog.Parse: %s: unsupported version %d (want %d)", source, f.Version, FileVersion)
	}

	if errs := schema.ValidateCatalog(f.Products); len(errs) > 0 {
		return nil, &InvalidError{Source: source, Errs: errs}
	}

	h := sha256.Sum256(data)
	c := &Catalog{
		Name:        f.Name,
		Description: strings.TrimSpace(f.Description),
		Source:      source,
		Hash:        fmt.Sprintf("sha256:%x", h),
		products:    f.Products,
		byID:        make(map[string]int, len(f.Products)),
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	for i, p := range f.Products {
		c.byID[p.ID] = i
	}
	return c, nil
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	return Parse(data, FormatFromPath(path), path)
}

// LoadBuiltin loads an embedded catalog by name.
func LoadBuiltin(name string) (*Catalog, error) {
	filename := name + ".yaml"
	data, err := builtinFS.ReadFile("builtin/" + filename)
	if err != nil {
		names, _ := List()
		return nil, fmt.Errorf("catalog.LoadBuiltin: unknown catalog %q (available: %s)", name, strings.Join(names, ", "))
	}
	return Parse(data, FormatYAML, "builtin:"+name)
}

// List returns the names of all embedded catalogs.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Open loads path when set, otherwise the builtin catalog name.
func Open(path, builtin string) (*Catalog, error) {
	if path != "" {
		return Load(path)
	}
	if builtin == "" {
		return nil, errors.New("catalog.Open: no catalog path or builtin name given")
	}
	return LoadBuiltin(builtin)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns the products in declaration order. The slice is a copy.
func (c *Catalog) Products() []nutrition.Product {
	out := make([]nutrition.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (nutrition.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nutrition.Product{}, false
	}
	return c.products[i], true
}

// Resolve implements nutrition.Resolver.
func (c *Catalog) Resolve(id string) (nutrition.Product, bool) {
	return c.Get(id)
}

// Dangling lists products whose alternative id is not in the catalog.
func (c *Catalog) Dangling() []string {
	return schema.DanglingAlternatives(c.products)
}

// LoadProduct reads a single product record from a YAML or JSON file and
// validates it.
func LoadProduct(path string) (nutrition.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nutrition.Product{}, fmt.Errorf("catalog.LoadProduct: %w", err)
	}
	var p nutrition.Product
	if FormatFromPath(path) == FormatJSON {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nutrition.Product{}, fmt.Errorf("catalog.LoadProduct: %s: %w", path, err)
	}
	if errs := schema.Validate(p, ""); len(errs) > 0 {
		return nutrition.Product{}, &InvalidError{Source: path, Errs: errs}
	}
	return p, nil
}
