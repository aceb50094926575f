package nutrition

// Resolver looks up a product by id for alternative suggestions.
// A missing id is reported with ok == false, never as an error.
type Resolver interface {
	Resolve(id string) (Product, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) (Product, bool)

func (f ResolverFunc) Resolve(id string) (Product, bool) {
	return f(id)
}

// MapResolver resolves ids from an in-memory map.
type MapResolver map[string]Product

func (m MapResolver) Resolve(id string) (Product, bool) {
	p, ok := m[id]
	return p, ok
}
