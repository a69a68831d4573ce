package encoder

import (
	"fmt"
	"strings"
)

// Registry holds all available encoders, keyed by format.
type Registry struct {
	encoders map[Format]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	return NewRegistryWith(
		&AVIFEncoder{},
		&WebPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
	)
}

// NewRegistryWith creates a registry from an explicit encoder set.
// Only available encoders are registered.
func NewRegistryWith(all ...Encoder) *Registry {
	r := &Registry{
		encoders: make(map[Format]Encoder),
	}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}
	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format Format) Encoder {
	return r.encoders[format]
}

// Available returns all available format names in priority order.
func (r *Registry) Available() []Format {
	var result []Format
	for _, f := range Formats {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = string(f)
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
