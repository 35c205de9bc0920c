package encoder

import (
	"fmt"
	"strings"
)

// Registry maps format names and their aliases to encoders.
type Registry struct {
	encoders map[string]Encoder
	aliases  map[string]string
}

// NewRegistry creates a registry holding both PPM variants, plain and
// zstd-compressed.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		aliases:  make(map[string]string),
	}

	binary, text := &BinaryEncoder{}, &TextEncoder{}
	all := []Encoder{
		binary,
		text,
		&ZstdEncoder{Inner: binary},
		&ZstdEncoder{Inner: text},
	}
	for _, enc := range all {
		r.encoders[enc.Format()] = enc
	}

	for _, a := range []string{"binary", "raw"} {
		r.aliases[a] = "p6"
	}
	for _, a := range []string{"text", "ascii", "plain", "string"} {
		r.aliases[a] = "p3"
	}
	return r
}

func (r *Registry) canonical(format string) string {
	format = strings.ToLower(format)
	base, zst := strings.CutSuffix(format, "+zstd")
	if c, ok := r.aliases[base]; ok {
		base = c
	}
	if zst {
		return base + "+zstd"
	}
	return base
}

// Get returns an encoder for the given format or alias, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[r.canonical(format)]
}

// Available returns all canonical format names.
func (r *Registry) Available() []string {
	var result []string
	// Maintain priority order.
	for _, f := range []string{"p6", "p3", "p6+zstd", "p3+zstd"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve maps requested names to canonical formats, dropping unknown and
// duplicate entries. An empty result falls back to p6.
func (r *Registry) Resolve(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}
	for _, f := range requested {
		c := r.canonical(f)
		if _, ok := r.encoders[c]; ok && !seen[c] {
			resolved = append(resolved, c)
			seen[c] = true
		}
	}
	if len(resolved) == 0 {
		resolved = append(resolved, "p6")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
