// Package locale looks up localized era names. Bundles are flat YAML maps of
// resource keys to strings, one per BCP 47 tag, loaded lazily on first use.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/wareki/pkg/types"
)

// Prefix is the resource key prefix for era strings.
const Prefix = "japanese-era"

// Resource keys that are not tied to an era value.
const (
	KeyFirstYear  = Prefix + ".first-year"
	KeyDateFormat = Prefix + ".date-format"
)

//go:embed resources/*.yaml
var embedded embed.FS

// Source loads the bundle for exactly one tag. It returns a nil map and no
// error when it has nothing for that tag.
type Source interface {
	Load(tag language.Tag) (map[string]string, error)
}

// FSSource reads <tag>.yaml files from an fs.FS.
type FSSource struct {
	FS fs.FS
}

// Embedded returns the source for the bundles compiled into the binary.
func Embedded() FSSource {
	sub, err := fs.Sub(embedded, "resources")
	if err != nil {
		panic(err)
	}
	return FSSource{FS: sub}
}

// Load implements Source.
func (s FSSource) Load(tag language.Tag) (map[string]string, error) {
	name := tag.String() + ".yaml"
	data, err := fs.ReadFile(s.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", types.ErrInvalidResource, name, err)
	}
	return m, nil
}

// Provider resolves resource keys through an ordered locale chain: the
// requested tag and its parents, then the default tag and its parents.
// It is safe for concurrent use; each tag's bundle is loaded once.
type Provider struct {
	def     language.Tag
	sources []Source

	mu      sync.Mutex
	bundles map[string]*bundle
}

type bundle struct {
	once    sync.Once
	strings map[string]string
	err     error
}

// NewProvider creates a provider with the given default tag. Sources are
// layered in order: a key in a later source overrides the same key in an
// earlier one for the same tag.
func NewProvider(def language.Tag, sources ...Source) *Provider {
	return &Provider{
		def:     def,
		sources: sources,
		bundles: make(map[string]*bundle),
	}
}

// Default returns the default tag.
func (p *Provider) Default() language.Tag {
	return p.def
}

// Chain returns the tags consulted for a lookup in tag, in order.
// language.Und selects the default chain.
func (p *Provider) Chain(tag language.Tag) []language.Tag {
	var chain []language.Tag
	seen := make(map[string]bool)
	add := func(t language.Tag) {
		for ; t != language.Und; t = t.Parent() {
			if !seen[t.String()] {
				seen[t.String()] = true
				chain = append(chain, t)
			}
		}
	}
	add(tag)
	add(p.def)
	return chain
}

// String looks key up along the chain for tag. It returns
// ErrMissingLocalizedName when no tag in the chain has the key.
func (p *Provider) String(key string, tag language.Tag) (string, error) {
	for _, t := range p.Chain(tag) {
		b, err := p.bundle(t)
		if err != nil {
			return "", err
		}
		if s, ok := b[key]; ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", types.ErrMissingLocalizedName, key, tag)
}

// Name returns the era name of the given tier.
func (p *Provider) Name(value int, tier types.NameTier, tag language.Tag) (string, error) {
	return p.String(fmt.Sprintf("%s.%d.%s", Prefix, value, tier), tag)
}

// FirstYear returns the word for year 1 of an era ("元" in Japanese).
func (p *Provider) FirstYear(tag language.Tag) (string, error) {
	return p.String(KeyFirstYear, tag)
}

// DateFormat returns the localized date pattern with {era}, {year},
// {month} and {day} placeholders.
func (p *Provider) DateFormat(tag language.Tag) (string, error) {
	return p.String(KeyDateFormat, tag)
}

// bundle returns the merged strings for exactly tag, loading them on first use.
func (p *Provider) bundle(tag language.Tag) (map[string]string, error) {
	key := tag.String()

	p.mu.Lock()
	b, ok := p.bundles[key]
	if !ok {
		b = &bundle{}
		p.bundles[key] = b
	}
	p.mu.Unlock()

	b.once.Do(func() {
		merged := make(map[string]string)
		for _, src := range p.sources {
			m, err := src.Load(tag)
			if err != nil {
				b.err = err
				return
			}
			for k, v := range m {
				merged[k] = v
			}
		}
		b.strings = merged
		slog.Debug("locale bundle loaded", slog.String("tag", key), slog.Int("keys", len(merged)))
	})
	return b.strings, b.err
}
