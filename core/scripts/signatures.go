// ABOUTME: Known-vendor signature list used to classify page scripts
// ABOUTME: Ships an embedded YAML list that an operator-supplied file can replace

package scripts

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"brandscout-api/core/domain"
)

//go:embed signatures.yaml
var embeddedSignatures []byte

// Signature identifies one vendor
type Signature struct {
	Vendor   string                `yaml:"vendor"`
	Category domain.ScriptCategory `yaml:"category"`

	// Hosts are matched as hostname suffixes on a label boundary
	Hosts []string `yaml:"hosts"`

	// Paths are substrings of the URL path. With Hosts set, both must match.
	Paths []string `yaml:"paths"`

	// Inline markers are substrings of inline script bodies
	Inline []string `yaml:"inline"`
}

// Signatures is an ordered list; the first match wins
type Signatures struct {
	list []Signature
}

type signatureFile struct {
	Vendors []Signature `yaml:"vendors"`
}

// DefaultSignatures returns the embedded list
func DefaultSignatures() *Signatures {
	sigs, err := ParseSignatures(embeddedSignatures)
	if err != nil {
		panic(fmt.Sprintf("embedded script signatures are invalid: %v", err))
	}
	return sigs
}

// LoadSignatures reads a YAML signature file. An empty path yields the embedded list.
func LoadSignatures(path string) (*Signatures, error) {
	if path == "" {
		return DefaultSignatures(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signatures file: %w", err)
	}
	return ParseSignatures(data)
}

// ParseSignatures decodes and validates a YAML signature document
func ParseSignatures(data []byte) (*Signatures, error) {
	var file signatureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}

	list := make([]Signature, 0, len(file.Vendors))
	for i, sig := range file.Vendors {
		if strings.TrimSpace(sig.Vendor) == "" {
			return nil, fmt.Errorf("signature %d: vendor is required", i)
		}
		if len(sig.Hosts) == 0 && len(sig.Paths) == 0 && len(sig.Inline) == 0 {
			return nil, fmt.Errorf("signature %q: needs hosts, paths or inline markers", sig.Vendor)
		}
		if sig.Category == "" {
			sig.Category = domain.ScriptCategoryUnknown
		}
		for j, h := range sig.Hosts {
			sig.Hosts[j] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "."))
		}
		for j, p := range sig.Paths {
			sig.Paths[j] = strings.ToLower(strings.TrimSpace(p))
		}
		list = append(list, sig)
	}

	return &Signatures{list: list}, nil
}

// Len returns the number of signatures
func (s *Signatures) Len() int {
	return len(s.list)
}

// Match classifies a script URL
func (s *Signatures) Match(u *url.URL) (Signature, bool) {
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.EscapedPath())

	for _, sig := range s.list {
		if len(sig.Hosts) == 0 && len(sig.Paths) == 0 {
			continue
		}
		if len(sig.Hosts) > 0 && !matchesAnyHost(host, sig.Hosts) {
			continue
		}
		if len(sig.Paths) > 0 && !containsAny(path, sig.Paths) {
			continue
		}
		return sig, true
	}
	return Signature{}, false
}

// MatchInline classifies an inline script body
func (s *Signatures) MatchInline(code string) (Signature, bool) {
	if strings.TrimSpace(code) == "" {
		return Signature{}, false
	}
	for _, sig := range s.list {
		if containsAny(code, sig.Inline) {
			return sig, true
		}
	}
	return Signature{}, false
}

func matchesAnyHost(host string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
