// File: yaml.go
// Role: Loading a Registry from a YAML document (§6.3 schema).
// Determinism:
//   - Load order of list entries does not affect lookup results (sets).
// Concurrency:
//   - None: Load runs once at startup, before the Registry is shared.

package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk YAML shape:
//
//	safe_constructor_classes: ["java.util.ArrayList"]
//	safe_class_prefixes: ["java.lang.StringBuilder"]
//	safe_method_signatures: ["java.util.ArrayList#add"]
type document struct {
	SafeConstructorClasses []string `yaml:"safe_constructor_classes"`
	SafeClassPrefixes      []string `yaml:"safe_class_prefixes"`
	SafeMethodSignatures   []string `yaml:"safe_method_signatures"`
}

// Load reads and parses a registry document from path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("registry: parse %s: %w", path, err)
	}

	var opts []Option
	for _, c := range doc.SafeConstructorClasses {
		opts = append(opts, WithSafeConstructor(c))
	}
	for _, p := range doc.SafeClassPrefixes {
		opts = append(opts, WithSafePrefix(p))
	}
	for _, m := range doc.SafeMethodSignatures {
		opts = append(opts, WithSafeMethod(m))
	}
	return New(opts...), nil
}
