// Package registry implements the safe-method oracle (C3): a lookup
// from a method identifier to {safe, unknown}, consumed by the call
// transfer rule to decide whether a callee has side effects.
//
// Lookup order (§6.3): constructors check safe_constructor_classes
// only; non-constructors match by class-prefix first, falling back to
// an exact "class#method" signature.
package registry

import "strings"

// Registry is an immutable-after-construction safe-method oracle. Per
// the concurrency model, it is read-only after Load/New and may be
// shared across every goroutine in the driver's worker pool without
// synchronization.
type Registry struct {
	safeConstructorClasses map[string]struct{}
	safeClassPrefixes      []string
	safeMethodSignatures   map[string]struct{}
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithSafeConstructor marks every instance of class as having a pure
// constructor.
func WithSafeConstructor(class string) Option {
	return func(r *Registry) { r.safeConstructorClasses[class] = struct{}{} }
}

// WithSafePrefix marks every method of every class equal to or nested
// under the dotted prefix as pure.
func WithSafePrefix(prefix string) Option {
	return func(r *Registry) { r.safeClassPrefixes = append(r.safeClassPrefixes, prefix) }
}

// WithSafeMethod marks the exact "class#method" signature as pure.
func WithSafeMethod(signature string) Option {
	return func(r *Registry) { r.safeMethodSignatures[signature] = struct{}{} }
}

// New builds a Registry from functional options, applied left to right.
func New(opts ...Option) *Registry {
	r := &Registry{
		safeConstructorClasses: make(map[string]struct{}),
		safeMethodSignatures:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsSafeConstructor reports whether class's constructor is registered
// pure.
func (r *Registry) IsSafeConstructor(class string) bool {
	_, ok := r.safeConstructorClasses[class]
	return ok
}

// IsSafeMethod reports whether the non-constructor method identified
// by class and methodName is registered pure: a prefix match wins
// first, falling back to an exact "class#method" lookup.
func (r *Registry) IsSafeMethod(class, methodName string) bool {
	for _, prefix := range r.safeClassPrefixes {
		if class == prefix || strings.HasPrefix(class, prefix+".") {
			return true
		}
	}
	_, ok := r.safeMethodSignatures[class+"#"+methodName]
	return ok
}

// IsSafe is the single entry point the call transfer rule uses: it
// dispatches to IsSafeConstructor or IsSafeMethod based on
// isConstructor, per the §6.3 lookup rule.
func (r *Registry) IsSafe(class, methodName string, isConstructor bool) bool {
	if isConstructor {
		return r.IsSafeConstructor(class)
	}
	return r.IsSafeMethod(class, methodName)
}

// Default returns a small, built-in registry covering a handful of
// well-known immutable-looking standard-library-style types, enough to
// run the demo CLI and the §8.2 scenario 7/8 examples without an
// external registry file.
func Default() *Registry {
	return New(
		WithSafeConstructor("java.util.ArrayList"),
		WithSafePrefix("java.lang.StringBuilder"),
		WithSafeMethod("java.util.ArrayList#add"),
		WithSafeConstructor("java.lang.Object"),
	)
}
