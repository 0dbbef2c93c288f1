package registry_test

import (
	"fmt"

	"github.com/katalvlaran/ptpure/registry"
)

// ExampleNew demonstrates the three lookup rules: a registered safe
// constructor, a prefix match, and an exact signature match.
func ExampleNew() {
	r := registry.New(
		registry.WithSafeConstructor("java.util.ArrayList"),
		registry.WithSafePrefix("java.lang.StringBuilder"),
		registry.WithSafeMethod("java.util.ArrayList#add"),
	)

	fmt.Println(r.IsSafe("java.util.ArrayList", "<init>", true))
	fmt.Println(r.IsSafe("java.lang.StringBuilder", "append", false))
	fmt.Println(r.IsSafe("java.util.ArrayList", "add", false))
	fmt.Println(r.IsSafe("com.example.Mutable", "set", false))

	// Output:
	// true
	// true
	// true
	// false
}
