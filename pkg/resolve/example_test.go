package resolve_test

import (
	"fmt"

	"github.com/matzehuels/netscore/pkg/resolve"
)

func ExampleNPMPackageName() {
	name, ok := resolve.NPMPackageName("https://www.npmjs.com/package/@babel/core/v/7.24.0")
	fmt.Println(name, ok)
	// Output:
	// @babel/core true
}
