// Command abidemo builds a record against revision 1 of the library and
// prints its version.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexhholmes/abilayout/lib/rev1"
)

func main() {
	run(os.Stdout)
}

func run(w io.Writer) {
	r := rev1.Record{
		Minor: 0xCD, // 205
		Major: 0xAB, // 171
	}
	version := rev1.GetVersion(&r)
	fmt.Fprintf(w, "Version: %d\n", version)
}
