// Command recsgen generates record implementations from a YAML
// definition file.
//
// Usage:
//
//	recsgen -defs records.yaml -o model_gen.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-recs/recs/compiler/gen"
	"github.com/go-recs/recs/compiler/load"
)

func main() {
	var (
		defs = flag.String("defs", "records.yaml", "record definition file")
		out  = flag.String("o", "", "output file (default stdout)")
	)
	flag.Parse()

	spec, err := load.Open(*defs)
	if err != nil {
		fail(err)
	}
	f, err := gen.File(spec)
	if err != nil {
		fail(err)
	}
	if *out == "" {
		if err := f.Render(os.Stdout); err != nil {
			fail(err)
		}
		return
	}
	if err := f.Save(*out); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "recsgen:", err)
	os.Exit(1)
}
