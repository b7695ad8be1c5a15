// Command seam-carver narrows images by removing low-energy vertical seams.
package main

import (
	"context"
	"os"
)

func main() {
	root, a := newRootCommand()
	err := root.ExecuteContext(context.Background())
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
