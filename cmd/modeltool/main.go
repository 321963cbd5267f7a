// Modeltool resolves block models from resource packs and uploads their textures.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/blockforge/cmd/modeltool/internal/command"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
