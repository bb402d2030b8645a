// Command surprise opens the birthday surprise scene.
package main

import (
	"os"

	"github.com/phanxgames/surprise/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
