// Command diagramctl opens, renders and inspects generated diagrams.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
