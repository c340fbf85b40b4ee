package main

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

// row prints one aligned key/value line.
func row(key string, value any) {
	fmt.Printf("  %s %v\n", subtle.Sprintf("%-12s", key), value)
}
