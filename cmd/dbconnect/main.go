package main

import (
	"fmt"
	"os"

	"github.com/eduardofuncao/dbconnect/internal/styles"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error:"), err)
		os.Exit(1)
	}
}
