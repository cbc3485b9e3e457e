package main

import (
	"os"

	"github.com/htol/ebookstore/app"
)

func main() {
	os.Exit(app.CLI(os.Args[1:]))
}
