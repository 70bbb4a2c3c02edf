package main

import (
	"fmt"
	"os"

	"academy/catalog"
)

// Validates a content catalog file without touching the database.
// Usage: catalog-lint [catalog.json]
func main() {
	path := "./catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := catalog.ParseFile(path)
	if err != nil {
		fmt.Printf("%s: %v\n", path, err)
		os.Exit(1)
	}

	problems := file.Validate()
	for _, p := range problems {
		fmt.Printf("%s: %s\n", path, p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}

	lessons := 0
	for _, m := range file.Modules {
		lessons += len(m.Lessons)
	}
	fmt.Printf("%s: OK (%d modules, %d lessons)\n", path, len(file.Modules), lessons)
}
