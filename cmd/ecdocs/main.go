package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("ecdocs %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ecdocs - the EC Docs documentation server

Usage:
  ecdocs <command>

Commands:
  serve         Index the pages directory and serve the site
  version       Print the ecdocs version
  help          Show this help message

Environment (serve):
  ECDOCS_ADDR            listen address (default :3000)
  ECDOCS_CONTENT         pages directory (default pages)
  ECDOCS_STATIC          static assets directory (default public)
  ECDOCS_DB              page index path (default data/pages.db)
  ECDOCS_THEME           optional theme.yaml overriding the built-in theme
  ECDOCS_SESSION_SECRET  required, signs the preferences cookie
  ECDOCS_COOKIE_SECURE   set to "true" behind HTTPS`)
}
