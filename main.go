package main

import (
	"fmt"
	"os"

	"github.com/zalepa/crimestats/cmd"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "web":
		cmd.Web(os.Args[2:])
	case "viz":
		cmd.Viz(os.Args[2:])
	case "export":
		cmd.Export(os.Args[2:])
	case "download":
		cmd.Download(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: crimestats <command>

Commands:
  web        Serve the interactive crime dashboard
  viz        Show the dashboard panels in the terminal or write them to PDF/PNG/SVG
  export     Write yearly counts and the category trend to an Excel workbook
  download   Download the criminal offences CSV export
`)
}
