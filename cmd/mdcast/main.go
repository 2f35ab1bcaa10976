package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// Version can be set at build time with: go build -ldflags "-X main.Version=<version>"
var Version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("mdcast: ")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "generate":
		err = runGenerate(ctx, args, os.Stdin, os.Stdout)
	case "play":
		err = runPlay(ctx, args, os.Stdout)
	case "preview":
		err = runPreview(args, os.Stdout)
	case "serve":
		err = runServe(ctx, args)
	case "version":
		fmt.Println(Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		stop()
		log.Fatalf("%s: %v", command, err)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: mdcast <command> [options]

Commands:
  generate -s SOURCE [-o FILE] [options]  Turn the code blocks of a markdown file into recordings
  play [-speed X] FILE.cast               Replay a recording in this terminal
  preview FILE.cast                       Print the final screen of a recording
  serve [-addr :8080] [-dir DIR]          Stream recordings to browsers over websocket
  version                                 Print the version
  help                                    Show this help message

Generate writes, for every code block N:
  <prefix>N.cast                         asciicast v2 recording
  <prefix>N.json                         asciicast v1 recording
and asciinema-casts.json plus the rewritten markdown template.

Examples:
  mdcast generate -s README.md           Convert README.md in the current directory
  cat doc.md | mdcast generate -s -      Read the markdown from stdin
  mdcast generate -s doc.md -watch       Regenerate on every save
  mdcast play block-0.cast               Watch the first block

Environment Variables:
  ASCCINEMA_PROMPT                       Prompt shown before code lines (defaults to the working directory)
`)
}
