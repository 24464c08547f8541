package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joelkehle/persona-engine/internal/dossier"
)

func main() {
	inputPath := flag.String("input", "", "Path to dossier markdown or a saved response envelope JSON")
	outputPath := flag.String("output", "", "Path to write the PDF")
	cssPath := flag.String("css", "", "Optional custom stylesheet path")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	if *outputPath == "" {
		log.Fatal("missing required -output")
	}

	in, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	renderer := dossier.NewChromiumRenderer(*cssPath)
	pdf, err := renderer.Render(ctx, string(in))
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}
	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *outputPath, len(pdf))
}
