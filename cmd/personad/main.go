package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/httpapi"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/personagen"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	ds, err := refdata.Load()
	if err != nil {
		log.Fatalf("load reference data: %v", err)
	}

	// The build pipeline is optional: without an API key the deterministic
	// endpoints still serve.
	var pipeline *personagen.Pipeline
	if strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")) != "" {
		caller, err := personagen.NewAnthropicCallerFromEnv()
		if err != nil {
			log.Fatal(err)
		}
		runner := personagen.NewLLMStageRunner(personagen.NewStageExecutor(caller))
		socEngine := sociology.NewEngine(ds, lexicon.New(ds), econ.New(ds))
		pipeline = personagen.NewPipeline(socEngine, timepattern.New(ds), runner)
	} else {
		log.Print("ANTHROPIC_API_KEY not set; /v1/persona/build disabled")
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewServer(ds, pipeline),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("personad listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
	log.Print("personad stopped")
}
