package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joelkehle/persona-engine/internal/econ"
	"github.com/joelkehle/persona-engine/internal/lexicon"
	"github.com/joelkehle/persona-engine/internal/personagen"
	"github.com/joelkehle/persona-engine/internal/refdata"
	"github.com/joelkehle/persona-engine/internal/sociology"
	"github.com/joelkehle/persona-engine/internal/timepattern"
)

func main() {
	role := flag.String("role", "", "Declared role/occupation text (required)")
	age := flag.String("age", "26-35", "Age range, e.g. 18-25")
	income := flag.String("income", "", "Declared income tier label (Survival/Tight/Stable/Affluent/Elite)")
	source := flag.String("source", "synthetic", "Persona origin: synthetic or uploaded")
	shadow := flag.String("shadow", "", "Optional shadow for synthetic personas (impulse/paralysis/scarcity/vanity)")
	personaID := flag.String("id", "", "Persona ID (generated when empty)")
	hourly := flag.String("hourly", "", "Optional 24 comma-separated hourly activity weights")
	jsonOut := flag.String("json-output", "", "Path to write the response envelope JSON")
	mdOut := flag.String("markdown-output", "", "Path to write the dossier markdown (defaults to stdout)")
	flag.Parse()

	if strings.TrimSpace(*role) == "" {
		log.Fatal("missing required -role")
	}

	ds, err := refdata.Load()
	if err != nil {
		log.Fatalf("load reference data: %v", err)
	}
	caller, err := personagen.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	runner := personagen.NewLLMStageRunner(personagen.NewStageExecutor(caller))
	socEngine := sociology.NewEngine(ds, lexicon.New(ds), econ.New(ds))
	pipeline := personagen.NewPipeline(socEngine, timepattern.New(ds), runner)

	req := personagen.RequestEnvelope{
		PersonaID:   *personaID,
		Source:      *source,
		Shadow:      *shadow,
		AgeRange:    *age,
		RoleText:    *role,
		IncomeLabel: *income,
	}
	if *hourly != "" {
		vec, err := parseHourly(*hourly)
		if err != nil {
			log.Fatalf("parse -hourly: %v", err)
		}
		req.HourlyActivity = vec
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := pipeline.RunWithProgress(ctx, req, func(stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}
	env := personagen.BuildResponse(result)

	if *jsonOut != "" {
		b, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			log.Fatalf("encode envelope: %v", err)
		}
		if err := os.WriteFile(*jsonOut, b, 0o644); err != nil {
			log.Fatalf("write json output: %v", err)
		}
	}
	if *mdOut != "" {
		if err := os.WriteFile(*mdOut, []byte(env.ReportMarkdown), 0o644); err != nil {
			log.Fatalf("write markdown output: %v", err)
		}
		return
	}
	fmt.Print(env.ReportMarkdown)
}

func parseHourly(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != timepattern.HoursPerDay {
		return nil, fmt.Errorf("expected %d values, got %d", timepattern.HoursPerDay, len(parts))
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
