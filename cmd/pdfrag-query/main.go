package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/shyam20433/PDF-extractor-RAG/internal/config"
	"github.com/shyam20433/PDF-extractor-RAG/internal/service"
	"github.com/shyam20433/PDF-extractor-RAG/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, question string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/pdfrag/config.yaml if not provided)")
	flag.StringVar(&question, "q", "", "Ask a single question and exit instead of starting the interactive session")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	engine, err := service.FromConfig(cfg, nil)
	if err != nil {
		log.Fatalf("failed to assemble engine: %v", err)
	}
	if !engine.LoadPersisted() {
		fmt.Fprintf(os.Stderr, "No ingested document found in %q. Upload one through the server first.\n", cfg.Storage.DataDir)
		os.Exit(1)
	}
	meta, _ := engine.Status()

	if question != "" {
		askOnce(engine, question)
		return
	}

	m := tui.New(engine, meta.Summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func askOnce(engine *service.Engine, question string) {
	answer, err := engine.Ask(question)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	color.White("%s", answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println()
		color.Yellow("Sources:")
		for _, src := range answer.Sources {
			fmt.Printf("%s %s\n", color.CyanString("[Page %d]", src.Page), src.Snippet)
		}
	}
}
