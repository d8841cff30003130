package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"dealscope/internal/config"
	"dealscope/internal/database"
	"dealscope/internal/database/repository"
	"dealscope/internal/service"
	"dealscope/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDeals(ctx, db); err != nil {
		log.Fatalf("seed deals: %v", err)
	}

	dealRepo := repository.NewDealRepo(db)
	suggestionRepo := repository.NewSuggestionRepo(db)

	suggestions := &service.SuggestionService{DB: db, Deals: dealRepo, Suggestions: suggestionRepo}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Deals: dealRepo, Suggestions: suggestionRepo},
		tui.Services{Suggestions: suggestions},
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
