package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/gelendir/codenames/internal/board"
	"github.com/gelendir/codenames/internal/config"
	"github.com/gelendir/codenames/internal/directory"
	"github.com/gelendir/codenames/internal/ws"
)

func run(cfg *config.Config) error {
	if cfg.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	boards, err := board.Load(cfg.BoardFile)
	if err != nil {
		return err
	}

	hub := ws.NewHub(cfg.QueueCapacity)
	dir := directory.New(hub, boards)
	go dir.Run()

	router := mux.NewRouter()
	router.HandleFunc("/ws", dir.Upgrade)
	router.HandleFunc("/healthz", dir.Healthz)

	log.Printf("codenames: listening on %s", cfg.Bind)
	return http.ListenAndServe(cfg.Bind, router)
}

func main() {
	var cfg config.Config
	cmd := config.New(&cfg, run)

	if err := cmd.Execute(); err != nil {
		log.Printf("codenames: %v", err)
		os.Exit(1)
	}
}
