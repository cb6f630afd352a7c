package main

import (
	"context"
	"log"
	"net/http"
)

func main() {
	cfg, err := LoadConfig(configFile())
	if err != nil {
		log.Fatalf("Configuration invalide : %v", err)
	}

	ctx := context.Background()

	var words WordListSource
	if cfg.Gemini.ProjectID != "" {
		gemini, err := NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			log.Fatalf("Impossible d'initialiser Gemini : %v", err)
		}
		defer gemini.Close()
		words = gemini
		log.Printf("Client Gemini initialisé (projet: %s, modèle: %s)", cfg.Gemini.ProjectID, gemini.modelName)
	} else {
		log.Println("GCP_PROJECT_ID non défini, listes thématiques désactivées")
	}

	srv := NewServer(NewStore(), words, cfg)

	log.Printf("Serveur démarré sur http://localhost:%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv); err != nil {
		log.Fatal(err)
	}
}
