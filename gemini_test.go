package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bodul/arcade3d/crossword"
)

func TestParseWordList(t *testing.T) {
	text := `{"words":[
		{"word":"comet","definition":"Icy visitor"},
		{"word":"OX","definition":"Too short"},
		{"word":"ÉTOILE","definition":"Accent"},
		{"word":"BLACK HOLE","definition":"Space"},
		{"word":"NEBULA","definition":""},
		{"word":"ASTRONOMERS","definition":"Too long for 9"},
		{"word":" ORBIT ","definition":" Path "}
	]}`

	entries, err := parseWordList(text, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []crossword.Entry{
		{Word: "COMET", Definition: "Icy visitor"},
		{Word: "ORBIT", Definition: "Path"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestParseWordListErrors(t *testing.T) {
	if _, err := parseWordList("not json", 9); err == nil {
		t.Fatal("expected a JSON error")
	}
	if _, err := parseWordList(`{"words":[{"word":"X1","definition":"bad"}]}`, 9); !errors.Is(err, crossword.ErrEmptyWordList) {
		t.Fatalf("expected ErrEmptyWordList, got %v", err)
	}
}

func TestNewGeminiClientNeedsProject(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected an error without project id")
	}
}

func TestGenerateWordList(t *testing.T) {
	projectID := os.Getenv("GCP_PROJECT_ID")
	if projectID == "" {
		t.Skip("GCP_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, GeminiConfig{ProjectID: projectID, Region: os.Getenv("GCP_REGION")})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()

	entries, err := client.GenerateWordList(ctx, "astronomie", 20)
	if err != nil {
		t.Fatalf("generate word list: %v", err)
	}
	if len(entries) < 5 {
		t.Fatalf("expected a usable list, got %d entries", len(entries))
	}

	// The list must be good enough to build a puzzle.
	p := crossword.Generate(7, entries, crossword.WithSeed(1))
	t.Logf("%d entries, %d words placed", len(entries), len(p.Words))
	for _, e := range entries {
		t.Logf("%s; %s", e.Word, e.Definition)
	}
}
