package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bodul/arcade3d/crossword"
)

// WordListSource produces themed crossword entries.
type WordListSource interface {
	GenerateWordList(ctx context.Context, theme string, count int) ([]crossword.Entry, error)
}

const wordListPrompt = `Tu prépares une liste de mots pour des mots croisés en 3D.

Thème : %q
Nombre de mots : %d

Réponds au format JSON suivant :
{
  "words": [
    {"word": "PLANETE", "definition": "Astre qui tourne autour d'une étoile"},
    ...
  ]
}

Règles :
- Chaque mot fait entre 3 et %d lettres.
- Uniquement des lettres A à Z en majuscules : pas d'accents, d'espaces, de tirets ni d'apostrophes.
- Pas de doublons.
- La définition est courte (moins de 60 caractères) et ne contient pas le mot.
- Réponds UNIQUEMENT avec le JSON, sans commentaire ni markdown.`

// maxWordLength is the longest word a generated list may hold. It matches
// the largest grid the server builds.
const maxWordLength = maxCrosswordSize

var wordListSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"words": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"word":       {Type: genai.TypeString},
					"definition": {Type: genai.TypeString},
				},
				Required: []string{"word", "definition"},
			},
		},
	},
	Required: []string{"words"},
}

// GenerateWordList asks Gemini for count words about theme.
func (g *GeminiClient) GenerateWordList(ctx context.Context, theme string, count int) ([]crossword.Entry, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(wordListPrompt, theme, count, maxWordLength)},
			},
		}},
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr(float32(0.7)),
			TopP:             genai.Ptr(float32(0.95)),
			ResponseMIMEType: "application/json",
			ResponseSchema:   wordListSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty gemini response")
	}
	return parseWordList(text, maxWordLength)
}

// parseWordList decodes a Gemini answer and keeps the entries that fit a
// grid: A-Z words of 3 to maxLen letters with a definition.
func parseWordList(text string, maxLen int) ([]crossword.Entry, error) {
	var out struct {
		Words []struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
		} `json:"words"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("parse word list JSON: %w\nraw response: %s", err, text)
	}

	entries := make([]crossword.Entry, 0, len(out.Words))
	for _, w := range out.Words {
		word := strings.ToUpper(strings.TrimSpace(w.Word))
		def := strings.TrimSpace(w.Definition)
		if len(word) < 3 || len(word) > maxLen || def == "" || !isLetters(word) {
			continue
		}
		entries = append(entries, crossword.Entry{Word: word, Definition: def})
	}
	if len(entries) == 0 {
		return nil, crossword.ErrEmptyWordList
	}
	return entries, nil
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
