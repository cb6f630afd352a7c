package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bodul/arcade3d/connectfour"
	"github.com/bodul/arcade3d/crossword"
	"github.com/bodul/arcade3d/lattice"
)

const (
	minCrosswordSize = 3
	maxCrosswordSize = 12

	defaultThemeWords = 40
	minThemeWords     = 10
	maxThemeWords     = 100

	maxBodySize = 64 << 10
)

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
	now      func() time.Time
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}
	go func() {
		for range time.Tick(time.Minute) {
			rl.sweep(5 * time.Minute)
		}
	}()
	return rl
}

// sweep forgets visitors idle for longer than idle.
func (rl *rateLimiter) sweep(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, b := range rl.visitors {
		if now.Sub(b.lastSeen) > idle {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: now}
		return true
	}

	if refill := int(now.Sub(b.lastSeen) / rl.interval); refill > 0 {
		b.tokens = min(b.tokens+refill*rl.rate, rl.rate)
		b.lastSeen = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// clientIP strips the port from RemoteAddr so one host shares one bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	store    *Store
	words    WordListSource
	genOpts  []crossword.Option
	createRL *rateLimiter
	moveRL   *rateLimiter
}

// NewServer creates a configured HTTP server. words may be nil, in which
// case themed word lists are unavailable.
func NewServer(store *Store, words WordListSource, cfg Config) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		store:    store,
		words:    words,
		genOpts:  cfg.Crossword.GenerateOptions(),
		createRL: newRateLimiter(cfg.Limits.CreatePerMinute, time.Minute),
		moveRL:   newRateLimiter(cfg.Limits.MovesPerSecond, time.Second),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/wordlists", s.handleListWordLists)
	s.mux.HandleFunc("POST /api/wordlists", s.handleCreateWordList)

	s.mux.HandleFunc("POST /api/crosswords", s.handleCreateCrossword)
	s.mux.HandleFunc("GET /api/crosswords", s.handleListCrosswords)
	s.mux.HandleFunc("GET /api/crosswords/{id}", s.handleGetCrossword)
	s.mux.HandleFunc("POST /api/crosswords/{id}/letters", s.handleEnterLetter)
	s.mux.HandleFunc("POST /api/crosswords/{id}/check", s.handleCheckLetter)
	s.mux.HandleFunc("POST /api/crosswords/{id}/hint", s.handleHint)

	s.mux.HandleFunc("POST /api/connectfour", s.handleCreateConnectFour)
	s.mux.HandleFunc("GET /api/connectfour/{id}", s.handleGetConnectFour)
	s.mux.HandleFunc("POST /api/connectfour/{id}/moves", s.handleDrop)
	s.mux.HandleFunc("POST /api/connectfour/{id}/reset", s.handleReset)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'none'")
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	}
	s.mux.ServeHTTP(w, r)
}

// --- Word list handlers ---

// GET /api/wordlists: list difficulty names.
func (s *Server) handleListWordLists(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"difficulties": crossword.Difficulties()})
}

// POST /api/wordlists: generate a themed word list and register it.
func (s *Server) handleCreateWordList(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}
	if s.words == nil {
		jsonError(w, "Génération de listes non configurée", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Theme string `json:"theme"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	name := sanitizeName(req.Name)
	if name == "" {
		jsonError(w, "Champ 'name' requis", http.StatusBadRequest)
		return
	}
	if crossword.HasWordList(name) {
		jsonError(w, "Une liste porte déjà ce nom", http.StatusConflict)
		return
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" || utf8.RuneCountInString(theme) > 60 {
		jsonError(w, "Thème invalide", http.StatusBadRequest)
		return
	}
	count := req.Count
	if count == 0 {
		count = defaultThemeWords
	}
	if count < minThemeWords || count > maxThemeWords {
		jsonError(w, "Nombre de mots invalide (10 à 100)", http.StatusBadRequest)
		return
	}

	entries, err := s.words.GenerateWordList(r.Context(), theme, count)
	if err == nil {
		err = crossword.RegisterNewWordList(name, entries)
	}
	switch {
	case errors.Is(err, crossword.ErrWordListExists):
		jsonError(w, "Une liste porte déjà ce nom", http.StatusConflict)
		return
	case errors.Is(err, crossword.ErrEmptyWordList):
		jsonError(w, "Aucun mot utilisable pour ce thème", http.StatusUnprocessableEntity)
		return
	case err != nil:
		log.Printf("Gemini word list error: %v", err)
		jsonError(w, "Erreur lors de la génération de la liste", http.StatusBadGateway)
		return
	}
	log.Printf("Liste %q enregistrée (%d mots, thème %q)", name, len(entries), theme)

	writeJSON(w, http.StatusCreated, map[string]any{"name": name, "words": len(crossword.WordList(name))})
}

// --- Crossword handlers ---

// POST /api/crosswords: generate a puzzle.
func (s *Server) handleCreateCrossword(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Size       int     `json:"size"`
		Difficulty string  `json:"difficulty"`
		Seed       *uint64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	if req.Size < minCrosswordSize || req.Size > maxCrosswordSize {
		jsonError(w, "Taille invalide (3 à 12)", http.StatusBadRequest)
		return
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = crossword.DefaultDifficulty
	}
	if !crossword.HasWordList(difficulty) {
		jsonError(w, "Difficulté inconnue", http.StatusBadRequest)
		return
	}

	opts := s.genOpts
	if req.Seed != nil {
		opts = append(opts[:len(opts):len(opts)], crossword.WithSeed(*req.Seed))
	}
	p := crossword.GenerateDifficulty(req.Size, difficulty, opts...)
	cs := s.store.SaveCrossword(p, difficulty)
	log.Printf("Mots croisés %s : taille %d, %s, %d mots", cs.ID, p.Size, difficulty, len(p.Words))

	writeJSON(w, http.StatusCreated, cs.View())
}

// GET /api/crosswords: list puzzles, most recent first.
func (s *Server) handleListCrosswords(w http.ResponseWriter, _ *http.Request) {
	list := s.store.ListCrosswords()
	out := make([]CrosswordSummary, len(list))
	for i, cs := range list {
		out[i] = cs.Summary()
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/crosswords/{id}: current puzzle state.
func (s *Server) handleGetCrossword(w http.ResponseWriter, r *http.Request) {
	cs := s.store.GetCrossword(r.PathValue("id"))
	if cs == nil {
		jsonError(w, "Mots croisés introuvables", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cs.View())
}

// POST /api/crosswords/{id}/letters: write or erase a letter.
func (s *Server) handleEnterLetter(w http.ResponseWriter, r *http.Request) {
	if !s.moveRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}
	cs := s.store.GetCrossword(r.PathValue("id"))
	if cs == nil {
		jsonError(w, "Mots croisés introuvables", http.StatusNotFound)
		return
	}

	var req struct {
		lattice.Coord
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	// Value must be empty (erase) or a single letter.
	value := strings.ToUpper(strings.TrimSpace(req.Value))
	if value != "" && (utf8.RuneCountInString(value) != 1 || value < "A" || value > "Z") {
		jsonError(w, "Valeur invalide : une lettre A-Z ou vide", http.StatusBadRequest)
		return
	}
	var letter byte
	if value != "" {
		letter = value[0]
	}

	if err := cs.Enter(req.Coord, letter); err != nil {
		writeCrosswordError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/crosswords/{id}/check: compare one cell with the solution.
func (s *Server) handleCheckLetter(w http.ResponseWriter, r *http.Request) {
	cs := s.store.GetCrossword(r.PathValue("id"))
	if cs == nil {
		jsonError(w, "Mots croisés introuvables", http.StatusNotFound)
		return
	}

	var req lattice.Coord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	res, err := cs.Check(req)
	if err != nil {
		writeCrosswordError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /api/crosswords/{id}/hint: reveal one empty cell.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	if !s.moveRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}
	cs := s.store.GetCrossword(r.PathValue("id"))
	if cs == nil {
		jsonError(w, "Mots croisés introuvables", http.StatusNotFound)
		return
	}
	h, ok := cs.Hint()
	if !ok {
		jsonError(w, "Plus aucune case à révéler", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func writeCrosswordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crossword.ErrNotWordCell):
		jsonError(w, "Cette case n'appartient à aucun mot", http.StatusBadRequest)
	case errors.Is(err, crossword.ErrBadLetter):
		jsonError(w, "Valeur invalide : une lettre A-Z ou vide", http.StatusBadRequest)
	case errors.Is(err, crossword.ErrEmptyCell):
		jsonError(w, "Case vide", http.StatusBadRequest)
	default:
		log.Printf("crossword error: %v", err)
		jsonError(w, "Erreur interne", http.StatusInternalServerError)
	}
}

// --- Connect-Four handlers ---

// POST /api/connectfour: start a match.
func (s *Server) handleCreateConnectFour(w http.ResponseWriter, r *http.Request) {
	if !s.createRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Size    int      `json:"size"`
		Players int      `json:"players"`
		Names   []string `json:"names"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Requête invalide", http.StatusBadRequest)
		return
	}
	if req.Players == 0 {
		req.Players = len(req.Names)
	}
	if len(req.Names) > req.Players {
		jsonError(w, "Plus de pseudos que de joueurs", http.StatusBadRequest)
		return
	}
	if req.Players > connectfour.MaxPlayers {
		writeConnectFourError(w, connectfour.ErrInvalidPlayers)
		return
	}
	pseudos := make([]string, max(req.Players, 0))
	for i, n := range req.Names {
		pseudos[i] = sanitizePseudo(n)
	}

	g, err := s.store.CreateConnectFour(req.Size, pseudos)
	if err != nil {
		writeConnectFourError(w, err)
		return
	}
	log.Printf("Puissance 4 %s : taille %d, %d joueurs", g.ID, req.Size, len(pseudos))

	writeJSON(w, http.StatusCreated, g.View())
}

// GET /api/connectfour/{id}: current match state.
func (s *Server) handleGetConnectFour(w http.ResponseWriter, r *http.Request) {
	g := s.store.GetConnectFour(r.PathValue("id"))
	if g == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

// POST /api/connectfour/{id}/moves: drop a piece for the player to move.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	if !s.moveRL.allow(clientIP(r)) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}
	g := s.store.GetConnectFour(r.PathValue("id"))
	if g == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}

	var req struct {
		X *int `json:"x"`
		Z *int `json:"z"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.X == nil || req.Z == nil {
		jsonError(w, "Champs 'x' et 'z' requis", http.StatusBadRequest)
		return
	}

	mv, err := g.Play(*req.X, *req.Z)
	if err != nil {
		writeConnectFourError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mv)
}

// POST /api/connectfour/{id}/reset: empty the board, keep the seats.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g := s.store.GetConnectFour(r.PathValue("id"))
	if g == nil {
		jsonError(w, "Partie introuvable", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g.Reset())
}

func writeConnectFourError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, connectfour.ErrInvalidSize):
		jsonError(w, "Taille invalide (4 à 9)", http.StatusBadRequest)
	case errors.Is(err, connectfour.ErrInvalidPlayers):
		jsonError(w, "Nombre de joueurs invalide (2 à 8)", http.StatusBadRequest)
	case errors.Is(err, connectfour.ErrColumnOutOfRange):
		jsonError(w, "Colonne hors limites", http.StatusBadRequest)
	case errors.Is(err, connectfour.ErrColumnFull):
		jsonError(w, "Colonne pleine", http.StatusConflict)
	case errors.Is(err, connectfour.ErrGameOver):
		jsonError(w, "Partie terminée", http.StatusConflict)
	default:
		log.Printf("connect four error: %v", err)
		jsonError(w, "Erreur interne", http.StatusInternalServerError)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizePseudo(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20])
	}
	return s
}

// sanitizeName keeps word list names to lowercase letters, digits and '-'.
func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || len(s) > 30 {
		return ""
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return ""
		}
	}
	return s
}
