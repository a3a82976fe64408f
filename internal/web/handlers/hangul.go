package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jusunglee/phonetics-to-hangul/internal/hangul"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
)

const maxInputLength = 500

// Transcriber is implemented by *pronounce.Transcriber.
type Transcriber interface {
	Transcribe(ctx context.Context, text string) ([]pronounce.Result, error)
	TranscribeIPA(text string) []pronounce.Result
}

type HangulHandler struct {
	transcriber Transcriber
	log         *slog.Logger
}

func NewHangulHandler(transcriber Transcriber, log *slog.Logger) *HangulHandler {
	return &HangulHandler{transcriber: transcriber, log: log}
}

type wordResponse struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic,omitempty"`
	Hangul    string `json:"hangul"`
	Romanized string `json:"romanized"`
	Source    string `json:"source,omitempty"`
	Found     bool   `json:"found"`
}

type hangulResponse struct {
	Input  string         `json:"input"`
	Hangul string         `json:"hangul"`
	Words  []wordResponse `json:"words"`
}

func toWordResponse(r pronounce.Result) wordResponse {
	resp := wordResponse{
		Word:     r.Word,
		Phonetic: r.Phonetic,
		Hangul:   r.Hangul,
		Source:   r.Source,
		Found:    r.Found,
	}
	if r.Found {
		resp.Romanized = hangul.Romanize(r.Hangul)
	}
	return resp
}

// Convert handles GET /api/v1/hangul. The text parameter is looked up word by
// word; the ipa parameter is converted as given.
func (h *HangulHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	text := strings.TrimSpace(q.Get("text"))
	phonetic := strings.TrimSpace(q.Get("ipa"))

	input := text
	if input == "" {
		input = phonetic
	}
	switch {
	case text == "" && phonetic == "":
		writeError(w, http.StatusBadRequest, "text or ipa is required")
		return
	case text != "" && phonetic != "":
		writeError(w, http.StatusBadRequest, "use either text or ipa, not both")
		return
	case utf8.RuneCountInString(input) > maxInputLength:
		writeError(w, http.StatusBadRequest, "input too long")
		return
	}

	var results []pronounce.Result
	if text != "" {
		var err error
		results, err = h.transcriber.Transcribe(r.Context(), text)
		if err != nil {
			h.log.ErrorContext(r.Context(), "transcribing text", "error", err, "text", text)
			writeError(w, http.StatusBadGateway, "pronunciation lookup failed")
			return
		}
	} else {
		results = h.transcriber.TranscribeIPA(phonetic)
	}

	words := make([]wordResponse, len(results))
	for i, res := range results {
		if res.Found && !hangul.IsWellFormed(res.Hangul) {
			h.log.ErrorContext(r.Context(), "conversion produced malformed hangul", "word", res.Word, "hangul", res.Hangul)
			writeError(w, http.StatusInternalServerError, "conversion failed")
			return
		}
		words[i] = toWordResponse(res)
	}

	writeJSON(w, http.StatusOK, hangulResponse{
		Input:  input,
		Hangul: pronounce.Joined(results),
		Words:  words,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
