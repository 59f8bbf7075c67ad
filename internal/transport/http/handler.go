package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"wedding-trivia/internal/domain"
	"wedding-trivia/internal/render"
)

// SessionStore is the state the stub backend keeps per quiz session.
type SessionStore interface {
	Start(id, email, name string, totalQuestions int)
	UpdateIndex(id string, index int) error
	RecordAnswer(id string, correct bool, points int) error
	SetForcedTarget(id string, target int) error
	ForcedTarget(id string, currentIndex int) (int, bool, error)
	End(id string, totalScore, correctAnswers, totalQuestions int) error
	Rename(email, newName string)
	Leaderboard() []domain.LeaderboardEntry
}

// Handler implements the quiz backend contract: one POST endpoint that
// dispatches on an "action" form field and answers with JSON. It stands in
// for the real remote service during development and tests.
type Handler struct {
	store SessionStore
}

func NewHandler(store SessionStore) *Handler {
	return &Handler{store: store}
}

type reply struct {
	Success       bool                      `json:"success"`
	Error         string                    `json:"error,omitempty"`
	SessionID     string                    `json:"sessionId,omitempty"`
	ShouldAdvance *bool                     `json:"shouldAdvance,omitempty"`
	TargetIndex   *int                      `json:"targetQuestionIndex,omitempty"`
	Leaderboard   []domain.LeaderboardEntry `json:"leaderboard,omitempty"`
}

// ServeAction handles the form-post action dispatch.
func (h *Handler) ServeAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, reply{Success: false, Error: "POST required"})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, reply{Success: false, Error: "bad form body"})
		return
	}

	switch r.PostFormValue("action") {
	case "startSession":
		h.startSession(w, r)
	case "updateQuestionIndex":
		h.updateQuestionIndex(w, r)
	case "submitAnswer":
		h.submitAnswer(w, r)
	case "checkForcedAdvance":
		h.checkForcedAdvance(w, r)
	case "endSession":
		h.endSession(w, r)
	case "getLeaderboard":
		writeJSON(w, reply{Success: true, Leaderboard: h.store.Leaderboard()})
	case "updateUserName":
		h.updateUserName(w, r)
	case "forceAdvance":
		h.forceAdvance(w, r)
	default:
		writeJSON(w, reply{Success: false, Error: "unknown action"})
	}
}

// ServeLeaderboardPage renders the standings as HTML.
func (h *Handler) ServeLeaderboardPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, h.store.Leaderboard()); err != nil {
		log.Printf("stub backend: render leaderboard: %v", err)
	}
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PostFormValue("sessionId")
	email := r.PostFormValue("email")
	if sessionID == "" || email == "" {
		writeJSON(w, reply{Success: false, Error: "sessionId and email required"})
		return
	}
	total, _ := strconv.Atoi(r.PostFormValue("totalQuestions"))
	h.store.Start(sessionID, email, r.PostFormValue("name"), total)
	writeJSON(w, reply{Success: true, SessionID: sessionID})
}

func (h *Handler) updateQuestionIndex(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PostFormValue("questionIndex"))
	if err != nil {
		writeJSON(w, reply{Success: false, Error: "bad questionIndex"})
		return
	}
	if err := h.store.UpdateIndex(r.PostFormValue("sessionId"), index); err != nil {
		writeJSON(w, reply{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, reply{Success: true})
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	correct := r.PostFormValue("isCorrect") == "true"
	points, _ := strconv.Atoi(r.PostFormValue("points"))
	if err := h.store.RecordAnswer(r.PostFormValue("sessionId"), correct, points); err != nil {
		writeJSON(w, reply{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, reply{Success: true})
}

func (h *Handler) checkForcedAdvance(w http.ResponseWriter, r *http.Request) {
	current, err := strconv.Atoi(r.PostFormValue("currentQuestionIndex"))
	if err != nil {
		writeJSON(w, reply{Success: false, Error: "bad currentQuestionIndex"})
		return
	}
	target, should, err := h.store.ForcedTarget(r.PostFormValue("sessionId"), current)
	if err != nil {
		writeJSON(w, reply{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, reply{Success: true, ShouldAdvance: &should, TargetIndex: &target})
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	totalScore, _ := strconv.Atoi(r.PostFormValue("totalScore"))
	totalQuestions, _ := strconv.Atoi(r.PostFormValue("totalQuestions"))
	correctAnswers, _ := strconv.Atoi(r.PostFormValue("correctAnswers"))
	if err := h.store.End(r.PostFormValue("sessionId"), totalScore, correctAnswers, totalQuestions); err != nil {
		writeJSON(w, reply{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, reply{Success: true})
}

func (h *Handler) updateUserName(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	newName := r.PostFormValue("newName")
	if email == "" || newName == "" {
		writeJSON(w, reply{Success: false, Error: "email and newName required"})
		return
	}
	h.store.Rename(email, newName)
	writeJSON(w, reply{Success: true})
}

func (h *Handler) forceAdvance(w http.ResponseWriter, r *http.Request) {
	target, err := strconv.Atoi(r.PostFormValue("targetQuestionIndex"))
	if err != nil || target < 0 {
		writeJSON(w, reply{Success: false, Error: "bad targetQuestionIndex"})
		return
	}
	if err := h.store.SetForcedTarget(r.PostFormValue("sessionId"), target); err != nil {
		writeJSON(w, reply{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, reply{Success: true})
}

func writeJSON(w http.ResponseWriter, body reply) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("stub backend: write response: %v", err)
	}
}
