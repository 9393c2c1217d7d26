package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
	"github.com/jimmy058910/replitballgame-sub002/internal/live"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"config_version": s.cfg.Current().Version,
		"time":           time.Now().UTC(),
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"matches": s.reg.List(),
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	snap, err := s.reg.Snapshot(mux.Vars(r)["id"])
	if err != nil {
		statusFromErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log, err := s.reg.Commentary(id)
	if err != nil {
		statusFromErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"match_id":   id,
		"commentary": log,
	})
}

type startMatchRequest struct {
	HomeTeamID   string         `json:"home_team_id"`
	AwayTeamID   string         `json:"away_team_id"`
	HomeTeamName string         `json:"home_team_name"`
	AwayTeamName string         `json:"away_team_name"`
	Type         game.MatchType `json:"type"`
	StadiumID    string         `json:"stadium_id"`
}

func (s *Server) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.HomeTeamID == "" || req.AwayTeamID == "" {
		writeError(w, http.StatusBadRequest, "home_team_id and away_team_id are required")
		return
	}
	if req.Type == "" {
		req.Type = game.TypeExhibition
	}
	if req.StadiumID == "" {
		req.StadiumID = req.HomeTeamID
	}
	if req.HomeTeamName == "" {
		req.HomeTeamName = req.HomeTeamID
	}
	if req.AwayTeamName == "" {
		req.AwayTeamName = req.AwayTeamID
	}

	m := game.Match{
		ID:           uuid.NewString(),
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		HomeTeamName: req.HomeTeamName,
		AwayTeamName: req.AwayTeamName,
		Type:         req.Type,
		StadiumID:    req.StadiumID,
		StartAnchor:  time.Now(),
	}

	snap, err := s.reg.Start(r.Context(), m)
	if err != nil {
		statusFromErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleForceComplete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.reg.ForceComplete(id); err != nil {
		statusFromErr(w, err)
		return
	}
	snap, err := s.reg.Snapshot(id)
	if err != nil {
		statusFromErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.reg.Resume(id); err != nil {
		statusFromErr(w, err)
		return
	}
	snap, err := s.reg.Snapshot(id)
	if err != nil {
		statusFromErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// statusFromErr maps domain sentinels onto HTTP statuses: unknown match is
// 404, a rejected transition is 409, everything else is a 500.
func statusFromErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, live.ErrUnknownMatch):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, live.ErrInvalidTransition), errors.Is(err, live.ErrAlreadyLive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
