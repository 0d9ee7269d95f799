package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/setlog/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetDate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": s.svc.Store.SelectedDate()})
}

func (s *Server) handleSetDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date is required"})
		return
	}
	s.svc.Store.SetSelectedDate(body.Date)
	writeJSON(w, http.StatusOK, map[string]string{"date": body.Date})
}

func (s *Server) handleLoggedDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.svc.LoggedDates(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	writeJSON(w, http.StatusOK, s.svc.Store.Day(date))
}

func (s *Server) handleDayTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.svc.DayTotals(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleWorkoutTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.svc.WorkoutTotals(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "typeID"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	prog, err := s.svc.Progression(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "typeID"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleExerciseProgression(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}
	prog, err := s.svc.ExerciseProgression(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "typeID"), name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, prog)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	stored := s.svc.Store.AddExercise(chi.URLParam(r, "typeID"), ex)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	ex.ID = chi.URLParam(r, "exerciseID")
	s.svc.Store.UpdateExercise(chi.URLParam(r, "typeID"), ex)
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	s.svc.Store.RemoveExercise(chi.URLParam(r, "typeID"), chi.URLParam(r, "exerciseID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveWorkout(w http.ResponseWriter, r *http.Request) {
	s.svc.Store.RemoveWorkout(chi.URLParam(r, "typeID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetDayTypes(w http.ResponseWriter, r *http.Request) {
	var types []models.WorkoutType
	if err := json.NewDecoder(r.Body).Decode(&types); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.svc.Store.SetWorkoutTypesForDate(chi.URLParam(r, "date"), types)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.svc.WorkoutTypes(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (s *Server) handleAddType(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	t := s.svc.Registry.AddType(body.ID, body.Name, body.Icon, body.Color)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleSetTypeSelected(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Selected bool `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.svc.Registry.SetSelected(chi.URLParam(r, "id"), body.Selected)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveType(w http.ResponseWriter, r *http.Request) {
	s.svc.Registry.RemoveType(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetTypes(w http.ResponseWriter, r *http.Request) {
	s.svc.Registry.ResetTypes()
	writeJSON(w, http.StatusOK, s.svc.Registry.Types())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
