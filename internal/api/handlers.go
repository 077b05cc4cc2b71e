// Package api exposes HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/elorback/boilerplate-project-exercisetracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{id}/exercises", h.addExercise).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{id}/logs", h.getLogs).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")

	user, err := h.service.CreateUser(r.Context(), username)
	if err != nil {
		log.Printf("create user: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	writeJSON(w, http.StatusOK, toUserView(*user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list users")
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	// Duration and date are coerced, never rejected: a non-numeric duration
	// stores as 0 and an unparseable date falls back to the current moment.
	duration, _ := strconv.Atoi(r.FormValue("duration"))

	var date time.Time
	if raw := r.FormValue("date"); raw != "" {
		if parsed, err := domain.ParseDate(raw); err == nil {
			date = parsed
		}
	}

	result, err := h.service.AddExercise(r.Context(), domain.AddExerciseInput{
		UserID:      userID,
		Description: r.FormValue("description"),
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("add exercise: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save exercise")
		return
	}

	writeJSON(w, http.StatusOK, ExerciseResponse{
		ID:          result.User.ID,
		Username:    result.User.Username,
		Description: result.Exercise.Description,
		Duration:    result.Exercise.Duration,
		Date:        domain.FormatDate(result.Exercise.Date),
	})
}

func (h *Handler) getLogs(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var query domain.LogQuery
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := domain.ParseDate(raw); err == nil {
			query.From = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := domain.ParseDate(raw); err == nil {
			query.To = parsed
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			query.Limit = parsed
		}
	}

	userLog, err := h.service.GetLogs(r.Context(), userID, query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLogNotFound):
			writeError(w, http.StatusNotFound, "no logs found for this user")
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			log.Printf("get logs: %v", err)
			writeError(w, http.StatusInternalServerError, "could not retrieve logs")
		}
		return
	}

	entries := make([]LogEntryView, 0, len(userLog.Entries))
	for _, entry := range userLog.Entries {
		entries = append(entries, LogEntryView{
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		})
	}

	writeJSON(w, http.StatusOK, LogsResponse{
		ID:       userLog.User.ID,
		Username: userLog.User.Username,
		Count:    userLog.Count,
		Log:      entries,
	})
}

// UserView exposes a stored user.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ExerciseResponse describes the response body for an exercise append. ID is
// the owning user's id and Date is the rendered display string.
type ExerciseResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryView is one line of a log response.
type LogEntryView struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogsResponse packages a filtered log. Count is the length of Log, not the
// lifetime append total.
type LogsResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Count    int            `json:"count"`
	Log      []LogEntryView `json:"log"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toUserView(user domain.User) UserView {
	return UserView{ID: user.ID, Username: user.Username}
}
