package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studylist/studylist-sync/internal/api/respond"
	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/services"
)

// UserHandler is a thin HTTP transport over UserService.
type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// CreateUser POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email  string        `json:"email"`
		Name   string        `json:"name"`
		UID    string        `json:"firebaseUID"`
		Bio    string        `json:"bio"`
		Topics []model.Topic `json:"topics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if in.UID == "" {
		respond.WriteBadRequest(w, "firebaseUID required")
		return
	}
	u := &model.User{ExternalID: in.UID, Email: in.Email, Name: in.Name, Bio: in.Bio, Topics: in.Topics}
	out, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			// Duplicate creation answers 400, matching the published contract.
			respond.WriteBadRequest(w, "User already exists")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetUser GET /api/users/{externalId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	externalID := mux.Vars(r)["externalId"]
	u, err := h.svc.GetUser(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "User not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile PUT /api/users/{externalId}/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	externalID := mux.Vars(r)["externalId"]
	var in struct {
		Name string `json:"name"`
		Bio  string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), externalID, in.Name, in.Bio)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "User not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
