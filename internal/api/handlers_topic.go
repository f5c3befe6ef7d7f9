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

// TopicHandler is a thin HTTP transport over TopicService.
type TopicHandler struct {
	svc *services.TopicService
}

func NewTopicHandler(svc *services.TopicService) *TopicHandler { return &TopicHandler{svc: svc} }

// AddMaterial POST /api/users/{externalId}/topics/{topicLocator}/materials
//
// The locator segment carries either a topic id or a topic name; the two
// resolve differently (an unknown name creates the topic, an unknown id is a
// 404). Responds with the full updated topic sequence.
func (h *TopicHandler) AddMaterial(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in model.MaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	loc := model.ParseTopicLocator(vars["topicLocator"])
	topics, err := h.svc.AddMaterial(r.Context(), vars["externalId"], loc, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, topics)
}

// AddTopic POST /api/users/{externalId}/topics
func (h *TopicHandler) AddTopic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	topics, err := h.svc.AddTopic(r.Context(), vars["externalId"], in.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, topics)
}

// RenameTopic PUT /api/users/{externalId}/topics/{topicId}
func (h *TopicHandler) RenameTopic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	topics, err := h.svc.RenameTopic(r.Context(), vars["externalId"], vars["topicId"], in.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, topics)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteError(w, http.StatusConflict, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
