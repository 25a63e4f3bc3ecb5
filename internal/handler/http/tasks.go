package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tasksync-dev/tasksync/internal/app"
	"github.com/tasksync-dev/tasksync/internal/logger"
	"github.com/tasksync-dev/tasksync/internal/utils"
	"github.com/tasksync-dev/tasksync/models"
)

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tasks := h.directory.List()

	if _, err := utils.WriteJSON(w, tasks, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.listTasks").Msg("error encoding tasks snapshot")
	}
}

func (h *Handler) putTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, app.MsgNoTaskIDProvided, http.StatusBadRequest)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Err(err).Str("func", "*Handler.putTask").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	// The path segment owns the identity; a body id is only accepted when it
	// agrees with it.
	if task.ID == "" {
		task.ID = id
	}
	if task.ID != id {
		http.Error(w, app.MsgTaskIDMismatch, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(task.Title) == "" {
		http.Error(w, app.MsgEmptyTaskTitle, http.StatusBadRequest)
		return
	}

	h.directory.Put(task)
	h.hub.Broadcast(h.directory.List())

	if _, err := utils.WriteJSON(w, task, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.putTask").Msg("error encoding stored task")
	}
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, app.MsgNoTaskIDProvided, http.StatusBadRequest)
		return
	}

	if !h.directory.Delete(id) {
		log.Warn().Str("func", "*Handler.deleteTask").Str("task_id", id).Msg("task not found")
		http.Error(w, app.MsgTaskNotFound, http.StatusNotFound)
		return
	}

	h.hub.Broadcast(h.directory.List())

	w.WriteHeader(http.StatusOK)
}
