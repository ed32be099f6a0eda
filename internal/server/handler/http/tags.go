package http

import (
	"encoding/json"
	"net/http"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/models"
)

// TagsHandler converts between the "a; b; c" text form and tag lists.
type TagsHandler struct{}

type tagsText struct {
	Text string `json:"text"`
}

type tagsList struct {
	Tags []models.Tag `json:"tags"`
}

// Parse handles POST /api/tags/parse.
func (TagsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req tagsText
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tagsList{Tags: accounts.ParseTags(req.Text)})
}

// Format handles POST /api/tags/format.
func (TagsHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req tagsList
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, tagsText{Text: accounts.FormatTags(req.Tags)})
}
