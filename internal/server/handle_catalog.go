package server

import (
	"net/http"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/simfs"
)

func handleListObjectives() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, oshack.Objectives)
	}
}

func handleListPsychoGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, oshack.PsychoGames)
	}
}

func handleFileTree() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, simfs.Tree)
	}
}
