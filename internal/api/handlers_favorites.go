// MoviePulse - TMDB Discovery and Favorites Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepulse

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepulse/internal/favorites"
	"github.com/tomtom215/moviepulse/internal/logging"
	"github.com/tomtom215/moviepulse/internal/validation"
)

const maxFavoriteBody = 4 << 10

// flexInt decodes a JSON number or a numeric string. The pages send ids
// read from data attributes, which are strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("tmdb_id must be an integer: %s", s)
	}
	*f = flexInt(n)
	return nil
}

// FavoriteRequest is the body of POST and DELETE /favorites.
type FavoriteRequest struct {
	TMDBID    flexInt `json:"tmdb_id" validate:"gt=0" swaggertype:"integer" example:"550"`
	MediaType string  `json:"media_type" validate:"required,oneof=movie tv" example:"movie"`
}

// FavoriteCreatedResponse is returned when a favorite is stored.
type FavoriteCreatedResponse struct {
	Success  bool               `json:"success" example:"true"`
	Favorite favorites.Favorite `json:"favorite"`
}

// MessageResponse carries a user-facing message and, for removals, the outcome.
type MessageResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message" example:"Item removed from favorites."`
}

func (h *Handler) decodeFavorite(w http.ResponseWriter, r *http.Request) (favorites.Favorite, bool) {
	var req FavoriteRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFavoriteBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return favorites.Favorite{}, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return favorites.Favorite{}, false
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Error())
		return favorites.Favorite{}, false
	}
	return favorites.Favorite{
		Username:  h.username,
		TMDBID:    int(req.TMDBID),
		MediaType: req.MediaType,
	}, true
}

// ListFavorites handles GET /favorites.
//
// @Summary List favorites
// @Tags Favorites
// @Produce json
// @Success 200 {array} favorites.Favorite
// @Failure 500 {object} ErrorResponse
// @Router /favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favorites.List(r.Context(), h.username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list favorites")
		respondError(w, http.StatusInternalServerError, "Failed to load favorites")
		return
	}
	if favs == nil {
		favs = []favorites.Favorite{}
	}
	respondJSON(w, http.StatusOK, favs)
}

// AddFavorite handles POST /favorites.
//
// @Summary Add a favorite
// @Description Adding an existing favorite is not an error; the response says so.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param favorite body FavoriteRequest true "Title to save"
// @Success 201 {object} FavoriteCreatedResponse
// @Success 200 {object} MessageResponse "Already saved"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /favorites [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	fav, ok := h.decodeFavorite(w, r)
	if !ok {
		return
	}

	saved, err := h.favorites.Add(r.Context(), fav)
	switch {
	case errors.Is(err, favorites.ErrDuplicate):
		respondJSON(w, http.StatusOK, MessageResponse{Message: "Item already in favorites."})
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Int("tmdb_id", fav.TMDBID).Msg("Failed to add favorite")
		respondError(w, http.StatusInternalServerError, "Failed to save favorite")
	default:
		respondJSON(w, http.StatusCreated, FavoriteCreatedResponse{Success: true, Favorite: saved})
	}
}

// RemoveFavorite handles DELETE /favorites.
//
// @Summary Remove a favorite
// @Tags Favorites
// @Accept json
// @Produce json
// @Param favorite body FavoriteRequest true "Title to remove"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /favorites [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	fav, ok := h.decodeFavorite(w, r)
	if !ok {
		return
	}

	err := h.favorites.Remove(r.Context(), fav)
	switch {
	case errors.Is(err, favorites.ErrNotFound):
		respondJSON(w, http.StatusOK, MessageResponse{Success: boolPtr(false), Message: "Item not found in favorites."})
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Int("tmdb_id", fav.TMDBID).Msg("Failed to remove favorite")
		respondError(w, http.StatusInternalServerError, "Failed to remove favorite")
	default:
		respondJSON(w, http.StatusOK, MessageResponse{Success: boolPtr(true), Message: "Item removed from favorites."})
	}
}

func boolPtr(b bool) *bool { return &b }
