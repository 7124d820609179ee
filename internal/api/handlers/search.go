package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"mood-dining-service/internal/api/dto"
	"mood-dining-service/internal/domain"
	"mood-dining-service/internal/geo"
	"mood-dining-service/internal/ports"
	"mood-dining-service/internal/services"
)

// Defaults applied when the request omits optional fields.
const (
	defaultRadiusMeters = 1000
	defaultStationCount = 2
)

// SearchHandler exposes the mood-based restaurant search endpoint.
type SearchHandler struct {
	Search *services.SearchService
	Mood   ports.MoodConverter
}

// Post handles POST /search: converts the mood text to tags and runs the
// selected search mode. Mood conversion failing is not fatal; the search
// proceeds with an empty tag list.
func (h *SearchHandler) Post(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	ctx := r.Context()

	var tags []string
	if strings.TrimSpace(req.Mood) != "" {
		query, err := h.Mood.Convert(ctx, req.Mood)
		if err != nil {
			log.Printf("search: mood conversion failed, continuing without tags err=%v", err)
		} else {
			tags = query.Tags
		}
	}

	searchReq := domain.SearchRequest{
		Mode:         domain.SearchMode(req.Mode),
		Origin:       domain.Coordinate{Lat: req.Lat, Lng: req.Lng},
		QueryTags:    tags,
		RadiusMeters: req.RadiusMeters,
		StationCount: req.StationCount,
	}
	if searchReq.Mode == "" {
		searchReq.Mode = domain.ModeRadius
	}
	if searchReq.Mode == domain.ModeRadius && searchReq.RadiusMeters == 0 {
		searchReq.RadiusMeters = defaultRadiusMeters
	}
	if searchReq.Mode == domain.ModeStationRange && searchReq.StationCount == 0 {
		searchReq.StationCount = defaultStationCount
	}

	hits, err := h.Search.Run(ctx, searchReq)
	if err != nil {
		writeSearchError(w, r, err)
		return
	}

	res := dto.SearchResponse{
		Tags:    tags,
		Results: make([]dto.RestaurantResponse, 0, len(hits)),
	}
	for _, hit := range hits {
		out := dto.RestaurantResponse{
			ID:            hit.ID,
			Name:          hit.Name,
			Rating:        hit.Rating,
			PriceTier:     hit.PriceTier,
			Categories:    hit.Categories,
			Address:       hit.Address,
			PhotoRefs:     hit.PhotoRefs,
			OriginStation: hit.OriginStationName,
			MapURL:        hit.MapURL,
		}
		if hit.DistanceFromUser != domain.DistanceUnknown {
			out.DistanceM = hit.DistanceFromUser
			out.DistanceText = geo.FormatDistance(hit.DistanceFromUser)
		}
		res.Results = append(res.Results, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// writeSearchError maps the domain error taxonomy onto HTTP statuses.
func writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoStationFound):
		writeJSON(w, r, http.StatusNotFound, map[string]string{
			"error": "no transit station found near you",
			"hint":  "try radius mode instead",
		})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, r, http.StatusBadGateway, "upstream search services are unavailable, try again shortly")
	default:
		log.Printf("search failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
