package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/connection-pathfinder/internal/graph"
	"github.com/jonathan/connection-pathfinder/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

var requestValidator = validator.New()

// RecommendationRequest represents the request body for POST /v1/recommendations
type RecommendationRequest struct {
	SourceID string `json:"source_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// SimilarityRequest represents the request body for POST /v1/similarity
type SimilarityRequest struct {
	AID string `json:"a_id" validate:"required"`
	BID string `json:"b_id" validate:"required"`
}

// SimilarityResponse pairs the scored actors with the result
type SimilarityResponse struct {
	AID        string                 `json:"a_id"`
	BID        string                 `json:"b_id"`
	Similarity types.SimilarityResult `json:"similarity"`
}

// ConnectionsResponse lists an actor's direct connections
type ConnectionsResponse struct {
	ActorID     string               `json:"actor_id"`
	Count       int                  `json:"count"`
	Connections []types.ActorProfile `json:"connections"`
}

// handleRecommendation resolves how the source should reach the target
func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	source, err := s.lookupActor(r, req.SourceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	target, err := s.lookupActor(r, req.TargetID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.resolver.FindConnectionRecommendation(ctx, source, target, s.graph)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleSimilarity scores two actors
func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req SimilarityRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	a, err := s.lookupActor(r, req.AID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b, err := s.lookupActor(r, req.BID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SimilarityResponse{
		AID:        a.ID,
		BID:        b.ID,
		Similarity: s.resolver.ComputeSimilarity(a, b),
	})
}

// handleGetActor returns a single actor profile
func (s *Server) handleGetActor(w http.ResponseWriter, r *http.Request) {
	actor, err := s.lookupActor(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, actor)
}

// handleListConnections returns the direct connections of an actor
func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	actor, err := s.lookupActor(r, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	conns, err := s.graph.GetConnections(r.Context(), actor.ID)
	if err != nil {
		s.writeError(w, &graph.UnavailableError{Op: "get_connections", Cause: err})
		return
	}
	if conns == nil {
		conns = []types.ActorProfile{}
	}
	s.jsonResponse(w, http.StatusOK, ConnectionsResponse{
		ActorID:     actor.ID,
		Count:       len(conns),
		Connections: conns,
	})
}

// decodeRequest reads a bounded JSON body into dst and validates it
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := requestValidator.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ErrValidation{Field: fieldErrs[0].Field(), Message: "is " + fieldErrs[0].Tag()}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// lookupActor fetches an actor or returns ErrActorNotFound
func (s *Server) lookupActor(r *http.Request, id string) (*types.ActorProfile, error) {
	if id == "" {
		return nil, &ErrValidation{Field: "id", Message: "is required"}
	}
	actor, err := s.graph.GetNode(r.Context(), id)
	if err != nil {
		return nil, &graph.UnavailableError{Op: "get_node", Cause: err}
	}
	if actor == nil {
		return nil, &ErrActorNotFound{ActorID: id}
	}
	return actor, nil
}

// writeError maps err to a status code and writes it; server errors are logged and masked
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}
