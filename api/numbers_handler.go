package api

import (
	"net/http"

	"lotto/domain/entities"
	"lotto/events"
	"lotto/infrastructure/observability"

	"github.com/gin-gonic/gin"
)

// GenerateRequest carries the numbers the user fixed in advance
type GenerateRequest struct {
	UserNumbers []int `json:"user_numbers"`
}

// GenerateResponse holds one generated game
type GenerateResponse struct {
	Numbers     []int                     `json:"numbers"`
	UserNumbers []int                     `json:"user_numbers"`
	Scores      []entities.CandidateScore `json:"scores,omitempty"`
}

// GameSetResponse holds a generated 5-game set
type GameSetResponse struct {
	Games       []entities.Game `json:"games"`
	UserNumbers []int           `json:"user_numbers"`
}

// bindGenerateRequest accepts an empty body as "no user numbers"
func bindGenerateRequest(c *gin.Context) (GenerateRequest, bool) {
	var req GenerateRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid input. Expected {\"user_numbers\": [...]}.")
		return req, false
	}
	return req, true
}

// GenerateRandom completes the user numbers to one random game
func (s *Server) GenerateRandom(c *gin.Context) {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	numbers, err := s.deps.Generator.GenerateRandom(req.UserNumbers)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeRandom, Games: 1})

	c.JSON(http.StatusOK, GenerateResponse{Numbers: numbers, UserNumbers: entities.SortedCopy(req.UserNumbers)})
}

// GenerateGameSet builds five games around the user numbers
func (s *Server) GenerateGameSet(c *gin.Context) {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	games, err := s.deps.Generator.GenerateGameSet(req.UserNumbers)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeSet, Games: len(games)})

	c.JSON(http.StatusOK, GameSetResponse{Games: games, UserNumbers: entities.SortedCopy(req.UserNumbers)})
}

// GenerateSmart completes the user numbers from the stored history.
// ?explain=true adds the candidate scores to the response.
func (s *Server) GenerateSmart(c *gin.Context) {
	req, ok := bindGenerateRequest(c)
	if !ok {
		return
	}

	history, err := s.deps.History.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	numbers, scores, err := s.deps.Generator.GenerateSmartExplained(history, req.UserNumbers)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	s.publish(events.NumbersDrawnEvent{Mode: observability.ModeSmart, Games: 1})

	resp := GenerateResponse{Numbers: numbers, UserNumbers: entities.SortedCopy(req.UserNumbers)}
	if c.Query("explain") == "true" {
		resp.Scores = scores
	}
	c.JSON(http.StatusOK, resp)
}
