package api

import (
	"net/http"
	"strconv"

	"lotto/domain/entities"

	"github.com/gin-gonic/gin"
)

// SaveTicketRequest saves either a single game (numbers) or a set (games)
type SaveTicketRequest struct {
	Round       int     `json:"round" binding:"required"`
	Numbers     []int   `json:"numbers"`
	Games       [][]int `json:"games"`
	UserNumbers []int   `json:"user_numbers"`
}

// OutcomeRequest is the result of one game; ranks accept "5th" as well as "5등"
type OutcomeRequest struct {
	Result string `json:"result" binding:"required"`
	Amount int64  `json:"amount"`
}

// RecordResultRequest completes a single ticket (result) or a set (results by letter)
type RecordResultRequest struct {
	Result  string                    `json:"result"`
	Amount  int64                     `json:"amount"`
	Results map[string]OutcomeRequest `json:"results"`
}

// ListTickets returns the whole history, oldest first
func (s *Server) ListTickets(c *gin.Context) {
	tickets, err := s.deps.History.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets, "count": len(tickets)})
}

// GetTicket returns one ticket
func (s *Server) GetTicket(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}
	ticket, err := s.deps.History.GetTicket(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// SaveTicket appends a single game or a 5-game set to the history
func (s *Server) SaveTicket(c *gin.Context) {
	var req SaveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid input. A positive round is required.")
		return
	}

	var (
		ticket *entities.Ticket
		err    error
	)
	switch {
	case len(req.Games) > 0 && len(req.Numbers) > 0:
		RespondWithError(c, http.StatusBadRequest, "Send either numbers or games, not both.")
		return
	case len(req.Games) > 0:
		games := make([]entities.Game, 0, len(req.Games))
		for i, numbers := range req.Games {
			letter := ""
			if i < len(entities.GameLetters) {
				letter = entities.GameLetters[i]
			}
			games = append(games, entities.Game{Letter: letter, Numbers: numbers, UserNumbers: req.UserNumbers})
		}
		ticket, err = s.deps.History.SaveGameSet(c.Request.Context(), req.Round, games, req.UserNumbers)
	default:
		ticket, err = s.deps.History.SaveSingle(c.Request.Context(), req.Round, req.Numbers, req.UserNumbers)
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// RecordResult enters the draw result of a pending ticket
func (s *Server) RecordResult(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	var req RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid input. Expected a result or per-game results.")
		return
	}

	var (
		ticket *entities.Ticket
		err    error
	)
	if len(req.Results) > 0 {
		results := make(map[string]entities.Outcome, len(req.Results))
		for letter, o := range req.Results {
			outcome, perr := parseOutcome(o.Result, o.Amount)
			if perr != nil {
				respondDomainError(c, perr)
				return
			}
			results[letter] = outcome
		}
		ticket, err = s.deps.History.RecordGameSetResults(c.Request.Context(), id, results)
	} else {
		outcome, perr := parseOutcome(req.Result, req.Amount)
		if perr != nil {
			respondDomainError(c, perr)
			return
		}
		ticket, err = s.deps.History.RecordResult(c.Request.Context(), id, outcome)
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ClearTickets removes the whole history
func (s *Server) ClearTickets(c *gin.Context) {
	removed, err := s.deps.History.Clear(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func parseOutcome(result string, amount int64) (entities.Outcome, error) {
	rank, err := entities.ParseRank(result)
	if err != nil {
		return entities.Outcome{}, err
	}
	return entities.Outcome{Rank: rank, Amount: amount}, nil
}

func ticketIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondWithError(c, http.StatusBadRequest, "Ticket ID must be a positive number.")
		return 0, false
	}
	return id, true
}
