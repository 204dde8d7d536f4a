package api

import (
	"strconv"

	"bingohall/application"
	"bingohall/domain/interfaces"
	"bingohall/domain/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createGameRequest struct {
	TelegramID int64           `json:"telegram_id" binding:"required"`
	Stake      decimal.Decimal `json:"stake" binding:"required"`
}

type selectCardsRequest struct {
	NumCards int `json:"num_cards" binding:"required"`
}

type markNumberRequest struct {
	Number int `json:"number" binding:"required"`
}

type checkBingoRequest struct {
	CardID int64 `json:"card_id" binding:"required"`
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) gameService(uow application.UnitOfWork) interfaces.GameService {
	return services.NewGameService(
		uow.AccountRepository(),
		uow.GameSessionRepository(),
		uow.CardRepository(),
		uow.CalledNumberRepository(),
		uow.TransactionRepository(),
		uow.EventBus(),
		s.numbers,
	)
}

func (s *Server) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	session, err := s.gameService(uow).CreateSession(ctx, req.TelegramID, req.Stake)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, session)
}

func (s *Server) getGame(c *gin.Context) {
	sessionID, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	detail, err := s.gameService(uow).GetSession(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, detail)
}

func (s *Server) selectCards(c *gin.Context) {
	sessionID, ok := parseID(c)
	if !ok {
		return
	}

	var req selectCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	cards, err := s.gameService(uow).SelectCards(ctx, sessionID, req.NumCards)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, cards)
}

func (s *Server) callNumber(c *gin.Context) {
	sessionID, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	result, err := s.gameService(uow).DrawNumber(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (s *Server) markNumber(c *gin.Context) {
	cardID, ok := parseID(c)
	if !ok {
		return
	}

	var req markNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	marked, err := s.gameService(uow).MarkNumber(ctx, cardID, req.Number)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"card_id": cardID, "marked_numbers": marked})
}

func (s *Server) checkBingo(c *gin.Context) {
	sessionID, ok := parseID(c)
	if !ok {
		return
	}

	var req checkBingoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	result, err := s.gameService(uow).CheckBingo(ctx, sessionID, req.CardID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (s *Server) abandonGame(c *gin.Context) {
	sessionID, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	session, err := s.gameService(uow).AbandonSession(ctx, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, session)
}
