package api

import (
	"strconv"

	"bingohall/domain/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type depositRequest struct {
	TelegramID int64           `json:"telegram_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method"`
}

type withdrawRequest struct {
	TelegramID int64           `json:"telegram_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method"`
}

type transferRequest struct {
	TelegramID int64           `json:"telegram_id" binding:"required"`
	ToPhone    string          `json:"to_phone" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

func (s *Server) getBalance(c *gin.Context) {
	telegramID, ok := parseTelegramID(c)
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

	svc := services.NewAccountService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	account, err := svc.GetByTelegramID(ctx, telegramID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"telegram_id":   account.TelegramID,
		"balance":       account.Balance,
		"bonus_balance": account.BonusBalance,
	})
}

func (s *Server) deposit(c *gin.Context) {
	var req depositRequest
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

	svc := services.NewWalletService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	transaction, err := svc.Deposit(ctx, req.TelegramID, req.Amount, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, transaction)
}

func (s *Server) withdraw(c *gin.Context) {
	var req withdrawRequest
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

	svc := services.NewWalletService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	transaction, err := svc.Withdraw(ctx, req.TelegramID, req.Amount, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, transaction)
}

func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
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

	svc := services.NewWalletService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	if err := svc.Transfer(ctx, req.TelegramID, req.ToPhone, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"transferred": true})
}

func (s *Server) walletHistory(c *gin.Context) {
	telegramID, ok := parseTelegramID(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}
	gameOnly := c.Query("game") == "true"

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	svc := services.NewWalletService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	transactions, err := svc.History(ctx, telegramID, limit, gameOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, transactions)
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = parsed
	}

	ctx := c.Request.Context()
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		respondError(c, err)
		return
	}
	defer uow.Rollback()

	svc := services.NewWalletService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	accounts, err := svc.Leaderboard(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, accounts)
}
