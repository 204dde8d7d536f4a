package api

import (
	"strconv"

	"bingohall/domain/services"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Name       string `json:"name"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Language *string `json:"language"`
}

func parseTelegramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid telegram_id")
		return 0, false
	}
	return id, true
}

func (s *Server) registerUser(c *gin.Context) {
	var req registerRequest
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

	svc := services.NewAccountService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	account, err := svc.Register(ctx, req.TelegramID, req.Username, req.Phone, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, account)
}

func (s *Server) getUser(c *gin.Context) {
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
	respondOK(c, account)
}

func (s *Server) updateUser(c *gin.Context) {
	telegramID, ok := parseTelegramID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
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

	svc := services.NewAccountService(uow.AccountRepository(), uow.TransactionRepository(), uow.EventBus())
	account, err := svc.UpdateProfile(ctx, telegramID, req.Name, req.Phone, req.Language)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := uow.Commit(); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, account)
}

func (s *Server) getReferral(c *gin.Context) {
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
	respondOK(c, gin.H{"referral_code": account.ReferralCode})
}
