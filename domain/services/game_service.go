package services

import (
	"context"
	"fmt"

	"bingohall/domain/entities"
	"bingohall/domain/interfaces"
	"bingohall/events"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type gameService struct {
	accountRepo      interfaces.AccountRepository
	sessionRepo      interfaces.GameSessionRepository
	cardRepo         interfaces.CardRepository
	calledNumberRepo interfaces.CalledNumberRepository
	transactionRepo  interfaces.TransactionRepository
	eventPublisher   interfaces.EventPublisher

	generator *CardGenerator
	sequencer *DrawSequencer
	evaluator *WinEvaluator
}

// NewGameService creates a game service operating through the given
// repositories. All operations expect to run inside one unit of work; the
// caller owns commit and rollback.
func NewGameService(
	accountRepo interfaces.AccountRepository,
	sessionRepo interfaces.GameSessionRepository,
	cardRepo interfaces.CardRepository,
	calledNumberRepo interfaces.CalledNumberRepository,
	transactionRepo interfaces.TransactionRepository,
	eventPublisher interfaces.EventPublisher,
	src interfaces.NumberSource,
) interfaces.GameService {
	return &gameService{
		accountRepo:      accountRepo,
		sessionRepo:      sessionRepo,
		cardRepo:         cardRepo,
		calledNumberRepo: calledNumberRepo,
		transactionRepo:  transactionRepo,
		eventPublisher:   eventPublisher,
		generator:        NewCardGenerator(src),
		sequencer:        NewDrawSequencer(src),
		evaluator:        NewWinEvaluator(),
	}
}

// CreateSession debits the stake from the account and creates the session.
// The account row is locked so concurrent stakes against the same balance
// serialize and only one can spend the last affordable amount.
func (s *gameService) CreateSession(ctx context.Context, telegramID int64, stake decimal.Decimal) (*entities.GameSession, error) {
	if !stake.IsPositive() {
		return nil, fmt.Errorf("%w: stake must be positive", entities.ErrInvalidRequest)
	}

	account, err := s.accountRepo.GetByTelegramIDForUpdate(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, telegramID)
	}

	if err := account.ValidateAmount(stake); err != nil {
		return nil, err
	}

	newBalance := account.Balance.Sub(stake)
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit stake: %w", err)
	}

	session := &entities.GameSession{
		AccountID:     account.ID,
		StakeAmount:   stake,
		Status:        entities.GameSessionStatusCreated,
		CalledNumbers: []int{},
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, &entities.Transaction{
		AccountID:     account.ID,
		Type:          entities.TransactionTypeStake,
		Amount:        stake,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
	}); err != nil {
		return nil, err
	}

	return session, nil
}

// SelectCards generates numCards cards for a created session and moves it
// to playing. Re-selection on a playing or finished session is rejected.
func (s *gameService) SelectCards(ctx context.Context, sessionID int64, numCards int) ([]*entities.Card, error) {
	if numCards < 1 || numCards > 2 {
		return nil, fmt.Errorf("%w: select 1 or 2 cards, got %d", entities.ErrInvalidRequest, numCards)
	}

	session, err := s.sessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", entities.ErrNotFound, sessionID)
	}
	if !session.CanSelectCards() {
		return nil, fmt.Errorf("%w: cards already selected for session %d", entities.ErrGameNotActive, sessionID)
	}

	cards := make([]*entities.Card, 0, numCards)
	for slot := 1; slot <= numCards; slot++ {
		card, err := s.generator.Generate(slot)
		if err != nil {
			return nil, fmt.Errorf("failed to generate card: %w", err)
		}
		card.GameSessionID = session.ID
		if err := s.cardRepo.Create(ctx, card); err != nil {
			return nil, fmt.Errorf("failed to store card: %w", err)
		}
		cards = append(cards, card)
	}

	session.Status = entities.GameSessionStatusPlaying
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return cards, nil
}

// DrawNumber calls the next number for a playing session. The session row
// lock serializes concurrent draws so the history never gains a duplicate.
func (s *gameService) DrawNumber(ctx context.Context, sessionID int64) (*entities.DrawResult, error) {
	session, err := s.sessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", entities.ErrNotFound, sessionID)
	}
	if !session.CanDraw() {
		return nil, fmt.Errorf("%w: session %d is %s", entities.ErrGameNotActive, sessionID, session.Status)
	}

	number, err := s.sequencer.Next(session.CalledNumbers)
	if err != nil {
		return nil, err
	}

	session.AddCalledNumber(number)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if err := s.calledNumberRepo.Append(ctx, session.ID, number); err != nil {
		return nil, fmt.Errorf("failed to log called number: %w", err)
	}

	return &entities.DrawResult{
		Number:        number,
		CalledNumbers: session.CalledNumbers,
		Remaining:     session.RemainingNumbers(),
	}, nil
}

// MarkNumber marks a number on a card. Marking an already-marked number is
// a no-op; a number absent from the card is rejected since the caller is
// desynchronized from the layout it was dealt.
func (s *gameService) MarkNumber(ctx context.Context, cardID int64, number int) ([]int, error) {
	if number < 1 || number > entities.NumberUniverseSize {
		return nil, fmt.Errorf("%w: number must be in 1-75, got %d", entities.ErrInvalidRequest, number)
	}

	card, err := s.cardRepo.GetByIDForUpdate(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card %d", entities.ErrNotFound, cardID)
	}

	changed, err := card.Mark(number)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, number)
	}
	if changed {
		if err := s.cardRepo.Update(ctx, card); err != nil {
			return nil, fmt.Errorf("failed to update card: %w", err)
		}
	}

	return card.Marked, nil
}

// CheckBingo evaluates a card against the full-card rule and, on a win,
// settles the session: payout credit, winner flag, terminal transition and
// end timestamp in one transaction. The session lock makes settlement
// exactly-once; a racing second check observes the terminal state.
func (s *gameService) CheckBingo(ctx context.Context, sessionID, cardID int64) (*entities.BingoResult, error) {
	session, err := s.sessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", entities.ErrNotFound, sessionID)
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("%w: session %d is %s", entities.ErrAlreadySettled, sessionID, session.Status)
	}
	if session.Status != entities.GameSessionStatusPlaying {
		return nil, fmt.Errorf("%w: session %d is %s", entities.ErrGameNotActive, sessionID, session.Status)
	}

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card %d", entities.ErrNotFound, cardID)
	}
	if card.GameSessionID != session.ID {
		return nil, fmt.Errorf("%w: card %d does not belong to session %d", entities.ErrInvalidRequest, cardID, sessionID)
	}

	if !s.evaluator.IsBingo(card.Numbers, card.Marked) {
		return &entities.BingoResult{IsBingo: false, Session: session}, nil
	}

	account, err := s.accountRepo.GetByIDForUpdate(ctx, session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", entities.ErrNotFound, session.AccountID)
	}

	winnings := session.Payout()
	newBalance := account.CalculateNewBalance(winnings)
	if err := s.accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to credit winnings: %w", err)
	}

	card.IsWinner = true
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to flag winning card: %w", err)
	}

	session.Settle(account.ID)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to settle session: %w", err)
	}

	if err := recordBalanceChange(ctx, s.transactionRepo, s.eventPublisher, &entities.Transaction{
		AccountID:     account.ID,
		Type:          entities.TransactionTypePayout,
		Amount:        winnings,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
	}); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.GameSettledEvent{
		SessionID:       session.ID,
		WinnerAccountID: account.ID,
		WinningCardID:   card.ID,
		Winnings:        winnings,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish settlement event: %w", err)
	}

	log.WithFields(log.Fields{
		"sessionID": session.ID,
		"cardID":    card.ID,
		"winnings":  winnings.String(),
	}).Info("Session settled")

	return &entities.BingoResult{
		IsBingo:    true,
		Winnings:   winnings,
		NewBalance: newBalance,
		Session:    session,
	}, nil
}

// GetSession returns a session with its cards
func (s *gameService) GetSession(ctx context.Context, sessionID int64) (*entities.GameSessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", entities.ErrNotFound, sessionID)
	}

	cards, err := s.cardRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}

	return &entities.GameSessionDetail{Session: session, Cards: cards}, nil
}

// AbandonSession moves a non-terminal session to abandoned. The stake is
// not refunded; the session simply concludes without a winner.
func (s *gameService) AbandonSession(ctx context.Context, sessionID int64) (*entities.GameSession, error) {
	session, err := s.sessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", entities.ErrNotFound, sessionID)
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("%w: session %d is %s", entities.ErrAlreadySettled, sessionID, session.Status)
	}

	session.Abandon()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}
