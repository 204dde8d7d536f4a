package repository

import (
	"context"
	"fmt"

	"bingohall/database"
	"bingohall/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `
	id, telegram_id, username, phone, COALESCE(name, ''), language,
	balance, bonus_balance, COALESCE(referral_code, ''), created_at, updated_at
`

// AccountRepository implements account data access over postgres
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository on the pool
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// newAccountRepository creates a new account repository inside a transaction
func newAccountRepository(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

func (r *AccountRepository) scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.ID,
		&account.TelegramID,
		&account.Username,
		&account.Phone,
		&account.Name,
		&account.Language,
		&account.Balance,
		&account.BonusBalance,
		&account.ReferralCode,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an account by its primary key
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := r.scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

// GetByIDForUpdate retrieves an account by primary key with a row lock
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	account, err := r.scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", id, err)
	}
	return account, nil
}

// GetByTelegramID retrieves an account by its Telegram identity
func (r *AccountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1`

	account, err := r.scanAccount(r.q.QueryRow(ctx, query, telegramID))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by telegram id %d: %w", telegramID, err)
	}
	return account, nil
}

// GetByTelegramIDForUpdate retrieves an account with a row lock so a
// read-then-write of the balance serializes against concurrent stakes
func (r *AccountRepository) GetByTelegramIDForUpdate(ctx context.Context, telegramID int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1 FOR UPDATE`

	account, err := r.scanAccount(r.q.QueryRow(ctx, query, telegramID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock account by telegram id %d: %w", telegramID, err)
	}
	return account, nil
}

// GetByPhone retrieves an account by phone number
func (r *AccountRepository) GetByPhone(ctx context.Context, phone string) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1`

	account, err := r.scanAccount(r.q.QueryRow(ctx, query, phone))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by phone %s: %w", phone, err)
	}
	return account, nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	query := `
		INSERT INTO accounts (telegram_id, username, phone, name, language, balance, bonus_balance, referral_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		account.TelegramID,
		account.Username,
		account.Phone,
		account.Name,
		account.Language,
		account.Balance,
		account.BonusBalance,
		account.ReferralCode,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create account for telegram id %d: %w", account.TelegramID, err)
	}

	return nil
}

// UpdateBalance updates an account's balance atomically
func (r *AccountRepository) UpdateBalance(ctx context.Context, id int64, newBalance decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, newBalance, id)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", id)
	}

	return nil
}

// UpdateProfile updates name, phone and language
func (r *AccountRepository) UpdateProfile(ctx context.Context, account *entities.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, phone = $2, language = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.q.Exec(ctx, query, account.Name, account.Phone, account.Language, account.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile for account %d: %w", account.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", account.ID)
	}

	return nil
}

// GetTopByBalance returns accounts ordered by balance descending
func (r *AccountRepository) GetTopByBalance(ctx context.Context, limit int) ([]*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY balance DESC, created_at ASC LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entities.Account
	for rows.Next() {
		var account entities.Account
		err := rows.Scan(
			&account.ID,
			&account.TelegramID,
			&account.Username,
			&account.Phone,
			&account.Name,
			&account.Language,
			&account.Balance,
			&account.BonusBalance,
			&account.ReferralCode,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}
