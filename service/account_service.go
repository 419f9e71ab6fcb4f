// file: service/account_service.go

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"securebank/common"
	"securebank/logger"
	"securebank/model"
	"securebank/repository"
)

var (
	// ErrAccountNotFound covers both an unknown account number and a wrong
	// PIN. The two cases are deliberately indistinguishable so a caller
	// cannot probe which credential was wrong.
	ErrAccountNotFound = errors.New("invalid account details")

	// ErrInvalidAmount covers non-positive amounts and withdrawals
	// exceeding the balance.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDeletionCancelled is returned when a delete request arrives
	// without the explicit confirmation flag. Nothing is changed.
	ErrDeletionCancelled = errors.New("deletion cancelled")

	// ErrNumberSpaceExhausted is returned when the generator cannot find an
	// unused account number within the attempt cap.
	ErrNumberSpaceExhausted = errors.New("could not generate a unique account number")
)

const (
	accountNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	accountNumberLength   = 8
	maxNumberAttempts     = 1000

	recentTransactionCount = 5
)

// AccountService owns the live account set and every operation over it.
// The full set is loaded once and persisted through the repository after
// each successful mutation. A mutation is only committed to the in-memory
// set once the repository accepted it; a failed persist leaves the set
// exactly as it was.
type AccountService struct {
	repo     repository.IAccountRepository
	rand     io.Reader
	accounts []*model.Account
}

func NewAccountService(repo repository.IAccountRepository) *AccountService {
	return &AccountService{repo: repo, rand: rand.Reader}
}

// Load populates the in-memory set from the repository. When the backing
// file was corrupt the service starts empty and the wrapped
// repository.ErrCorruptStore is passed through so the caller can warn.
func (s *AccountService) Load() error {
	accounts, err := s.repo.Load()
	s.accounts = accounts
	return err
}

// HashPIN returns the hex SHA-256 digest of the PIN's digit string.
// Deterministic on purpose: the digest is the stored credential and the
// comparison key at lookup time.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// CreateAccount validates the request, allocates a fresh account number and
// inserts the account with zero balance and an empty ledger. Returns the
// new account number.
func (s *AccountService) CreateAccount(req model.CreateAccountRequest) (string, error) {
	if err := common.Validate(req); err != nil {
		return "", err
	}

	number, err := s.generateAccountNumber()
	if err != nil {
		return "", err
	}

	account := &model.Account{
		Name:          req.Name,
		Age:           req.Age,
		Email:         req.Email,
		PINHash:       HashPIN(req.PIN),
		AccountNumber: number,
		Balance:       decimal.Zero,
		Transactions:  []model.Transaction{},
	}

	next := append(s.accounts, account)
	if err := s.repo.Save(next); err != nil {
		return "", fmt.Errorf("could not persist new account: %w", err)
	}
	s.accounts = next

	logger.Log.WithFields(logrus.Fields{
		"account_no": number,
		"name":       req.Name,
	}).Info("Account created")
	return number, nil
}

// Deposit adds amount to the balance and appends a deposit entry to the
// ledger. The amount must be positive.
func (s *AccountService) Deposit(accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}

	account, err := s.findAccount(accountNumber, pin)
	if err != nil {
		return decimal.Zero, err
	}

	prevBalance := account.Balance
	prevLedgerLen := len(account.Transactions)

	account.Balance = account.Balance.Add(amount)
	account.Transactions = append(account.Transactions, model.Transaction{
		ID:     uuid.NewString(),
		Type:   model.TransactionDeposit,
		Amount: amount,
		Date:   time.Now(),
	})

	if err := s.repo.Save(s.accounts); err != nil {
		account.Balance = prevBalance
		account.Transactions = account.Transactions[:prevLedgerLen]
		return decimal.Zero, fmt.Errorf("could not persist deposit: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"account_no": accountNumber,
		"amount":     amount.String(),
	}).Info("Deposit completed")
	return account.Balance, nil
}

// Withdraw subtracts amount from the balance and appends a withdraw entry.
// Non-positive amounts and amounts exceeding the balance are both rejected
// with ErrInvalidAmount, leaving the balance non-negative.
func (s *AccountService) Withdraw(accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	account, err := s.findAccount(accountNumber, pin)
	if err != nil {
		return decimal.Zero, err
	}

	if amount.Sign() <= 0 || amount.GreaterThan(account.Balance) {
		return decimal.Zero, ErrInvalidAmount
	}

	prevBalance := account.Balance
	prevLedgerLen := len(account.Transactions)

	account.Balance = account.Balance.Sub(amount)
	account.Transactions = append(account.Transactions, model.Transaction{
		ID:     uuid.NewString(),
		Type:   model.TransactionWithdraw,
		Amount: amount,
		Date:   time.Now(),
	})

	if err := s.repo.Save(s.accounts); err != nil {
		account.Balance = prevBalance
		account.Transactions = account.Transactions[:prevLedgerLen]
		return decimal.Zero, fmt.Errorf("could not persist withdrawal: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"account_no": accountNumber,
		"amount":     amount.String(),
	}).Info("Withdrawal completed")
	return account.Balance, nil
}

// AccountDetails returns the account fields and the most recent
// transactions in chronological order. Read-only; the returned slice is a
// copy of the ledger tail.
func (s *AccountService) AccountDetails(accountNumber, pin string) (*model.AccountDetails, error) {
	account, err := s.findAccount(accountNumber, pin)
	if err != nil {
		return nil, err
	}

	start := len(account.Transactions) - recentTransactionCount
	if start < 0 {
		start = 0
	}
	recent := make([]model.Transaction, len(account.Transactions)-start)
	copy(recent, account.Transactions[start:])

	return &model.AccountDetails{
		Name:    account.Name,
		Age:     account.Age,
		Email:   account.Email,
		Balance: account.Balance,
		Recent:  recent,
	}, nil
}

// DeleteAccount removes the account from the set. The confirmed flag must
// come from an explicit user confirmation; without it nothing changes.
// Deletion is irreversible.
func (s *AccountService) DeleteAccount(accountNumber, pin string, confirmed bool) error {
	account, err := s.findAccount(accountNumber, pin)
	if err != nil {
		return err
	}

	if !confirmed {
		return ErrDeletionCancelled
	}

	next := make([]*model.Account, 0, len(s.accounts)-1)
	for _, a := range s.accounts {
		if a != account {
			next = append(next, a)
		}
	}

	if err := s.repo.Save(next); err != nil {
		return fmt.Errorf("could not persist account deletion: %w", err)
	}
	s.accounts = next

	logger.Log.WithField("account_no", accountNumber).Info("Account deleted")
	return nil
}

// findAccount scans the set for a record matching both the account number
// and the PIN digest. A miss reports the generic ErrAccountNotFound.
func (s *AccountService) findAccount(accountNumber, pin string) (*model.Account, error) {
	hash := HashPIN(pin)
	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber && account.PINHash == hash {
			return account, nil
		}
	}
	return nil, ErrAccountNotFound
}

// generateAccountNumber samples 8-character strings over {A-Z,0-9} until
// one does not collide with the live set. The attempt cap turns the
// astronomically unlikely exhaustion case into an error instead of a spin.
func (s *AccountService) generateAccountNumber() (string, error) {
	// Bytes at or above this bound are redrawn so every character of the
	// alphabet is picked with equal probability.
	const unbiasedLimit = 256 - 256%len(accountNumberAlphabet)

	buf := make([]byte, 1)
	number := make([]byte, accountNumberLength)

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		for i := 0; i < accountNumberLength; {
			if _, err := io.ReadFull(s.rand, buf); err != nil {
				return "", fmt.Errorf("could not read random bytes: %w", err)
			}
			if int(buf[0]) >= unbiasedLimit {
				continue
			}
			number[i] = accountNumberAlphabet[int(buf[0])%len(accountNumberAlphabet)]
			i++
		}
		candidate := string(number)
		if !s.numberInUse(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNumberSpaceExhausted
}

func (s *AccountService) numberInUse(accountNumber string) bool {
	for _, account := range s.accounts {
		if account.AccountNumber == accountNumber {
			return true
		}
	}
	return false
}
