// Package cli is the thin interactive layer over the account service: it
// prompts for the fields each operation needs, parses them, and reports the
// outcome. All business rules live in the service.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"securebank/logger"
	"securebank/model"
	"securebank/service"
)

const menuText = `
1. Create Account
2. Deposit
3. Withdraw
4. Show Details
5. Delete Account
6. Exit
`

type Menu struct {
	in  *bufio.Scanner
	out io.Writer
	svc *service.AccountService
}

func NewMenu(in io.Reader, out io.Writer, svc *service.AccountService) *Menu {
	return &Menu{
		in:  bufio.NewScanner(in),
		out: out,
		svc: svc,
	}
}

// Run drives the numbered menu until the user exits or input ends.
func (m *Menu) Run() {
	for {
		fmt.Fprint(m.out, menuText)
		choice, ok := m.readLine("Select an option: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.createAccount()
		case "2":
			m.deposit()
		case "3":
			m.withdraw()
		case "4":
			m.showDetails()
		case "5":
			m.deleteAccount()
		case "6":
			fmt.Fprintln(m.out, "Thank you for using the system.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid option.")
		}
	}
}

func (m *Menu) createAccount() {
	name, ok := m.readLine("Enter your name: ")
	if !ok {
		return
	}
	age, ok := m.readInt("Enter your age: ")
	if !ok {
		return
	}
	email, ok := m.readLine("Enter your email: ")
	if !ok {
		return
	}
	pin, ok := m.readLine("Enter 4-digit PIN: ")
	if !ok {
		return
	}

	number, err := m.svc.CreateAccount(model.CreateAccountRequest{
		Name:  name,
		Age:   age,
		Email: email,
		PIN:   pin,
	})
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(m.out, "Account creation failed. Age must be 18+ and PIN must be 4 digits.")
		} else {
			logger.Log.WithError(err).Error("Account creation failed")
			fmt.Fprintln(m.out, "Account creation failed.")
		}
		return
	}

	fmt.Fprintln(m.out, "\nAccount created successfully!")
	fmt.Fprintf(m.out, "Your Account Number: %s\n", number)
}

func (m *Menu) deposit() {
	accountNumber, pin, ok := m.readCredentials()
	if !ok {
		return
	}
	amount, ok := m.readAmount("Enter deposit amount: ")
	if !ok {
		return
	}

	_, err := m.svc.Deposit(accountNumber, pin, amount)
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		fmt.Fprintln(m.out, "Amount must be positive.")
	case errors.Is(err, service.ErrAccountNotFound):
		fmt.Fprintln(m.out, "Invalid account details.")
	case err != nil:
		logger.Log.WithError(err).Error("Deposit failed")
		fmt.Fprintln(m.out, "Deposit failed.")
	default:
		fmt.Fprintln(m.out, "Deposit successful.")
	}
}

func (m *Menu) withdraw() {
	accountNumber, pin, ok := m.readCredentials()
	if !ok {
		return
	}
	amount, ok := m.readAmount("Enter withdrawal amount: ")
	if !ok {
		return
	}

	_, err := m.svc.Withdraw(accountNumber, pin, amount)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		fmt.Fprintln(m.out, "Invalid account details.")
	case errors.Is(err, service.ErrInvalidAmount):
		fmt.Fprintln(m.out, "Invalid withdrawal amount.")
	case err != nil:
		logger.Log.WithError(err).Error("Withdrawal failed")
		fmt.Fprintln(m.out, "Withdrawal failed.")
	default:
		fmt.Fprintln(m.out, "Withdrawal successful.")
	}
}

func (m *Menu) showDetails() {
	accountNumber, pin, ok := m.readCredentials()
	if !ok {
		return
	}

	details, err := m.svc.AccountDetails(accountNumber, pin)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid account details.")
		return
	}

	fmt.Fprintln(m.out, "\n--- Account Details ---")
	fmt.Fprintf(m.out, "Name: %s\n", details.Name)
	fmt.Fprintf(m.out, "Age: %d\n", details.Age)
	fmt.Fprintf(m.out, "Email: %s\n", details.Email)
	fmt.Fprintf(m.out, "Balance: %s\n", details.Balance)
	fmt.Fprintln(m.out, "\nRecent Transactions:")

	for _, t := range details.Recent {
		fmt.Fprintf(m.out, "%s | %s | %s\n", t.Type, t.Amount, t.Date.Format(time.RFC3339))
	}
}

func (m *Menu) deleteAccount() {
	accountNumber, pin, ok := m.readCredentials()
	if !ok {
		return
	}
	answer, ok := m.readLine("Are you sure you want to delete this account? (y/n): ")
	if !ok {
		return
	}
	confirmed := strings.EqualFold(answer, "y")

	err := m.svc.DeleteAccount(accountNumber, pin, confirmed)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		fmt.Fprintln(m.out, "Invalid account details.")
	case errors.Is(err, service.ErrDeletionCancelled):
		fmt.Fprintln(m.out, "Deletion cancelled.")
	case err != nil:
		logger.Log.WithError(err).Error("Account deletion failed")
		fmt.Fprintln(m.out, "Account deletion failed.")
	default:
		fmt.Fprintln(m.out, "Account deleted successfully.")
	}
}

func (m *Menu) readCredentials() (accountNumber, pin string, ok bool) {
	accountNumber, ok = m.readLine("Enter account number: ")
	if !ok {
		return "", "", false
	}
	pin, ok = m.readLine("Enter PIN: ")
	if !ok {
		return "", "", false
	}
	return accountNumber, pin, true
}

func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// readInt parses an integer field; malformed input aborts the current
// operation with a message instead of crashing.
func (m *Menu) readInt(prompt string) (int, bool) {
	raw, ok := m.readLine(prompt)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter correct data types.")
		return 0, false
	}
	return value, true
}

func (m *Menu) readAmount(prompt string) (decimal.Decimal, bool) {
	raw, ok := m.readLine(prompt)
	if !ok {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid input. Please enter correct data types.")
		return decimal.Zero, false
	}
	return value, true
}
