package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"securebank/logger"
	"securebank/model"
	"securebank/repository"
	"securebank/service"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestService(t *testing.T) *service.AccountService {
	t.Helper()
	repo := repository.NewFileAccountRepository(filepath.Join(t.TempDir(), "data.json"))
	svc := service.NewAccountService(repo)
	assert.NoError(t, svc.Load())
	return svc
}

// runMenu feeds the scripted lines to the menu and returns everything it
// printed.
func runMenu(t *testing.T, svc *service.AccountService, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	menu := NewMenu(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, svc)
	menu.Run()
	return out.String()
}

func TestMenu_Exit(t *testing.T) {
	out := runMenu(t, newTestService(t), "6")
	assert.Contains(t, out, "Thank you for using the system.")
}

func TestMenu_InvalidOption(t *testing.T) {
	out := runMenu(t, newTestService(t), "9", "6")
	assert.Contains(t, out, "Invalid option.")
}

func TestMenu_CreateAccount(t *testing.T) {
	svc := newTestService(t)

	out := runMenu(t, svc,
		"1",
		"Alice",
		"30",
		"a@x.com",
		"1234",
		"6",
	)

	assert.Contains(t, out, "Account created successfully!")
	assert.Contains(t, out, "Your Account Number: ")
}

func TestMenu_CreateAccount_Underage(t *testing.T) {
	out := runMenu(t, newTestService(t),
		"1",
		"Kid",
		"17",
		"k@x.com",
		"1234",
		"6",
	)

	assert.Contains(t, out, "Account creation failed. Age must be 18+ and PIN must be 4 digits.")
}

func TestMenu_CreateAccount_MalformedAge(t *testing.T) {
	// Malformed numeric input aborts the operation with a message; the
	// loop keeps running.
	out := runMenu(t, newTestService(t),
		"1",
		"Alice",
		"thirty",
		"6",
	)

	assert.Contains(t, out, "Invalid input. Please enter correct data types.")
	assert.Contains(t, out, "Thank you for using the system.")
}

func TestMenu_DepositWithdrawShowDelete(t *testing.T) {
	svc := newTestService(t)
	number, err := svc.CreateAccount(model.CreateAccountRequest{
		Name: "Alice", Age: 30, Email: "a@x.com", PIN: "1234",
	})
	assert.NoError(t, err)

	out := runMenu(t, svc,
		"2", number, "1234", "100",
		"3", number, "1234", "40",
		"3", number, "1234", "1000",
		"4", number, "1234",
		"5", number, "1234", "n",
		"5", number, "1234", "y",
		"4", number, "1234",
		"6",
	)

	assert.Contains(t, out, "Deposit successful.")
	assert.Contains(t, out, "Withdrawal successful.")
	assert.Contains(t, out, "Invalid withdrawal amount.")
	assert.Contains(t, out, "--- Account Details ---")
	assert.Contains(t, out, "Balance: 60")
	assert.Contains(t, out, "deposit | 100 |")
	assert.Contains(t, out, "withdraw | 40 |")
	assert.Contains(t, out, "Deletion cancelled.")
	assert.Contains(t, out, "Account deleted successfully.")
	// The final show-details runs after deletion.
	assert.Contains(t, out, "Invalid account details.")
}

func TestMenu_Deposit_WrongPIN(t *testing.T) {
	svc := newTestService(t)
	number, err := svc.CreateAccount(model.CreateAccountRequest{
		Name: "Alice", Age: 30, Email: "a@x.com", PIN: "1234",
	})
	assert.NoError(t, err)

	out := runMenu(t, svc,
		"2", number, "4321", "50",
		"6",
	)

	assert.Contains(t, out, "Invalid account details.")
	assert.NotContains(t, out, "Deposit successful.")
}
