// file: model/request.go

package model

// CreateAccountRequest defines the input for opening a new account.
// It includes validation tags to ensure data integrity at the entry point.
// The PIN is carried as a string so a leading zero is never lost.
type CreateAccountRequest struct {
	Name  string `validate:"required"`
	Age   int    `validate:"required,gte=18"`
	Email string `validate:"required"`
	PIN   string `validate:"required,len=4,number"`
}
