package cli

import (
	"bufio"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Registrar creates accounts; services.AccountService satisfies it.
type Registrar interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// RegisterUser prompts for a username, an email and a password (entered
// twice, without echo) and registers the account through r.
func RegisterUser(ctx context.Context, r Registrar, reader *bufio.Reader, w io.Writer) (*models.User, error) {
	username, err := GetSimpleText(reader, "Enter user name", w)
	if err != nil {
		return nil, err
	}

	email, err := GetSimpleText(reader, "Enter email", w)
	if err != nil {
		return nil, err
	}

	password, err := GetPassword("Enter password", w)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword("Repeat password", w)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if subtle.ConstantTimeCompare(password, confirm) != 1 {
		return nil, ErrPasswordMismatch
	}

	user, err := r.Register(ctx, username, email, string(password))
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "User %q created (id %d)\n", user.UserName, user.ID)
	return user, nil
}
