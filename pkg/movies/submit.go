package movies

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/form"
)

// SubmitLogin validates f and, when valid, logs in with its username and
// password results. An invalid form returns ErrInvalidForm wrapped with the
// form's failure message and makes no request.
func (c *Client) SubmitLogin(ctx context.Context, session *Session, f *form.Form) error {
	username, password, err := submission(f)
	if err != nil {
		return err
	}
	return c.Login(ctx, session, username, password)
}

// SubmitRegistration validates f and, when valid, creates the account.
func (c *Client) SubmitRegistration(ctx context.Context, f *form.Form) error {
	username, password, err := submission(f)
	if err != nil {
		return err
	}
	return c.CreateAccount(ctx, username, password)
}

func submission(f *form.Form) (string, string, error) {
	if ok, message := f.IsValid(); !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidForm, message.String())
	}
	values := f.DictResults()
	username, _ := values[form.KeyUsername].(string)
	password, _ := values[form.KeyPassword].(string)
	return username, password, nil
}
