package form

import (
	"github.com/goliatone/go-formkit/pkg/richtext"
	"github.com/goliatone/go-formkit/pkg/validators"
)

// Submission keys shared by the account forms and the movies client.
const (
	KeyUsername        = "username"
	KeyPassword        = "password"
	KeyConfirmPassword = "confirmPassword"
)

// AccountCreation returns the registration form: email, password and a
// confirmation that must match the password.
func AccountCreation() *Form {
	f := New("Register",
		NewTextField(TextFieldConfig{
			Title:       "Email",
			Placeholder: "email@email.com",
			UI:          EmailCellProperties,
			Validators:  []validators.Rule{validators.Email(), validators.Required("Email")},
			IconName:    "email",
			Key:         KeyUsername,
		}),
		NewTextField(TextFieldConfig{
			Title:       "Create Password",
			Placeholder: "Enter Password",
			Validators: []validators.Rule{
				validators.PasswordWithPolicy("Password", validators.AccountPasswordPolicy()),
				validators.Required("Password"),
			},
			IconName: "password",
			Key:      KeyPassword,
			TextType: TextSecure,
		}),
		NewTextField(TextFieldConfig{
			Title:       "Confirm password",
			Placeholder: "Re-enter password",
			Validators: []validators.Rule{
				validators.Required("Confirm password"),
				validators.Match(KeyPassword, "Confirm password"),
			},
			IconName: "password",
			Key:      KeyConfirmPassword,
			TextType: TextSecure,
		}),
	)
	f.ContinueTitle = "Create Account"
	return f
}

// AccountLogin returns the login form with its heading row.
func AccountLogin() *Form {
	heading := richtext.New().
		Sized("\n", richtext.WeightBold, 18).
		Sized("Login to Account", richtext.WeightBold, 18).
		Align(richtext.AlignCenter)

	f := New("Login",
		NewAttributedText(heading, ""),
		NewTextField(TextFieldConfig{
			Title:       "Email",
			Placeholder: "email@email.com",
			UI:          EmailCellProperties,
			Validators:  []validators.Rule{validators.Email(), validators.Required("User Email")},
			IconName:    "email",
			Key:         KeyUsername,
		}),
		NewTextField(TextFieldConfig{
			Title:       "Password",
			Placeholder: "Enter Password",
			Validators:  []validators.Rule{validators.Password("Password"), validators.Required("Password")},
			IconName:    "password",
			Key:         KeyPassword,
			TextType:    TextSecure,
		}),
	)
	f.ContinueTitle = "Login"
	return f
}
