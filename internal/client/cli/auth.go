package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tripmate/internal/client/models"
	"github.com/dmitrijs2005/tripmate/internal/common"
)

// Login prompts for email and password and authenticates. A failure is
// reported through the session error and returned.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		a.printError("Login failed: " + a.auth.State().Error)
		return err
	}

	a.printSuccess(fmt.Sprintf("Welcome, %s!", a.userName()))
	return nil
}

// Signup collects credentials and the profile details, then creates the
// account. Age is optional.
func (a *App) Signup(ctx context.Context) error {
	fields, err := a.prompts(
		"Full name",
		"Email",
		"Phone number",
		"Aadhaar number",
		"Date of birth (YYYY-MM-DD)",
		"Gender",
		"Age (optional)",
	)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	details := &models.ProfileDetails{
		Name:          fields[0],
		PhoneNumber:   fields[2],
		AadhaarNumber: fields[3],
		DateOfBirth:   fields[4],
		Gender:        fields[5],
	}
	if age, err := strconv.Atoi(fields[6]); err == nil && age > 0 {
		details.Age = age
	}

	creds := models.Credentials{Email: fields[1], Password: string(password), Confirm: string(confirm)}
	if err := a.auth.Signup(ctx, creds, details); err != nil {
		a.printError("Signup failed: " + a.auth.State().Error)
		return err
	}

	a.printSuccess(fmt.Sprintf("Account created. Welcome, %s!", a.userName()))
	return nil
}

// Logout clears the session locally and in storage.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.printSuccess("Logged out")
	return nil
}

// DevBypass signs in with the fixed development identity.
func (a *App) DevBypass(ctx context.Context) error {
	if err := a.auth.DevBypass(ctx); err != nil {
		a.printError(err.Error())
		return err
	}
	a.printSuccess("Signed in as " + a.userName() + " (dev)")
	return nil
}

// WhoAmI prints the session user and token expiry.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.auth.State()
	if !st.Authenticated() || st.User == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	u := st.User
	rows := [][]string{
		{"ID", u.ID},
		{"Name", u.Name},
		{"Email", u.Email},
	}
	if u.Age != nil {
		rows = append(rows, []string{"Age", strconv.Itoa(*u.Age)})
	}
	for _, kv := range [][2]string{
		{"Date of birth", u.DateOfBirth},
		{"Gender", u.Gender},
		{"Phone", u.PhoneNumber},
		{"Aadhaar", maskTail(u.AadhaarNumber, 4)},
	} {
		if kv[1] != "" {
			rows = append(rows, []string{kv[0], kv[1]})
		}
	}
	if exp, ok := a.auth.TokenExpiry(); ok {
		rows = append(rows, []string{"Token expires", exp.Local().Format(time.RFC1123)})
	}
	return a.renderTable(rows)
}
