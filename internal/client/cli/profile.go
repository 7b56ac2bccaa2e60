package cli

import (
	"context"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/api"
)

// Profile shows the signed-in user's editable settings.
func (a *App) Profile(ctx context.Context) error {
	if !a.guard(ctx, false) {
		return nil
	}
	u := a.session.Snapshot().User
	fmt.Fprintf(a.out, "username    %s\n", u.Username)
	fmt.Fprintf(a.out, "email       %s\n", u.Email)
	fmt.Fprintf(a.out, "domain      %s\n", u.Domain)
	fmt.Fprintf(a.out, "temp email  %s\n", u.TempEmailAddress)
	if u.IsAdmin() {
		fmt.Fprintln(a.out, "role        admin")
	}
	return nil
}

// EditProfile walks through the editable fields, keeping the current value
// on empty input. An empty password answer leaves the password unchanged;
// it is dropped from the request entirely.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.guard(ctx, false) {
		return nil
	}
	u := a.session.Snapshot().User

	email, err := GetTextWithDefault(a.reader, "Email", u.Email, a.out)
	if err != nil {
		return err
	}
	domain, err := GetTextWithDefault(a.reader, "Domain", u.Domain, a.out)
	if err != nil {
		return err
	}
	tempEmail, err := GetTextWithDefault(a.reader, "Temp email address", u.TempEmailAddress, a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "New password (empty keeps current)")
	if err != nil {
		return err
	}

	upd := api.ProfileUpdate{
		Email:            email,
		Domain:           domain,
		TempEmailAddress: tempEmail,
		Password:         password,
	}
	updated, err := a.api.UpdateUser(ctx, u.ID, upd)
	if err != nil {
		a.reportError("updating profile", err)
		return err
	}
	if updated != nil {
		a.session.UpdateUser(updated)
	}
	fmt.Fprintln(a.out, "profile saved")
	return nil
}
