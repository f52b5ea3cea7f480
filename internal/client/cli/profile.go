package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/donatello/internal/client/models"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Profile prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.profile.Get(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if user.Username != "" {
		a.userName = user.Username
	}
	printUser(a, user)
	return nil
}

// EditProfile prompts for new values; empty answers keep the current ones.
func (a *App) EditProfile(ctx context.Context) error {
	var in models.ProfileUpdate
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"New username (empty to keep)", &in.Username},
		{"New first name (empty to keep)", &in.FirstName},
		{"New last name (empty to keep)", &in.LastName},
		{"New email (empty to keep)", &in.Email},
		{"New phone number (empty to keep)", &in.PhoneNumber},
	}
	for _, f := range fields {
		v, err := a.prompt(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	user, err := a.profile.Update(ctx, in)
	if err != nil {
		return a.report(ctx, err)
	}
	if user.Username != "" {
		a.userName = user.Username
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a, user)
	return nil
}

// UploadAvatar reads an image from a local path and stores it as the
// user's avatar.
func (a *App) UploadAvatar(ctx context.Context) error {
	path, err := a.prompt("Path to image file")
	if err != nil {
		return err
	}
	data, err := readFile(path)
	if err != nil {
		return a.report(ctx, err)
	}

	key, err := a.profile.UploadAvatar(ctx, data)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "Avatar uploaded (%s).\n", key)
	return nil
}

// AvatarURL prints a temporary download link for the avatar.
func (a *App) AvatarURL(ctx context.Context) error {
	url, err := a.profile.AvatarURL(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, url)
	return nil
}

func (a *App) DeleteAvatar(ctx context.Context) error {
	if err := a.profile.DeleteAvatar(ctx); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Avatar removed.")
	return nil
}

func printUser(a *App, u *models.User) {
	fmt.Fprintf(a.out, "ID:       %s\n", u.ID)
	fmt.Fprintf(a.out, "Username: %s\n", u.Username)
	fmt.Fprintf(a.out, "Name:     %s %s\n", u.FirstName, u.LastName)
	fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
	if u.PhoneNumber != "" {
		fmt.Fprintf(a.out, "Phone:    %s\n", u.PhoneNumber)
	}
	if u.Photo != "" {
		fmt.Fprintf(a.out, "Photo:    %s\n", u.Photo)
	}
}
