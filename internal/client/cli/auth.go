package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username and password and attempts to
// create a new account. The received token is stored locally, so the user is
// logged in right away.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, username, password); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials, authenticates, and runs a sync
// cycle right away so the local store catches up with the account.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, username, password); err != nil {
		return err
	}

	fmt.Println("Success!")

	if err := a.syncer.RunCycle(ctx); err != nil {
		fmt.Println("Initial sync failed, will retry in background:", err.Error())
	}
	return nil
}

// Logout drops the stored token. Local data stays on disk; pending outbox
// entries are pushed on the next login.
func (a *App) Logout(ctx context.Context) error {
	return a.authService.Logout(ctx)
}
