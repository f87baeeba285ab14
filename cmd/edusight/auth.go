package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Auth commands deliberately report generic failures: the session store
// swallows the backend detail and hands back a boolean, so the messaging
// here is the caller-supplied substitute.

func (a *app) cmdLogin(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: edusight login <email> <password>")
	}

	if !a.session.Login(context.Background(), args[0], args[1]) {
		return errors.New("login failed: check your email and password")
	}

	user := a.session.Current()
	color.Green("Logged in as %s (%s)", user.Name, user.Role)
	return nil
}

func (a *app) cmdLoginCode(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: edusight login-code <code> <studentID>")
	}

	if !a.session.LoginWithCode(context.Background(), args[0], args[1]) {
		return errors.New("login failed: the code may be invalid or expired")
	}

	user := a.session.Current()
	color.Green("Logged in as %s (%s)", user.Name, user.StudentID)
	return nil
}

func (a *app) cmdLogout() error {
	a.session.Logout()
	fmt.Println("Logged out.")
	return nil
}

func (a *app) cmdWhoami() error {
	user := a.session.Current()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("%s <%s>\n", user.Name, user.Email)
	fmt.Printf("role: %s\n", user.Role)
	if user.StudentID != "" {
		fmt.Printf("student id: %s\n", user.StudentID)
	}
	return nil
}
