package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	account, err := a.api.Login(ctx, username, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = account.Username
	fmt.Printf("Logged in as %s\n", account.Username)
}

func (a *App) Logout(ctx context.Context) {
	if _, err := a.api.Logout(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}
	a.userName = ""
	fmt.Println("Logged out")
}
