package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	username, err := GetSimpleText(a.reader, "Enter username (6-16 characters, alphanumeric)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	bio, err := GetSimpleText(a.reader, "Enter bio", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	ageText, err := GetSimpleText(a.reader, "Enter age", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		fmt.Println("Age must be a number")
		return
	}

	password, err := GetPassword("Enter password (8-16 characters)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	account, err := a.api.Register(ctx, name, username, bio, age, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Registered %s. You can now log in.\n", account.Username)
}
