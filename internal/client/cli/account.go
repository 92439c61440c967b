package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/devesh1231/user-account-service/internal/client/api"
)

func (a *App) Details(ctx context.Context) {
	account, err := a.api.Details(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Name:     %s\n", account.Name)
	fmt.Printf("Username: %s\n", account.Username)
	fmt.Printf("Bio:      %s\n", account.Bio)
	fmt.Printf("Age:      %d\n", account.Age)
}

// Update prompts for new field values; empty input leaves a field unchanged.
func (a *App) Update(ctx context.Context) {
	upd := api.UpdateRequest{}

	name, err := GetSimpleText(a.reader, "New display name (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	upd.Name = name

	bio, err := GetSimpleText(a.reader, "New bio (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	upd.Bio = bio

	ageText, err := GetSimpleText(a.reader, "New age (empty to keep)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if ageText != "" {
		age, err := strconv.Atoi(ageText)
		if err != nil {
			fmt.Println("Age must be a number")
			return
		}
		upd.Age = &age
	}

	change, err := GetSimpleText(a.reader, "Change password? (y/N)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if change == "y" || change == "Y" {
		current, err := GetPassword("Current password", os.Stdout)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		newPassword, err := GetPassword("New password (8-16 characters)", os.Stdout)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		upd.Password = current
		upd.NewPassword = newPassword
	}

	account, err := a.api.Update(ctx, upd)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = account.Username
	fmt.Println("Profile updated")
}

func (a *App) Delete(ctx context.Context) {
	confirm, err := GetSimpleText(a.reader, "Delete this account permanently? (y/N)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if confirm != "y" && confirm != "Y" {
		return
	}

	password, err := GetPassword("Enter password", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if _, err := a.api.Delete(ctx, password); err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = ""
	fmt.Println("Account deleted")
}
