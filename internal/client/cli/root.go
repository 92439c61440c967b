package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s) ", a.userName)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Account service CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("acli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: details, update, delete, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "details":
			a.Details(ctx)

		case "update":
			a.Update(ctx)

		case "delete":
			a.Delete(ctx)

		case "logout":
			a.Logout(ctx)

		case "exit", "quit":
			return

		default:
			fmt.Printf("Unknown command: %s\n", line)
		}
	}
}
