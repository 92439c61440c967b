package httpapi

import (
	"time"

	"github.com/devesh1231/user-account-service/internal/server/models"
)

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Status bool   `json:"status"`
	Data   any    `json:"data"`
	Msg    string `json:"msg"`
}

// AccountView is the public projection of an account. The password hash
// and the stored refresh token never leave the server.
type AccountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginData is the success payload of the login endpoint: the account
// plus the short-lived session token. The refresh token travels only in
// the Set-Cookie header.
type LoginData struct {
	User  *AccountView `json:"user"`
	Token string       `json:"token"`
}

func newAccountView(a *models.Account) *AccountView {
	return &AccountView{
		ID:        a.ID,
		Name:      a.Name,
		Username:  a.Username,
		Bio:       a.Bio,
		Age:       a.Age,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ok(data any, msg string) Response {
	return Response{Status: true, Data: data, Msg: msg}
}

func fail(msg string) Response {
	return Response{Status: false, Data: nil, Msg: msg}
}
