package tokens

import "time"

// Token описывает сохранённый пользовательский OAuth токен.
type Token struct {
	Access  string
	SavedAt time.Time
}

// TokenStore описывает хранилище пользовательского токена.
type TokenStore interface {
	LoadUserToken() (*Token, error)
	SaveUserToken(Token) error
	DeleteUserToken() error
}
