package model

// ClientUser данные пользователя внутри профиля клиента.
type ClientUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ClientProfile профиль клиента с бэкенда.
type ClientProfile struct {
	UserID string     `json:"userId"`
	User   ClientUser `json:"user"`
}

// Identity личность, восстановленная из bearer-токена.
// Токен не валидируется и не обновляется - это забота бэкенда.
type Identity struct {
	UserID string
	Email  string
}
