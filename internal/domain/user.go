package domain

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Oculta o hash da senha no JSON de resposta
	IsAdmin      bool   `json:"isAdmin"`
}

// Identity são as claims de identidade carregadas no token de sessão.
type Identity struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Identity extrai as claims de identidade do usuário.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}

// Credentials representa o payload de login (POST /auth).
type Credentials struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=5,max=255"`
}
