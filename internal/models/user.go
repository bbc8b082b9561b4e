package models

// Role est la valeur de rôle telle qu'envoyée par le backend
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole accepte "ROLE_ADMIN" comme "ADMIN"; tout le reste retombe sur USER
func ParseRole(raw string) Role {
	switch raw {
	case string(RoleAdmin), "ADMIN", "admin":
		return RoleAdmin
	default:
		return RoleUser
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Label renvoie USER ou ADMIN pour l'affichage
func (r Role) Label() string {
	if r.IsAdmin() {
		return "ADMIN"
	}
	return "USER"
}

type User struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty"`
	Fullname  string `json:"fullname,omitempty"`
	Email     string `json:"email"`
	Role      Role   `json:"role,omitempty"`
}

// DisplayName préfère le nom complet, sinon prénom + nom, sinon l'email
func (u User) DisplayName() string {
	if u.Fullname != "" {
		return u.Fullname
	}
	if u.Firstname != "" || u.Lastname != "" {
		name := u.Firstname
		if u.Lastname != "" {
			if name != "" {
				name += " "
			}
			name += u.Lastname
		}
		return name
	}
	return u.Email
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginResponse : le backend d'origine renvoie aussi l'email
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// RoleResponse est la réponse de POST /admin/users/{id}/toggle-admin
type RoleResponse struct {
	Role Role `json:"role"`
}

// MessageResponse couvre les réponses {message} du panier
type MessageResponse struct {
	Message string `json:"message"`
}
