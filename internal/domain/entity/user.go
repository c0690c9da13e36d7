package entity

// Roles de usuario.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// User usuario del sistema. Solo se usa para autenticación y para el sello
// updated_by de auditoría; no participa en la lógica de documentos.
type User struct {
	ID           string
	Username     string // único
	Email        string
	PasswordHash string
	Role         string
	Audit
}
