package entity

import "time"

// Audit campos comunes de auditoría y soft delete de todas las entidades.
// is_active=false equivale a borrado; los repositorios filtran siempre por él.
type Audit struct {
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
	DeletedAt *time.Time
}

// SoftDelete marca la entidad como inactiva con sello de tiempo y usuario.
func (a *Audit) SoftDelete(now time.Time, userID string) {
	a.IsActive = false
	a.DeletedAt = &now
	a.UpdatedAt = now
	a.UpdatedBy = userID
}
