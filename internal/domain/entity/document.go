package entity

// DocumentStatus estado de un documento de negocio.
// DRAFT -> CONFIRMED es la única transición; CONFIRMED es terminal.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusConfirmed DocumentStatus = "CONFIRMED"
)
