package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// CashTransferNoteRepository define el puerto de persistencia para CashTransferNote.
type CashTransferNoteRepository interface {
	Create(note *entity.CashTransferNote) error
	GetByID(id string) (*entity.CashTransferNote, error)
	// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.CashTransferNote, error)
	Update(note *entity.CashTransferNote) error
	List(limit, offset int) ([]*entity.CashTransferNote, error)
}
