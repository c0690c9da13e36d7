package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// StockDepositNoteRepository define el puerto de persistencia para StockDepositNote.
type StockDepositNoteRepository interface {
	Create(note *entity.StockDepositNote) error
	GetByID(id string) (*entity.StockDepositNote, error)
	// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.StockDepositNote, error)
	Update(note *entity.StockDepositNote) error
	List(limit, offset int) ([]*entity.StockDepositNote, error)
}
