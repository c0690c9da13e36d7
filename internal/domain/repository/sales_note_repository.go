package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// SalesNoteRepository define el puerto de persistencia para SalesNote.
type SalesNoteRepository interface {
	Create(note *entity.SalesNote) error
	GetByID(id string) (*entity.SalesNote, error)
	// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.SalesNote, error)
	Update(note *entity.SalesNote) error
	List(limit, offset int) ([]*entity.SalesNote, error)
	// CountActiveByCustomer ventas activas del cliente (regla de borrado).
	CountActiveByCustomer(customerID string) (int, error)
}

// SalesLineRepository define el puerto de persistencia para SalesLine.
type SalesLineRepository interface {
	Create(line *entity.SalesLine) error
	GetByID(noteID, lineID string) (*entity.SalesLine, error)
	ListByNote(noteID string) ([]*entity.SalesLine, error)
	Update(line *entity.SalesLine) error
	CountActiveByProduct(productID string) (int, error)
}
