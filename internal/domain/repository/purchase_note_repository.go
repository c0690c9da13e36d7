package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// PurchaseNoteRepository define el puerto de persistencia para PurchaseNote.
type PurchaseNoteRepository interface {
	Create(note *entity.PurchaseNote) error
	GetByID(id string) (*entity.PurchaseNote, error)
	// GetByIDForUpdate bloquea la fila del documento (SELECT FOR UPDATE) para
	// serializar confirmaciones concurrentes sobre el mismo documento.
	GetByIDForUpdate(id string) (*entity.PurchaseNote, error)
	Update(note *entity.PurchaseNote) error
	List(limit, offset int) ([]*entity.PurchaseNote, error)
	// CountActiveBySupplier compras activas del proveedor (regla de borrado).
	CountActiveBySupplier(supplierID string) (int, error)
}

// PurchaseLineRepository define el puerto de persistencia para PurchaseLine.
type PurchaseLineRepository interface {
	Create(line *entity.PurchaseLine) error
	GetByID(noteID, lineID string) (*entity.PurchaseLine, error)
	ListByNote(noteID string) ([]*entity.PurchaseLine, error)
	Update(line *entity.PurchaseLine) error
	// CountActiveByProduct líneas activas que referencian el producto.
	CountActiveByProduct(productID string) (int, error)
}
