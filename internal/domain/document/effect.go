// Package document define el conjunto cerrado de tipos de documento y el
// mapa de efectos que cada uno produce al confirmarse. Los lifecycle
// controllers resuelven el efecto una sola vez; los movement engines
// despachan sobre Kind y rechazan cualquier valor fuera del conjunto.
package document

// Kind tipo de documento de negocio (conjunto cerrado).
type Kind string

const (
	KindPurchase     Kind = "PURCHASE"
	KindSale         Kind = "SALE"
	KindStockDeposit Kind = "STOCK_DEPOSIT"
	KindCashTransfer Kind = "CASH_TRANSFER"
)

// Effect qué sistemas de saldo toca la confirmación de un documento.
// El orden de aplicación es fijo: stock primero, cash después.
type Effect struct {
	Stock bool
	Cash  bool
}

// effects mapa cerrado Kind -> Effect.
var effects = map[Kind]Effect{
	KindPurchase:     {Stock: true, Cash: true},
	KindSale:         {Stock: true, Cash: true},
	KindStockDeposit: {Stock: true, Cash: false},
	KindCashTransfer: {Stock: false, Cash: true},
}

// EffectOf devuelve el efecto del tipo dado; ok=false si el tipo no pertenece
// al conjunto cerrado.
func EffectOf(k Kind) (Effect, bool) {
	e, ok := effects[k]
	return e, ok
}
