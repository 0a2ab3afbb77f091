package repository

// Repos agrupa los repositorios atados a un mismo alcance (pool o transacción).
// Los TxRunner entregan un Repos cuyo contenido se confirma o descarta en bloque.
type Repos struct {
	Products     ProductRepository
	Orders       OrderRepository
	Entries      StockEntryRepository
	StockItems   StockItemRepository
	Exits        StockExitRepository
	Installments InstallmentRepository
	Users        UserRepository
}
