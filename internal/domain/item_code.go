package domain

// ItemCode is a catalog entry describing a class of inventory hardware,
// e.g. POS terminals or pinpads. The catalog is seeded at first boot and
// read-only afterwards.
type ItemCode struct {
	ID          int64
	Codigo      string
	Tipo        string
	Descripcion string
}
