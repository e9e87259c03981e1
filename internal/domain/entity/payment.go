package entity

// Métodos de pago aceptados en caja.
const (
	PayCash     = "CASH"
	PayYape     = "YAPE"
	PayPlin     = "PLIN"
	PayCard     = "CARD"
	PayTransfer = "TRANSFER"
	PayCredit   = "CREDIT"
	PayOther    = "OTHER"
)

// PaymentMethods listado de métodos válidos en el orden que se muestran en caja.
var PaymentMethods = []string{
	PayCash, PayYape, PayPlin, PayCard, PayTransfer, PayCredit, PayOther,
}

// IsValidPaymentMethod indica si el método es uno de los aceptados.
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
