package domain

// Diagnostics reported by ProductRepository implementations
const (
	MsgProductIsNull      = "product is null ."
	MsgIDIsEmpty          = "Id is empty ."
	MsgProductNotFound    = "The product not found ."
	MsgProductsNotFound   = "Products not found .Context is incorrect ."
	MsgProductNotInserted = "Error Message : Product not inserted ."
	MsgProductNotUpdated  = "Error Message : Product not updated ."
	MsgProductNotDeleted  = "Error Message : Product not deleted ."
)

// StoreErrorMessage formats a fault raised by the backing store
func StoreErrorMessage(err error) string {
	return "Error Message : " + err.Error()
}
