package packedmap

// UnsupportedOperation - Custom error to inform that an operation is permanently unsupported
// by the structure it was invoked on
type UnsupportedOperation struct {
	msg string
}

// Error - Used to notify that the operation is unsupported
func (E UnsupportedOperation) Error() string {
	if E.msg == "" {
		return "unsupported operation"
	}
	return E.msg
}
