package cloner

// Cloner - Interface that permits values stored in a map to be deep copied during Clone.
// A value type that does not implement Cloner can still be cloned by value, or through a
// custom copier function supplied in the call to Clone.
type Cloner interface {
	// Clone - Returns a duplicate of the value. The returned value must be of the same
	// concrete type as the receiver or the clone operation will fail.
	Clone() any
}
