package persist

// IOError wraps a snapshot save/load failure: the persistence boundary's
// only error kind (schema/tuple-shape failures would mean a corrupt or
// foreign snapshot, reported the same way).
type IOError struct {
	Op  string
	Msg string
}

func (e *IOError) Error() string {
	return "persist: " + e.Op + ": " + e.Msg
}
