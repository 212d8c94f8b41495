package session

// finalizedMsg reports the outcome of persisting a finished session.
type finalizedMsg struct {
	Err error
}
