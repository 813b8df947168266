package event

// ExitRequested is emitted when the script asks to quit.
type ExitRequested struct {
	Tick uint64
}

// Resized is emitted when the terminal changes size.
type Resized struct {
	Width  int
	Height int
}
