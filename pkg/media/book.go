package media

// Book is virtual book content opened client-side; no item is persisted.
type Book struct {
	Title  Message
	Author Message
	Pages  []Message
}
