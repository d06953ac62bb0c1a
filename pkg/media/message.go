package media

// Message is the payload for chat and action bar sends. A message carries
// either literal text or a translation key with optional arguments; keyed
// messages are resolved against a viewer's locale by whichever sink delivers
// them. Messages are values and must not be mutated after construction.
type Message struct {
	Text string
	Key  string
	Args []any
}

// Text builds a literal message.
func Text(text string) Message {
	return Message{Text: text}
}

// Translatable builds a message resolved from a translation key at delivery time.
func Translatable(key string, args ...any) Message {
	return Message{Key: key, Args: args}
}

// Translatable reports whether the message carries a translation key.
func (m Message) Translatable() bool {
	return m.Key != ""
}
