package input

type Options struct {
	Encoding string
}
