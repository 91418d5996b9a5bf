package output

type Options struct {
	PrintRequestHeader  bool
	PrintRequestBody    bool
	PrintResponseHeader bool
	PrintResponseBody   bool

	EnableColor bool
}

func (o *Options) PrintsRequest() bool {
	return o.PrintRequestHeader || o.PrintRequestBody
}

func (o *Options) PrintsResponse() bool {
	return o.PrintResponseHeader || o.PrintResponseBody
}
