package input

import "net/url"

type Input struct {
	Method     Method
	URL        *url.URL
	Parameters []Field
	Header     Header
	Encoding   string // empty means the default charset
}

type Method string

type Header struct {
	Fields []Field
}

type Field struct {
	Name   string
	Value  string
	IsFile bool
}
