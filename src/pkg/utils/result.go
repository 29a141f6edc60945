package utils

type Result struct {
	Data  interface{}
	Error error
}
