package web

import (
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func writeEscaped(w io.Writer, value string) error {
	_, err := io.WriteString(w, templ.EscapeString(value))
	return err
}
