package output

import (
	"fmt"
	"io"
)

type Class int

const (
	Required Class = iota //requested information, printed even in quiet mode
	Error
	Normal
	Verbose
)

// Printer routes output by class: errors go to the diagnosis stream, everything else to the terminal.
// Classes not included when creating the printer are dropped.
type Printer struct {
	classes    map[Class]bool
	terminal   io.Writer
	diagnosis  io.Writer
	useEscapes bool
}

func NewPrinterTo(include []Class, allowEscapes bool, terminal io.Writer, diagnosis io.Writer) (p Printer) {
	p = Printer{
		classes:    map[Class]bool{},
		terminal:   terminal,
		diagnosis:  diagnosis,
		useEscapes: allowEscapes,
	}
	for _, class := range include {
		p.classes[class] = true
	}
	return
}

func (p Printer) Out(class Class, format string, values ...interface{}) {
	if !p.classes[class] {
		return
	}
	target := &p.terminal
	if class == Error {
		target = &p.diagnosis
	}
	fmt.Fprintf(*target, format, values...)
}

// Enabled reports whether output of the given class is printed at all.
func (p Printer) Enabled(class Class) bool {
	return p.classes[class]
}

// Format applies a terminal format if escape sequences are allowed, otherwise text is returned as is.
func (p Printer) Format(text string, format func(string) string) string {
	if !p.useEscapes {
		return text
	}
	return format(text)
}
