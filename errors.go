package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/bibo-tts/bibo/internal/tts"
)

// renderError prints err and its remediation tips.
func renderError(w io.Writer, err error) {
	var e *tts.Error
	if !errors.As(err, &e) {
		e = tts.Other("", err)
	}

	fmt.Fprintf(w, "%s %s\n", failure.Render("❌"), failure.Render(e.Error()))

	tips := e.Tips()
	if len(tips) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", warning.Render("💡 How to fix:"))
	for _, tip := range tips {
		fmt.Fprintf(w, "   %s %s\n", subtle.Render("•"), tip)
	}
}
