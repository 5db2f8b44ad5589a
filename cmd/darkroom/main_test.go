package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadLine_SharedReaderKeepsBufferedLines(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("rejected-key\naccepted-key\nlast"))

	want := []string{"rejected-key\n", "accepted-key\n", "last"}
	for i, w := range want {
		got, err := readLine(r)
		if err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
		if got != w {
			t.Fatalf("attempt %d = %q, want %q", i+1, got, w)
		}
	}

	if _, err := readLine(r); !errors.Is(err, io.EOF) {
		t.Fatalf("err after input = %v, want EOF", err)
	}
}
