package test

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/gosass/selector/internal/logger"
)

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("%s != %s", a, b)
	}
}

func AssertEqualWithDiff(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		stringA := fmt.Sprintf("%v", a)
		stringB := fmt.Sprintf("%v", b)
		if strings.Contains(stringA, "\n") {
			color := runtime.GOOS != "windows"
			t.Fatal(Diff(stringB, stringA, color))
		} else {
			t.Fatalf("%s != %s", a, b)
		}
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:          0,
		KeyPath:        logger.Path{Text: "<stdin>"},
		PrettyPath:     "<stdin>",
		Contents:       contents,
		IdentifierName: "stdin",
	}
}
