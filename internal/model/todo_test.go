package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoString(t *testing.T) {
	tests := []struct {
		name string
		todo Todo
		want string
	}{
		{"unchecked", Todo{ID: 1, Text: "buy milk"}, `Todo { id: 1, todo: "buy milk", checked: false }`},
		{"checked", Todo{ID: 42, Text: "call mom", Checked: true}, `Todo { id: 42, todo: "call mom", checked: true }`},
		{"empty text", Todo{ID: 3}, `Todo { id: 3, todo: "", checked: false }`},
		{"quotes escaped", Todo{ID: 4, Text: `say "hi"`}, `Todo { id: 4, todo: "say \"hi\"", checked: false }`},
		{"backslash escaped", Todo{ID: 5, Text: `C:\tmp`}, `Todo { id: 5, todo: "C:\\tmp", checked: false }`},
		{"short escapes", Todo{ID: 6, Text: "a\tb\r\nc\x00"}, `Todo { id: 6, todo: "a\tb\r\nc\0", checked: false }`},
		{"escape sequence", Todo{ID: 7, Text: "\x1b[31mred"}, `Todo { id: 7, todo: "\u{1b}[31mred", checked: false }`},
		{"delete and format runes", Todo{ID: 8, Text: "x\x7f\u200by"}, `Todo { id: 8, todo: "x\u{7f}\u{200b}y", checked: false }`},
		{"unicode kept", Todo{ID: 9, Text: "café ☑ 日本"}, `Todo { id: 9, todo: "café ☑ 日本", checked: false }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.todo.String())
		})
	}
}
