package errors

import (
	"strings"
	"testing"

	"github.com/echosoar/jsi-sub000/internal/lexer"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "myFunction",
				FileName:     "test.js",
				Position:     &lexer.Position{Line: 10, Column: 5},
			},
			expected: "    at myFunction (test.js:10:5)",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "myFunction",
				FileName:     "test.js",
				Position:     nil,
			},
			expected: "    at myFunction (test.js)",
		},
		{
			name: "Frame with method name",
			frame: StackFrame{
				FunctionName: "MyClass.myMethod",
				FileName:     "test.js",
				Position:     &lexer.Position{Line: 42, Column: 15},
			},
			expected: "    at MyClass.myMethod (test.js:42:15)",
		},
		{
			name: "Frame with anonymous arrow function",
			frame: StackFrame{
				FunctionName: "",
				FileName:     "test.js",
				Position:     &lexer.Position{Line: 7, Column: 1},
			},
			expected: "    at <anonymous> (test.js:7:1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", FileName: "main.js", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: "    at main (main.js:1:1)",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", FileName: "main.js", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "processData", FileName: "main.js", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "validateInput", FileName: "main.js", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: "    at validateInput (main.js:10:3)\n    at processData (main.js:15:5)\n    at main (main.js:20:1)",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "main", FileName: "main.js", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "callback", FileName: "main.js", Position: nil},
			},
			expected: "    at callback (main.js)\n    at main (main.js:20:1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "first", Position: &lexer.Position{Line: 1, Column: 1}},
		{FunctionName: "second", Position: &lexer.Position{Line: 2, Column: 1}},
		{FunctionName: "third", Position: &lexer.Position{Line: 3, Column: 1}},
	}

	reversed := original.Reverse()

	if reversed[0].FunctionName != "third" {
		t.Errorf("Expected first frame to be 'third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "second" {
		t.Errorf("Expected second frame to be 'second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "first" {
		t.Errorf("Expected third frame to be 'first', got %q", reversed[2].FunctionName)
	}

	if original[0].FunctionName != "first" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "processData", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "validateInput", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("validateInput"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &lexer.Position{Line: 20, Column: 1}},
				{FunctionName: "processData", Position: &lexer.Position{Line: 15, Column: 5}},
				{FunctionName: "validateInput", Position: &lexer.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("main"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: 0,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main"},
			},
			expected: 1,
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main"},
				{FunctionName: "processData"},
				{FunctionName: "validateInput"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &lexer.Position{Line: 42, Column: 13}
	frame := NewStackFrame("testFunc", "test.js", pos)

	if frame.FunctionName != "testFunc" {
		t.Errorf("Expected FunctionName 'testFunc', got %q", frame.FunctionName)
	}
	if frame.FileName != "test.js" {
		t.Errorf("Expected FileName 'test.js', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a call stack: main -> processData -> validateInput
	trace := StackTrace{
		{FunctionName: "main", FileName: "main.js", Position: &lexer.Position{Line: 50, Column: 1}},
		{FunctionName: "processData", FileName: "main.js", Position: &lexer.Position{Line: 30, Column: 5}},
		{FunctionName: "validateInput", FileName: "main.js", Position: &lexer.Position{Line: 10, Column: 3}},
	}

	expected := "    at validateInput (main.js:10:3)\n    at processData (main.js:30:5)\n    at main (main.js:50:1)"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	top := trace.Top()
	if top == nil || top.FunctionName != "validateInput" {
		t.Errorf("Expected top to be validateInput, got %v", top)
	}

	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "main" {
		t.Errorf("Expected bottom to be main, got %v", bottom)
	}
}

func TestStackTrace_StringFormat(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "callsABomb", FileName: "bomb.js", Position: &lexer.Position{Line: 8, Column: 4}},
		{FunctionName: "thisOneBombs", FileName: "bomb.js", Position: &lexer.Position{Line: 3, Column: 20}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "    at thisOneBombs (bomb.js:3:20)" {
		t.Errorf("First line doesn't match expected format: %q", lines[0])
	}
	if lines[1] != "    at callsABomb (bomb.js:8:4)" {
		t.Errorf("Second line doesn't match expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
