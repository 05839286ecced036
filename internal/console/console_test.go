package console

import (
	"bytes"
	"strings"
	"testing"

	"todoapp/internal/service"
	"todoapp/internal/storage/memory"
)

func runSession(t *testing.T, input string) (*service.Tasks, string) {
	t.Helper()
	tasks := service.NewTasks(memory.New())
	var out bytes.Buffer
	ui := New(tasks, strings.NewReader(input), &out)
	ui.Run()
	return tasks, out.String()
}

func TestAddAndViewSession(t *testing.T) {
	input := strings.Join([]string{
		"1",        // add
		"buy milk", // title
		"2 liters", // description
		"2",        // view
		"6",        // exit
	}, "\n") + "\n"

	tasks, out := runSession(t, input)

	if n := len(tasks.List()); n != 1 {
		t.Fatalf("expected 1 task, got %d", n)
	}
	if !strings.Contains(out, "Task added successfully! ID: 1") {
		t.Fatalf("missing add confirmation in output:\n%s", out)
	}
	if !strings.Contains(out, "[ ] 1. buy milk - 2 liters") {
		t.Fatalf("missing task line in output:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Fatalf("missing exit message in output:\n%s", out)
	}
}

func TestEmptyTitleRejected(t *testing.T) {
	input := "1\n   \n\n6\n"

	tasks, out := runSession(t, input)

	if n := len(tasks.List()); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
	if !strings.Contains(out, "Error:") {
		t.Fatalf("missing error message in output:\n%s", out)
	}
}

func TestInvalidMenuChoiceReprompts(t *testing.T) {
	input := "abc\n9\n6\n"

	_, out := runSession(t, input)

	if !strings.Contains(out, "Please enter a valid number.") {
		t.Fatalf("missing invalid-number prompt:\n%s", out)
	}
	if !strings.Contains(out, "Please enter a number between 1 and 6.") {
		t.Fatalf("missing range prompt:\n%s", out)
	}
}

func TestToggleAndDeleteSession(t *testing.T) {
	input := strings.Join([]string{
		"1", "walk dog", "", // add
		"5", "1", // toggle
		"4", "1", // delete
		"4", "1", // delete again, now missing
		"6",
	}, "\n") + "\n"

	tasks, out := runSession(t, input)

	if n := len(tasks.List()); n != 0 {
		t.Fatalf("expected empty store, got %d tasks", n)
	}
	if !strings.Contains(out, "Task 1 marked complete.") {
		t.Fatalf("missing toggle confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Task 1 deleted.") {
		t.Fatalf("missing delete confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Error: task 1 not found.") {
		t.Fatalf("missing not-found message:\n%s", out)
	}
}
