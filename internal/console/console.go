// Package console implements the interactive menu loop of the phase one
// todo application. All input and output goes through the supplied
// reader and writer so the loop can be driven from tests.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todoapp/internal/models"
	"todoapp/internal/service"
)

// UI drives a line-based menu session against the task service.
type UI struct {
	tasks *service.Tasks
	in    *bufio.Scanner
	out   io.Writer
}

// New builds a UI reading from in and writing to out.
func New(tasks *service.Tasks, in io.Reader, out io.Writer) *UI {
	return &UI{
		tasks: tasks,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run loops until the user picks exit or input ends.
func (u *UI) Run() {
	for {
		u.printMenu()
		choice, ok := u.readChoice()
		if !ok {
			return
		}
		switch choice {
		case 1:
			u.addTask()
		case 2:
			u.viewTasks()
		case 3:
			u.updateTask()
		case 4:
			u.deleteTask()
		case 5:
			u.toggleTask()
		case 6:
			fmt.Fprintln(u.out, "Goodbye!")
			return
		}
	}
}

func (u *UI) printMenu() {
	fmt.Fprintln(u.out, "\n=== Todo Application ===")
	fmt.Fprintln(u.out, "1. Add Task")
	fmt.Fprintln(u.out, "2. View Tasks")
	fmt.Fprintln(u.out, "3. Update Task")
	fmt.Fprintln(u.out, "4. Delete Task")
	fmt.Fprintln(u.out, "5. Mark Complete/Incomplete")
	fmt.Fprintln(u.out, "6. Exit")
	fmt.Fprintln(u.out, "========================")
}

// readChoice re-prompts until a number between 1 and 6 arrives. The
// second return value is false when input is exhausted.
func (u *UI) readChoice() (int, bool) {
	for {
		fmt.Fprint(u.out, "Enter your choice (1-6): ")
		line, ok := u.readLine()
		if !ok {
			return 0, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(u.out, "Please enter a valid number.")
			continue
		}
		if choice < 1 || choice > 6 {
			fmt.Fprintln(u.out, "Please enter a number between 1 and 6.")
			continue
		}
		return choice, true
	}
}

func (u *UI) addTask() {
	fmt.Fprintln(u.out, "\n--- Add Task ---")
	fmt.Fprint(u.out, "Enter task title: ")
	title, ok := u.readLine()
	if !ok {
		return
	}
	fmt.Fprint(u.out, "Enter task description (optional): ")
	description, _ := u.readLine()

	task, err := u.tasks.Add(title, description)
	if err != nil {
		fmt.Fprintf(u.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(u.out, "Task added successfully! ID: %d\n", task.ID)
}

func (u *UI) viewTasks() {
	fmt.Fprintln(u.out, "\n--- Task List ---")
	tasks := u.tasks.List()
	if len(tasks) == 0 {
		fmt.Fprintln(u.out, "No tasks found.")
		return
	}
	for _, t := range tasks {
		u.printTask(t)
	}
}

func (u *UI) printTask(t models.Task) {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}
	fmt.Fprintf(u.out, "%s %d. %s", status, t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(u.out, " - %s", t.Description)
	}
	fmt.Fprintln(u.out)
}

func (u *UI) updateTask() {
	fmt.Fprintln(u.out, "\n--- Update Task ---")
	id, ok := u.readID()
	if !ok {
		return
	}
	fmt.Fprint(u.out, "Enter new title (press Enter to keep current): ")
	titleLine, ok := u.readLine()
	if !ok {
		return
	}
	fmt.Fprint(u.out, "Enter new description (press Enter to keep current): ")
	descLine, _ := u.readLine()

	var title, description *string
	if strings.TrimSpace(titleLine) != "" {
		title = &titleLine
	}
	if strings.TrimSpace(descLine) != "" {
		description = &descLine
	}

	task, err := u.tasks.Update(id, title, description)
	if err != nil {
		fmt.Fprintf(u.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(u.out, "Task %d updated successfully.\n", task.ID)
}

func (u *UI) deleteTask() {
	fmt.Fprintln(u.out, "\n--- Delete Task ---")
	id, ok := u.readID()
	if !ok {
		return
	}
	if u.tasks.Delete(id) {
		fmt.Fprintf(u.out, "Task %d deleted.\n", id)
	} else {
		fmt.Fprintf(u.out, "Error: task %d not found.\n", id)
	}
}

func (u *UI) toggleTask() {
	fmt.Fprintln(u.out, "\n--- Mark Complete/Incomplete ---")
	id, ok := u.readID()
	if !ok {
		return
	}
	task, err := u.tasks.Toggle(id)
	if err != nil {
		fmt.Fprintf(u.out, "Error: %v\n", err)
		return
	}
	state := "incomplete"
	if task.Completed {
		state = "complete"
	}
	fmt.Fprintf(u.out, "Task %d marked %s.\n", task.ID, state)
}

func (u *UI) readID() (int64, bool) {
	fmt.Fprint(u.out, "Enter task ID: ")
	line, ok := u.readLine()
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		fmt.Fprintln(u.out, "Please enter a valid task ID.")
		return 0, false
	}
	return id, true
}

func (u *UI) readLine() (string, bool) {
	if !u.in.Scan() {
		return "", false
	}
	return u.in.Text(), true
}
