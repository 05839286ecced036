package main

import (
	"os"

	"todoapp/internal/console"
	"todoapp/internal/service"
	"todoapp/internal/storage/memory"
)

func main() {
	tasks := service.NewTasks(memory.New())
	ui := console.New(tasks, os.Stdin, os.Stdout)
	ui.Run()
}
