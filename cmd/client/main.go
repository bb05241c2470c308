package main

import (
	"flag"
	"log"

	"chatify/internal/client"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	host := flag.String("host", "localhost:5001", "server host:port")
	user := flag.String("user", "", "user id to announce for presence")
	peer := flag.String("to", "", "user id to chat with")
	flag.Parse()

	if *user == "" || *peer == "" {
		log.Fatal("both -user and -to are required")
	}

	p := tea.NewProgram(client.NewModel(*host, *user, *peer))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
