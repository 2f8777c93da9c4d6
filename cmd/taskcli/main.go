// taskcli is a command line client for TaskManagerService.
//
// It keeps the bearer token in a session file next to the user's home
// directory and replays it on every request, so login is needed only once
// per token lifetime.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"TaskManagerService/client"
)

const defaultServer = "http://localhost:5000"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	session, err := client.LoadSession(sessionPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading session: %v\n", err)
		os.Exit(1)
	}

	server := os.Getenv("TASKCLI_SERVER")
	if server == "" {
		server = defaultServer
	}
	api := client.New(server, session.Token)

	command := os.Args[1]
	switch command {
	case "register":
		handleRegister(api, session)
	case "login":
		handleLogin(api, session)
	case "logout":
		handleLogout(session)
	case "whoami":
		handleWhoami(api)
	case "add":
		handleAdd(api)
	case "list":
		handleList(api)
	case "get":
		handleGet(api)
	case "update":
		handleUpdate(api)
	case "done":
		handleDone(api)
	case "delete":
		handleDelete(api)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printHelp()
		os.Exit(1)
	}
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskcli.json"
	}
	return filepath.Join(home, ".taskcli.json")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func handleRegister(api *client.Client, session *client.Session) {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	name := cmd.String("name", "", "Your name")
	email := cmd.String("email", "", "Email address")
	password := cmd.String("password", "", "Password")
	cmd.Parse(os.Args[2:])

	if *name == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: --name, --email and --password are required")
		os.Exit(1)
	}

	token, user, err := api.Register(*name, *email, *password)
	if err != nil {
		fatal(err)
	}
	session.Token = token
	session.User = user
	if err := session.Save(); err != nil {
		fatal(err)
	}
	fmt.Printf("Registered and logged in as %s\n", user.Email)
}

func handleLogin(api *client.Client, session *client.Session) {
	cmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := cmd.String("email", "", "Email address")
	password := cmd.String("password", "", "Password")
	cmd.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Error: --email and --password are required")
		os.Exit(1)
	}

	token, user, err := api.Login(*email, *password)
	if err != nil {
		fatal(err)
	}
	session.Token = token
	session.User = user
	if err := session.Save(); err != nil {
		fatal(err)
	}
	fmt.Printf("Logged in as %s\n", user.Email)
}

func handleLogout(session *client.Session) {
	if err := session.Clear(); err != nil {
		fatal(err)
	}
	fmt.Println("Logged out")
}

func handleWhoami(api *client.Client) {
	user, err := api.Me()
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
}

func handleAdd(api *client.Client) {
	cmd := flag.NewFlagSet("add", flag.ExitOnError)
	title := cmd.String("title", "", "Task title")
	desc := cmd.String("desc", "", "Task description")
	due := cmd.String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Parse(os.Args[2:])

	if *title == "" {
		fmt.Fprintln(os.Stderr, "Error: --title is required")
		os.Exit(1)
	}

	task, err := api.CreateTask(*title, *desc, *due)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Added task %s\n", task.ID)
}

func handleList(api *client.Client) {
	tasks, err := api.ListTasks()
	if err != nil {
		fatal(err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return
	}
	for _, task := range tasks {
		line := fmt.Sprintf("%s: %s [%s]", task.ID, task.Title, task.Status)
		if task.DueDate != nil {
			line += " due " + task.DueDate.Format("2006-01-02")
		}
		fmt.Println(line)
	}
}

func handleGet(api *client.Client) {
	cmd := flag.NewFlagSet("get", flag.ExitOnError)
	id := cmd.String("id", "", "Task ID")
	cmd.Parse(os.Args[2:])

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		os.Exit(1)
	}
	task, err := api.GetTask(*id)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s: %s [%s]\n", task.ID, task.Title, task.Status)
	if task.Description != "" {
		fmt.Println(task.Description)
	}
	if task.DueDate != nil {
		fmt.Println("Due:", task.DueDate.Format("2006-01-02"))
	}
}

func handleUpdate(api *client.Client) {
	cmd := flag.NewFlagSet("update", flag.ExitOnError)
	id := cmd.String("id", "", "Task ID")
	title := cmd.String("title", "", "New title")
	desc := cmd.String("desc", "", "New description")
	status := cmd.String("status", "", "New status (pending|in-progress|completed)")
	due := cmd.String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Parse(os.Args[2:])

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		os.Exit(1)
	}

	fields := map[string]string{}
	cmd.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			fields["title"] = *title
		case "desc":
			fields["description"] = *desc
		case "status":
			fields["status"] = *status
		case "due":
			fields["dueDate"] = *due
		}
	})
	if len(fields) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to update")
		os.Exit(1)
	}

	task, err := api.UpdateTask(*id, fields)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Updated task %s [%s]\n", task.ID, task.Status)
}

func handleDone(api *client.Client) {
	cmd := flag.NewFlagSet("done", flag.ExitOnError)
	id := cmd.String("id", "", "Task ID")
	cmd.Parse(os.Args[2:])

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		os.Exit(1)
	}
	task, err := api.UpdateTask(*id, map[string]string{"status": "completed"})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Task %s marked as completed\n", task.ID)
}

func handleDelete(api *client.Client) {
	cmd := flag.NewFlagSet("delete", flag.ExitOnError)
	id := cmd.String("id", "", "Task ID")
	cmd.Parse(os.Args[2:])

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Error: --id is required")
		os.Exit(1)
	}
	if err := api.DeleteTask(*id); err != nil {
		fatal(err)
	}
	fmt.Printf("Task %s deleted\n", *id)
}

func printHelp() {
	fmt.Println(`Usage: taskcli <command> [flags]

Commands:
  register --name=NAME --email=EMAIL --password=PASS  Create an account
  login    --email=EMAIL --password=PASS              Log in
  logout                                              Forget the stored token
  whoami                                              Show the current account
  add      --title="..." [--desc="..."] [--due=DATE]  Add a task
  list                                                List your tasks
  get      --id=ID                                    Show one task
  update   --id=ID [--title|--desc|--status|--due]    Update task fields
  done     --id=ID                                    Mark a task completed
  delete   --id=ID                                    Delete a task

The server address is taken from TASKCLI_SERVER (default http://localhost:5000).
The session token is stored in ~/.taskcli.json until logout.`)
}
