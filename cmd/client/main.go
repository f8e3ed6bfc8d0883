// Command client is a small terminal client for a devconnect server. It keeps
// a session token under the user config dir and gates protected commands the
// same way the web client gates protected routes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dkozyrev/devconnect/pkg/client/api"
	"github.com/dkozyrev/devconnect/pkg/client/guard"
	"github.com/dkozyrev/devconnect/pkg/client/session"
)

func main() {
	serverURL := flag.String("server", envOr("DEVCONNECT_URL", "http://localhost:8080"), "server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	storePath, err := session.DefaultStorePath()
	if err != nil {
		log.Fatalf("resolve token store: %v", err)
	}
	store := session.NewFileStore(storePath)
	client := api.New(*serverURL)
	manager, err := session.NewManager(client, store, func(msg string) {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	})
	if err != nil {
		log.Fatalf("init session: %v", err)
	}

	ctx := context.Background()
	if err := run(ctx, manager, client, args); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, manager *session.Manager, client *api.Client, args []string) error {
	switch args[0] {
	case "register":
		vals := promptMissing(args[1:], "Name", "Email", "Password")
		if err := manager.Register(ctx, vals[0], vals[1], vals[2]); err != nil {
			return err
		}
		fmt.Println("Registered and logged in.")
		return nil

	case "login":
		vals := promptMissing(args[1:], "Email", "Password")
		if err := manager.Login(ctx, vals[0], vals[1]); err != nil {
			return err
		}
		fmt.Println("Logged in.")
		return nil

	case "logout":
		if err := manager.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil

	case "whoami":
		st, ok := requireSession(ctx, manager)
		if !ok {
			return fmt.Errorf("not logged in")
		}
		fmt.Printf("%s <%s>\n", st.User.Name, st.User.Email)
		return nil

	case "feed":
		_, ok := requireSession(ctx, manager)
		if !ok {
			return fmt.Errorf("not logged in")
		}
		posts, err := client.Feed(ctx, manager.Token())
		if err != nil {
			return err
		}
		for _, p := range posts {
			fmt.Printf("%s  %s\n  %s\n", p.Date, p.Name, p.Text)
		}
		return nil

	case "post":
		_, ok := requireSession(ctx, manager)
		if !ok {
			return fmt.Errorf("not logged in")
		}
		text := strings.Join(args[1:], " ")
		if text == "" {
			return fmt.Errorf("post: text is required")
		}
		if _, err := client.CreatePost(ctx, manager.Token(), text); err != nil {
			return err
		}
		fmt.Println("Posted.")
		return nil
	}

	usage()
	return fmt.Errorf("unknown command %q", args[0])
}

// requireSession resolves the session and applies the route-guard decision:
// the protected command runs only when the guard says Render.
func requireSession(ctx context.Context, manager *session.Manager) (session.State, bool) {
	manager.LoadUser(ctx)
	g := guard.New(manager)
	if g.Check() != guard.Render {
		fmt.Fprintln(os.Stderr, "Please log in first.")
		return session.State{}, false
	}
	return manager.State(), true
}

func promptMissing(args []string, labels ...string) []string {
	vals := make([]string, len(labels))
	for i := range labels {
		if i < len(args) && args[i] != "" {
			vals[i] = args[i]
			continue
		}
		fmt.Printf("%s: ", labels[i])
		fmt.Scanln(&vals[i])
	}
	return vals
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client [-server URL] <command>

commands:
  register [name email password]   create an account and log in
  login [email password]           log in
  logout                           log out
  whoami                           show the current user
  feed                             show the post feed
  post <text>                      publish a post`)
}
