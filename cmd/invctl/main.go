// Command invctl is a terminal client for the inventory service. It mirrors
// the server's role rules when choosing what to offer, but every decision is
// re-checked server side; failed calls are reported as messages, never a crash.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spec-kit/inventory-service/pkg/client"
)

const sessionFileName = ".invctl.json"

type session struct {
	BaseURL  string `json:"base_url"`
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func main() {
	baseURL := flag.String("server", envOr("INVENTORY_SERVER", "http://127.0.0.1:8000"), "inventory service base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(*baseURL, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(baseURL, command string, args []string) error {
	ctx := context.Background()

	if command == "login" {
		return login(ctx, baseURL, args)
	}

	sess, err := loadSession()
	if err != nil {
		return fmt.Errorf("not logged in, run 'invctl login' first: %w", err)
	}
	if sess.BaseURL != "" {
		baseURL = sess.BaseURL
	}
	api := client.New(baseURL, client.WithToken(sess.Token))

	switch command {
	case "logout":
		if err := api.Logout(ctx); err != nil {
			return err
		}
		_ = os.Remove(sessionPath())
		fmt.Println("logged out")
		return nil
	case "items":
		items, err := api.Items(ctx)
		if err != nil {
			return err
		}
		printItems(items)
		return nil
	case "my-items":
		items, err := api.MyItems(ctx)
		if err != nil {
			return err
		}
		printItems(items)
		return nil
	case "item-codes":
		codes, err := api.ItemCodes(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODIGO\tTIPO\tDESCRIPCION")
		for _, code := range codes {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", code.ID, code.Codigo, code.Tipo, code.Descripcion)
		}
		return w.Flush()
	case "technicians":
		if !sess.IsAdmin {
			return fmt.Errorf("technicians requires an admin account")
		}
		users, err := api.Technicians(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tFULL NAME\tADMIN")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", user.ID, user.Username, user.FullName, user.IsAdmin)
		}
		return w.Flush()
	case "create-user":
		if !sess.IsAdmin {
			return fmt.Errorf("create-user requires an admin account")
		}
		return createUser(ctx, api, args)
	case "create-item":
		return createItem(ctx, api, args)
	case "set-status":
		return setStatus(ctx, api, args)
	case "delete-item":
		if !sess.IsAdmin {
			return fmt.Errorf("delete-item requires an admin account")
		}
		if len(args) != 1 {
			return fmt.Errorf("usage: invctl delete-item <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		if err := api.DeleteItem(ctx, id); err != nil {
			return err
		}
		fmt.Println("deleted item", id)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func login(ctx context.Context, baseURL string, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("usage: invctl login -username <name> -password <password>")
	}

	api := client.New(baseURL)
	result, err := api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := saveSession(session{
		BaseURL:  baseURL,
		Token:    result.AccessToken,
		Username: result.Username,
		IsAdmin:  result.IsAdmin,
	}); err != nil {
		return err
	}
	fmt.Printf("logged in as %s (admin=%t), token valid until %s\n",
		result.Username, result.IsAdmin, result.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

func createUser(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fullName := fs.String("full-name", "", "display name")
	isAdmin := fs.Bool("admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := api.CreateUser(ctx, *username, *password, *fullName, *isAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("created user %d (%s)\n", user.ID, user.Username)
	return nil
}

func createItem(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("create-item", flag.ContinueOnError)
	sn := fs.String("sn", "", "serial number")
	itemCodeID := fs.Int64("item-code", 0, "catalog entry id")
	tipoServicio := fs.String("servicio", "implementacion", "service type")
	estado := fs.String("estado", "En Bodega", "initial status")
	asignadoA := fs.Int64("asignado-a", 0, "assigned technician id (0 = unassigned)")
	terminal := fs.String("terminal", "", "merchant terminal (En Comercio only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := client.ItemInput{
		SN:           *sn,
		ItemCodeID:   *itemCodeID,
		TipoServicio: *tipoServicio,
		EstadoActual: *estado,
	}
	if *asignadoA > 0 {
		input.AsignadoAID = asignadoA
	}
	if *terminal != "" {
		input.TerminalComercio = terminal
	}

	item, err := api.CreateItem(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("created item %d (sn=%s)\n", item.ID, item.SN)
	return nil
}

func setStatus(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("set-status", flag.ContinueOnError)
	estado := fs.String("estado", "", "new status")
	terminal := fs.String("terminal", "", "merchant terminal (En Comercio only)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *estado == "" {
		return fmt.Errorf("usage: invctl set-status -estado <status> [-terminal <id>] <item-id>")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", fs.Arg(0))
	}

	input := client.StatusInput{EstadoActual: *estado}
	if *terminal != "" {
		input.TerminalComercio = terminal
	}
	item, err := api.UpdateItemStatus(ctx, id, input)
	if err != nil {
		return err
	}
	fmt.Printf("item %d is now %q\n", item.ID, item.EstadoActual)
	return nil
}

func printItems(items []client.Item) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSN\tCODIGO\tSERVICIO\tESTADO\tASIGNADO A\tTERMINAL")
	for _, item := range items {
		assignee := "-"
		if item.AsignadoA != nil {
			assignee = item.AsignadoA.FullName
		}
		terminal := "-"
		if item.TerminalComercio != nil {
			terminal = *item.TerminalComercio
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.SN, item.ItemCode.Codigo, item.TipoServicio, item.EstadoActual, assignee, terminal)
	}
	_ = w.Flush()
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sessionFileName
	}
	return filepath.Join(home, sessionFileName)
}

func loadSession() (*session, error) {
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return nil, err
	}
	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func saveSession(sess session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(sessionPath(), data, 0o600)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: invctl [-server URL] <command> [flags]

commands:
  login         -username <name> -password <password>
  logout
  items         list all inventory items
  my-items      list items assigned to you
  item-codes    list the hardware catalog
  technicians   list accounts (admin)
  create-user   -username -password -full-name [-admin] (admin)
  create-item   -sn -item-code [-servicio] [-estado] [-asignado-a] [-terminal]
  set-status    -estado <status> [-terminal <id>] <item-id>
  delete-item   <id> (admin)`)
}
