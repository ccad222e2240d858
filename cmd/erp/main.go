package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/altenburg/minierp/internal/config"
	"github.com/altenburg/minierp/internal/docsink"
	"github.com/altenburg/minierp/internal/domain/models"
	"github.com/altenburg/minierp/internal/errslot"
	"github.com/altenburg/minierp/internal/scheduler"
	searchsvc "github.com/altenburg/minierp/internal/service/search"
	syncsvc "github.com/altenburg/minierp/internal/service/sync"
	"github.com/altenburg/minierp/internal/session"
	"github.com/altenburg/minierp/pkg/clients/erp"
	"github.com/altenburg/minierp/pkg/logger"
)

func main() {
	serverFlag := flag.String("server", "", "override the API base URL")
	envFile := flag.String("env", "", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}
	if *serverFlag != "" {
		cfg.API.BaseURL = strings.TrimRight(*serverFlag, "/")
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sink, err := docsink.NewFileSink(cfg.Client.DownloadDir)
	if err != nil {
		baseLogger.Fatal("failed to init download dir", zap.Error(err))
	}

	client := erp.NewClient(cfg.API)
	sess := session.NewManager()
	slot := errslot.New()
	engine := syncsvc.NewEngine(client, sess, slot, sink, cfg.Client.InvoiceFileName, baseLogger.Named("svc.sync"))
	controller := searchsvc.NewController(engine)

	stdin := bufio.NewScanner(os.Stdin)
	engine.SetConfirmFunc(func(id int64) bool {
		fmt.Printf("Delete product %d? [y/N] ", id)
		if !stdin.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(stdin.Text()))
		return answer == "y" || answer == "yes"
	})

	sched := scheduler.New(cfg.Client.RefreshCron, controller, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	a := &app{
		engine:     engine,
		controller: controller,
		session:    sess,
		slot:       slot,
		stdin:      stdin,
	}
	a.run()
}

type pendingEdit struct {
	id    int64
	patch models.ProductInput
}

type app struct {
	engine     *syncsvc.Engine
	controller *searchsvc.Controller
	session    *session.Manager
	slot       *errslot.Slot
	stdin      *bufio.Scanner

	// Transient buffers mirroring the product shape; kept on failure so a
	// bare `add` / `edit` resubmits, discarded on success or cancel.
	draft *models.ProductInput
	edit  *pendingEdit
}

func (a *app) run() {
	ctx := context.Background()

	fmt.Println("Mini ERP Warenbestand. Type 'help' for commands.")
	for {
		fmt.Print("> ")
		if !a.stdin.Scan() {
			return
		}

		fields := strings.Fields(a.stdin.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "login":
			a.login(ctx, args)
		case "logout":
			a.session.Logout()
			fmt.Println("Logged out.")
		case "list":
			if a.controller.Filter() == "" {
				_ = a.controller.Activate(ctx)
			} else {
				_ = a.controller.SetFilter(ctx, "")
			}
			a.render()
		case "search":
			_ = a.controller.SetFilter(ctx, strings.Join(args, " "))
			a.render()
		case "add":
			a.add(ctx, args)
		case "edit":
			a.editCmd(ctx, args)
		case "delete":
			a.remove(ctx, args)
		case "cancel":
			a.draft = nil
			a.edit = nil
			fmt.Println("Pending buffers discarded.")
		case "invoice":
			if err := a.engine.DownloadInvoice(ctx); err != nil {
				a.render()
				continue
			}
			fmt.Println("Delivery note saved.")
		case "total":
			fmt.Printf("GESAMTBESTAND WERT: %s EUR\n", a.engine.Products().TotalValue().StringFixed(2))
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help'.")
		}
	}
}

func (a *app) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <username> <password>")
		return
	}

	a.session.Login(args[0], args[1])
	// The login form always succeeds locally; the first scoped read
	// decides whether the credentials actually hold.
	if err := a.controller.Activate(ctx); err != nil {
		a.render()
		return
	}
	fmt.Printf("Logged in as %s.\n", a.session.Username())
	a.render()
}

func (a *app) add(ctx context.Context, args []string) {
	if len(args) > 0 {
		draft, err := parseInput(args)
		if err != nil {
			fmt.Println("usage: add <name> <quantity> <price>")
			return
		}
		a.draft = &draft
	}
	if a.draft == nil {
		fmt.Println("usage: add <name> <quantity> <price>")
		return
	}

	if err := a.engine.Create(ctx, *a.draft); err == nil {
		a.draft = nil
	}
	a.render()
}

func (a *app) editCmd(ctx context.Context, args []string) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Println("usage: edit <id> <name> <quantity> <price>")
			return
		}

		patch, err := parseInput(args[1:])
		if err != nil {
			fmt.Println("usage: edit <id> <name> <quantity> <price>")
			return
		}
		a.edit = &pendingEdit{id: id, patch: patch}
	}
	if a.edit == nil {
		fmt.Println("usage: edit <id> <name> <quantity> <price>")
		return
	}

	if err := a.engine.Update(ctx, a.edit.id, a.edit.patch); err == nil {
		a.edit = nil
	}
	a.render()
}

func (a *app) remove(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <id>")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("usage: delete <id>")
		return
	}

	_ = a.engine.Remove(ctx, id)
	a.render()
}

func (a *app) render() {
	if msg := a.slot.Message(); msg != "" {
		fmt.Printf("! %s\n", msg)
	}
	if a.session.Status() != session.StatusAuthenticated {
		return
	}

	products := a.engine.Products()
	if len(products) == 0 {
		fmt.Println("Keine Produkte gefunden")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tProduktname\tMenge\tPreis (EUR)\tGesamtwert (EUR)")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\n", p.ID, p.Name, p.Quantity, p.Price, p.Price*float64(p.Quantity))
	}
	_ = w.Flush()
	fmt.Printf("GESAMTBESTAND WERT: %s EUR\n", products.TotalValue().StringFixed(2))
}

func parseInput(args []string) (models.ProductInput, error) {
	if len(args) != 3 {
		return models.ProductInput{}, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}

	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return models.ProductInput{}, fmt.Errorf("invalid quantity: %w", err)
	}

	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return models.ProductInput{}, fmt.Errorf("invalid price: %w", err)
	}

	return models.ProductInput{Name: args[0], Quantity: quantity, Price: price}, nil
}

func printHelp() {
	fmt.Println(`Commands:
  login <username> <password>   submit credentials (verified on first read)
  logout                        end the session
  list                          show the full inventory
  search <term>                 filter by name substring
  add <name> <qty> <price>      create a product
  edit <id> <name> <qty> <price>  replace a product
  delete <id>                   delete a product (asks for confirmation)
  cancel                        discard pending add/edit buffers
  invoice                       download the delivery note PDF
  total                         show the total inventory value
  quit                          leave`)
}
