package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Ahmedmamdouh007/lala-store/internal/api"
	"github.com/Ahmedmamdouh007/lala-store/internal/cart"
	"github.com/Ahmedmamdouh007/lala-store/internal/catalog"
	"github.com/Ahmedmamdouh007/lala-store/internal/checkout"
	"github.com/Ahmedmamdouh007/lala-store/internal/config"
	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
	"github.com/Ahmedmamdouh007/lala-store/internal/notify"
	"github.com/Ahmedmamdouh007/lala-store/internal/payment"
	"github.com/Ahmedmamdouh007/lala-store/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	client := api.New(cfg.BackendURL, cfg.HTTPTimeout, zlog)
	notes := notify.New(cfg.NotificationTTL)
	notes.Subscribe(func(n *notify.Notification) {
		marker := "✓"
		if n.Kind == notify.KindError {
			marker = "!"
		}
		fmt.Printf("[%s] %s\n", marker, n.Message)
	})

	store := cart.NewStore(client, notes, zlog, cfg.UserID)
	resolver := catalog.NewResolver(client, zlog, cfg.BreakerFailures, cfg.BreakerCooldown)

	factory := func() *payment.Orchestrator {
		key, err := client.StripeConfig(context.Background())
		if err != nil {
			key = ""
		}
		confirmer := payment.NewStripeConfirmer(key, cfg.HTTPTimeout)
		return payment.NewOrchestrator(client, confirmer, zlog)
	}

	session := &session{
		client:   client,
		store:    store,
		resolver: resolver,
		notes:    notes,
		in:       bufio.NewScanner(os.Stdin),
	}
	session.sequencer = checkout.NewSequencer(
		store, client, factory, notes, zlog, cfg.Currency,
		func() { fmt.Println("-- back to home --"); session.home() },
		cfg.NavigateDelay,
	)

	ctx := context.Background()
	store.Load(ctx)
	session.run(ctx)
}

type session struct {
	client    *api.Client
	store     *cart.Store
	resolver  *catalog.Resolver
	sequencer *checkout.Sequencer
	notes     *notify.Notifier
	in        *bufio.Scanner
}

func (s *session) run(ctx context.Context) {
	fmt.Println("LALA STORE — commands: home men women all detail <id> cart add <id> [qty] [size] rm <item> qty <item> <n> orders checkout quit")
	for {
		fmt.Print("> ")
		if !s.in.Scan() {
			return
		}
		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "home":
			s.home()
		case "men":
			s.listing(ctx, catalog.GenderView(domain.GenderMen))
		case "women":
			s.listing(ctx, catalog.GenderView(domain.GenderWomen))
		case "all":
			s.listing(ctx, catalog.AllView())
		case "detail":
			if id, ok := argInt(fields, 1); ok {
				s.detail(ctx, id)
			}
		case "cart":
			s.showCart()
		case "add":
			if id, ok := argInt(fields, 1); ok {
				qty := 1
				if q, ok := argInt(fields, 2); ok {
					qty = int(q)
				}
				size := ""
				if len(fields) > 3 {
					size = fields[3]
				}
				s.store.AddItem(ctx, id, qty, size)
			}
		case "rm":
			if id, ok := argInt(fields, 1); ok {
				s.store.RemoveItem(ctx, id)
			}
		case "qty":
			id, ok1 := argInt(fields, 1)
			n, ok2 := argInt(fields, 2)
			if ok1 && ok2 {
				s.store.ChangeQuantity(ctx, id, int(n))
			}
		case "orders":
			s.orders(ctx)
		case "checkout":
			s.checkout(ctx)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command")
		}
	}
}

func (s *session) home() {
	data := s.resolver.Home(context.Background())
	if data.CategoriesSource == catalog.SourceFallback {
		fmt.Println("(showing demo categories)")
	}
	for _, c := range data.Categories {
		fmt.Printf("  [%d] %s — %s\n", c.ID, c.Name, c.Description)
	}
	fmt.Println("Featured:")
	if data.FeaturedSource == catalog.SourceFallback {
		fmt.Println("(showing demo data)")
	}
	printProducts(data.Featured)
}

func (s *session) listing(ctx context.Context, view catalog.View) {
	res, err := s.resolver.Resolve(ctx, view)
	if err != nil {
		fmt.Println("No products available at the moment. Try again later.")
		return
	}
	if res.Source == catalog.SourceFallback {
		fmt.Println("(showing demo data)")
	}
	printProducts(res.Products)
}

func (s *session) detail(ctx context.Context, id int64) {
	res, err := s.resolver.Resolve(ctx, catalog.DetailView(id))
	if err != nil || len(res.Products) == 0 {
		fmt.Println("Product not found.")
		return
	}
	p := res.Products[0]
	fmt.Printf("%s — $%s\n%s\n", p.Name, p.Price.StringFixed(2), p.Description)
	if len(p.Sizes) > 0 {
		fmt.Printf("Sizes: %s\n", strings.Join(p.Sizes, ", "))
	}
	for label, values := range p.SizeChart {
		fmt.Printf("  %s: %s\n", label, strings.Join(values, " / "))
	}
}

func (s *session) showCart() {
	items := s.store.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("  [%d] %s x%d — $%s\n", item.ID, item.ProductName, item.Quantity,
			item.Price.Mul(qtyDec(item.Quantity)).StringFixed(2))
	}
	fmt.Printf("Subtotal: $%s\nShipping: Free\nTotal: $%s\n",
		s.store.Total().StringFixed(2), s.store.Total().StringFixed(2))
}

func (s *session) orders(ctx context.Context) {
	orders, err := s.client.UserOrders(ctx, s.store.UserID())
	if err != nil {
		fmt.Println(api.UserMessage(err, "Could not load orders."))
		return
	}
	for _, o := range orders {
		fmt.Printf("  #%d %s $%s (%s) %s\n", o.ID, o.Status, o.TotalAmount, o.PaymentMethod, o.CreatedAt)
	}
}

func (s *session) checkout(ctx context.Context) {
	in := checkout.Input{
		ShippingAddress: s.prompt("Shipping address"),
		CustomerName:    s.prompt("Customer name"),
		Phone:           s.prompt("Phone"),
	}

	methods := "cod paypal bank_transfer"
	if s.sequencer.CardAvailable(ctx) {
		methods = "card visa " + methods
	}
	in.Method = domain.PaymentMethod(s.prompt("Payment method (" + methods + ")"))

	if in.Method.RequiresCard() {
		// The capture widget collects the card and hands back a pm_ token;
		// raw card fields never pass through here.
		in.Card = payment.CardHandle(s.prompt("Payment method token from the card widget"))
	}

	s.sequencer.Checkout(ctx, in)
}

func (s *session) prompt(label string) string {
	fmt.Print(label + ": ")
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func printProducts(products []domain.Product) {
	for _, p := range products {
		fmt.Printf("  [%d] %s — $%s (%s, stock %d)\n",
			p.ID, p.Name, p.Price.StringFixed(2), p.Gender, p.StockQuantity)
	}
}

func argInt(fields []string, i int) (int64, bool) {
	if len(fields) <= i {
		fmt.Println("missing argument")
		return 0, false
	}
	n, err := strconv.ParseInt(fields[i], 10, 64)
	if err != nil {
		fmt.Println("not a number:", fields[i])
		return 0, false
	}
	return n, true
}

func qtyDec(q int) decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}
