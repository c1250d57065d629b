package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grocymate/core/internal/agent"
)

// NewReplCommand creates the repl command: a line-driven session for
// exercising the engine by hand, playing the role of the voice layer.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session against the order engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAgent()
			if err != nil {
				return err
			}
			runRepl(a)
			return nil
		},
	}
}

func runRepl(a *agent.Agent) {
	s := a.NewSession()
	sc := bufio.NewScanner(os.Stdin)
	fmt.Println("grocymate session. type 'help' for commands, 'quit' to exit.")
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, rest := fields[0], fields[1:]
		switch cmd {
		case "quit", "exit":
			return
		case "help":
			fmt.Print(replHelp)
		case "register":
			// register <name> <email> <password> <address> <mobile>
			if len(rest) < 5 {
				fmt.Println("usage: register <name> <email> <password> <address> <mobile>")
				continue
			}
			u, err := s.Register(rest[0], rest[1], rest[2], rest[3], rest[4])
			report(err, func() { fmt.Printf("registered and logged in as %s\n", u.Email) })
		case "login":
			if len(rest) < 2 {
				fmt.Println("usage: login <email> <password...>")
				continue
			}
			u, err := s.Login(rest[0], strings.Join(rest[1:], " "))
			report(err, func() { fmt.Printf("welcome back %s\n", u.Name) })
		case "add":
			// add <item name...> [qty]
			name, qty := nameAndQty(rest)
			p, err := s.FindProduct(name)
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			res, err := s.AddToCart(p.ID, qty)
			report(err, func() {
				fmt.Printf("added %dx %s (Rs.%d). subtotal Rs.%d\n", qty, p.Name, qty*p.Price, res.Subtotal)
				if res.BudgetExceeded {
					fmt.Printf("note: over your budget limit of Rs.%d\n", res.BudgetLimit)
				}
			})
		case "remove":
			name := strings.Join(rest, " ")
			ln, ok := s.FindInCart(name)
			if !ok {
				fmt.Printf("%q not in cart\n", name)
				continue
			}
			snap, err := s.RemoveFromCart(ln.ProductID, 0)
			report(err, func() { fmt.Printf("removed %s. subtotal Rs.%d\n", ln.Name, snap.Subtotal) })
		case "update":
			name, qty := nameAndQty(rest)
			ln, ok := s.FindInCart(name)
			if !ok {
				fmt.Printf("%q not in cart\n", name)
				continue
			}
			snap, err := s.UpdateQuantity(ln.ProductID, qty)
			report(err, func() { fmt.Printf("updated %s to %d. subtotal Rs.%d\n", ln.Name, qty, snap.Subtotal) })
		case "cart":
			snap := s.Cart()
			for _, ln := range snap.Lines {
				fmt.Printf("  %dx %s (Rs.%d each) = Rs.%d\n", ln.Quantity, ln.Name, ln.Price, ln.Quantity*ln.Price)
			}
			fmt.Printf("subtotal: Rs.%d\n", snap.Subtotal)
		case "price":
			q := s.PriceCart()
			fmt.Printf("subtotal Rs.%d, delivery Rs.%d, discount Rs.%d, total Rs.%d\n",
				q.Subtotal, q.DeliveryCharge, q.Discount, q.Total)
		case "recipe":
			snap, serves, err := s.AddRecipe(strings.Join(rest, " "))
			report(err, func() { fmt.Printf("added recipe ingredients (serves %d). subtotal Rs.%d\n", serves, snap.Subtotal) })
		case "review":
			o, err := s.ReviewOrder()
			report(err, func() {
				fmt.Printf("order %s: %d items, total Rs.%d to %s. confirm yes|no\n",
					o.OrderID, len(o.Items), o.Total, o.DeliveryAddress)
			})
		case "confirm":
			yes := len(rest) > 0 && strings.EqualFold(rest[0], "yes")
			res, err := s.ConfirmOrder(yes)
			report(err, func() {
				if !res.Confirmed {
					fmt.Println("order cancelled")
					return
				}
				fmt.Printf("order %s confirmed, total Rs.%d", res.Order.OrderID, res.Order.Total)
				if res.EmailSent {
					fmt.Print(" (receipt emailed)")
				}
				fmt.Println()
			})
		case "history":
			all, err := s.OrderHistory()
			report(err, func() {
				for _, o := range all {
					fmt.Printf("  %s  %-16s  Rs.%d\n", o.OrderID, o.Status, o.Total)
				}
			})
		case "last":
			o, ok, err := s.LastOrder()
			if err != nil {
				fmt.Println("error:", err)
			} else if !ok {
				fmt.Println("no previous orders")
			} else {
				fmt.Printf("%s  %s  Rs.%d\n", o.OrderID, o.Status, o.Total)
			}
		case "reorder":
			snap, err := s.Reorder(strings.Join(rest, " "))
			report(err, func() { fmt.Printf("cart subtotal now Rs.%d\n", snap.Subtotal) })
		case "status":
			if len(rest) < 1 {
				fmt.Println("usage: status <order-id>")
				continue
			}
			o, err := s.OrderStatus(rest[0])
			report(err, func() { fmt.Printf("%s: %s (Rs.%d)\n", o.OrderID, o.Status, o.Total) })
		case "advance":
			if len(rest) < 1 {
				fmt.Println("usage: advance <order-id>")
				continue
			}
			o, err := s.AdvanceStatus(rest[0])
			report(err, func() { fmt.Printf("%s is now %s\n", o.OrderID, o.Status) })
		case "budget":
			if len(rest) < 1 {
				fmt.Println("usage: budget <amount>")
				continue
			}
			n, _ := strconv.Atoi(rest[0])
			s.SetBudgetLimit(n)
			fmt.Printf("budget limit Rs.%d\n", n)
		case "diet":
			filter := strings.Join(rest, " ")
			s.SetDietaryFilter(filter)
			fmt.Printf("dietary filter: %s\n", filter)
		case "recommend":
			recs, err := s.Recommendations()
			report(err, func() {
				for _, p := range recs {
					fmt.Printf("  %s - Rs.%d (%s)\n", p.Name, p.Price, p.Brand)
				}
			})
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

// nameAndQty splits trailing digits off "<name...> [qty]"; qty defaults to 1.
func nameAndQty(args []string) (string, int) {
	qty := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			qty = n
			args = args[:len(args)-1]
		}
	}
	return strings.Join(args, " "), qty
}

func report(err error, ok func()) {
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	ok()
}

const replHelp = `commands:
  register <name> <email> <password> <address> <mobile>
  login <email> <password...>       reset handled by the voice layer
  add <item> [qty]   remove <item>   update <item> <qty>
  cart   price   recipe <name>
  review   confirm yes|no
  history   last   status <id>   reorder [id|last]   advance <id>
  budget <amount>   diet <tag|none>   recommend
  quit
`
