// Package console implements the text menu front-end over a crud.Dispatcher.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/miguelzg1911/product-crud-client/internal/crud"
)

type state int

const (
	stateMenu state = iota
	stateAwaitingOption
	stateRunning
	stateExit
)

const optionExit = "5"

var menuOptions = map[string]crud.Intent{
	"1": crud.IntentList,
	"2": crud.IntentCreate,
	"3": crud.IntentUpdate,
	"4": crud.IntentDelete,
}

type field struct {
	prompt string
	set    func(*crud.Input, string)
}

func setID(in *crud.Input, v string)    { in.ID = v }
func setName(in *crud.Input, v string)  { in.Name = v }
func setPrice(in *crud.Input, v string) { in.Price = v }

var prompts = map[crud.Intent][]field{
	crud.IntentCreate: {
		{"Product name: ", setName},
		{"Price: ", setPrice},
	},
	crud.IntentUpdate: {
		{"ID of the product to update: ", setID},
		{"New name: ", setName},
		{"New price: ", setPrice},
	},
	crud.IntentDelete: {
		{"ID of the product to delete: ", setID},
	},
}

// Console reads menu choices from in and writes prompts and results to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	d   *crud.Dispatcher
}

// New returns a Console bound to the given streams.
func New(in io.Reader, out io.Writer, d *crud.Dispatcher) *Console {
	return &Console{in: bufio.NewReader(in), out: out, d: d}
}

// Run loops over the menu until the user picks Exit, input ends, or ctx is done.
// Operation failures are reported to the user and never end the loop.
func (c *Console) Run(ctx context.Context) error {
	st := stateMenu
	var intent crud.Intent
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch st {
		case stateMenu:
			c.printMenu()
			st = stateAwaitingOption
		case stateAwaitingOption:
			option, err := c.ask("\nSelect an option: ")
			if err != nil {
				if errors.Is(err, io.EOF) {
					st = stateExit
					continue
				}
				return err
			}
			option = strings.TrimSpace(option)
			if option == optionExit {
				st = stateExit
				continue
			}
			var ok bool
			intent, ok = menuOptions[option]
			if !ok {
				c.println("\nInvalid option.")
				st = stateMenu
				continue
			}
			st = stateRunning
		case stateRunning:
			if err := c.runOperation(ctx, intent); err != nil {
				if errors.Is(err, io.EOF) {
					st = stateExit
					continue
				}
				return err
			}
			st = stateMenu
		case stateExit:
			c.println("\nGoodbye!")
			return nil
		}
	}
}

func (c *Console) runOperation(ctx context.Context, intent crud.Intent) error {
	var in crud.Input
	for _, f := range prompts[intent] {
		v, err := c.ask(f.prompt)
		if err != nil {
			return err
		}
		f.set(&in, v)
	}
	out, err := c.d.Dispatch(ctx, intent, in)
	c.present(intent, out, err)
	return nil
}

func (c *Console) printMenu() {
	c.println("\n==============================")
	c.println("PRODUCT CRUD MENU")
	c.println("1. List products")
	c.println("2. Create product")
	c.println("3. Update product")
	c.println("4. Delete product")
	c.println("5. Exit")
	c.println("==============================")
}

// ask prints prompt and reads one line. A final line without a newline is
// returned before io.EOF is reported on the next call.
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
