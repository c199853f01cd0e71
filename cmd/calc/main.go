/*
main.go - Interactive calculator REPL

PURPOSE:
  A line-oriented front end over the calc facade. One command per
  line; arithmetic commands take the operation word and two operands.

COMMANDS:
  add|subtract|multiply|divide|power|root <a> <b>
  history    Show the current history
  undo       Undo the last calculation or clear
  redo       Redo the last undone action
  clear      Clear the history
  save       Persist the history now
  load       Reload the history from disk
  help       Show this list
  exit       Save and quit

SEE ALSO:
  - calc/calculator.go: The facade driving every command
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/warp/calc-engine/calc"
	"github.com/warp/calc-engine/calc/archive"
)

func main() {
	historyPath := flag.String("history", "data/history.csv", "CSV history file path")
	auditPath := flag.String("audit-log", "data/calculator.log", "audit log file path")
	flag.Parse()

	auditFile, err := openAuditLog(*auditPath)
	if err != nil {
		log.Fatalf("Failed to open audit log: %v", err)
	}
	defer auditFile.Close()

	calculator, err := calc.NewCalculator(calc.DefaultConfig(), archive.NewCSVFile(*historyPath), auditFile)
	if err != nil {
		log.Fatalf("Failed to initialize calculator: %v", err)
	}

	ctx := context.Background()
	if err := calculator.Load(ctx); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	fmt.Println("Calculator ready. Type 'help' for commands.")
	runLoop(ctx, calculator, os.Stdin)

	if err := calculator.Save(ctx); err != nil {
		fmt.Printf("Warning: could not save history: %v\n", err)
	} else {
		fmt.Println("History saved.")
	}
	fmt.Println("Goodbye!")
}

func runLoop(ctx context.Context, c *calc.Calculator, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nInput terminated.")
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "exit", "quit":
			return
		case "help":
			printHelp()
		case "history":
			printHistory(c.History())
		case "undo":
			reportNoOp(c.Undo(ctx), "Nothing to undo")
		case "redo":
			reportNoOp(c.Redo(ctx), "Nothing to redo")
		case "clear":
			if err := c.ClearHistory(ctx); err != nil {
				fmt.Printf("Warning: %v\n", err)
			}
			fmt.Println("History cleared")
		case "save":
			if err := c.Save(ctx); err != nil {
				fmt.Printf("Error: %v\n", err)
			} else {
				fmt.Println("History saved successfully")
			}
		case "load":
			if err := c.Load(ctx); err != nil {
				fmt.Printf("Error loading history: %v\n", err)
			} else {
				fmt.Println("History loaded")
			}
		default:
			compute(ctx, c, fields)
		}
	}
}

func compute(ctx context.Context, c *calc.Calculator, fields []string) {
	if len(fields) != 3 {
		fmt.Printf("Unknown command: %q. Type 'help' for commands.\n", fields[0])
		return
	}
	a, err := c.ParseOperand(fields[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	b, err := c.ParseOperand(fields[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	record, err := c.Compute(ctx, fields[0], a, b)
	var obsErr *calc.AggregateObserverError
	if errors.As(err, &obsErr) {
		// Calculation committed; only side effects failed.
		fmt.Printf("Warning: %v\n", obsErr)
		err = nil
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("\nResult: %s\n", record.Result)
}

func printHistory(records []calc.Calculation) {
	if len(records) == 0 {
		fmt.Println("No calculations in history")
		return
	}
	for i, r := range records {
		fmt.Printf("%d. %s\n", i+1, r)
	}
}

func reportNoOp(err error, noOpMsg string) {
	switch {
	case err == nil:
		fmt.Println("Done")
	case calc.IsNoOp(err):
		fmt.Println(noOpMsg)
	default:
		fmt.Printf("Warning: %v\n", err)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  add|subtract|multiply|divide|power|root <a> <b>")
	fmt.Println("  history  - show calculation history")
	fmt.Println("  undo     - undo the last action")
	fmt.Println("  redo     - redo the last undone action")
	fmt.Println("  clear    - clear the history")
	fmt.Println("  save     - save history to disk")
	fmt.Println("  load     - reload history from disk")
	fmt.Println("  exit     - save and quit")
}

func openAuditLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
