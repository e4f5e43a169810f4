package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"advisorbook/internal/config"
	"advisorbook/internal/domain"
	"advisorbook/internal/engine"
	"advisorbook/internal/loader"
	"advisorbook/internal/service"
	"advisorbook/internal/store"
)

func main() {
	dataFlag := flag.String("data", "", "Path to the order dataset CSV (overrides DATA_FILE)")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.DataFile = *dataFlag
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load the dataset.
	records, err := loader.Load(cfg.DataFile, logger)
	if err != nil {
		logger.Error("failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		slog.String("file", cfg.DataFile),
		slog.Int("records", len(records)),
	)

	// Engine and journal.
	book, err := engine.NewBook(records, cfg.SimOrigin, logger)
	if err != nil {
		logger.Error("failed to build order book", slog.String("error", err.Error()))
		os.Exit(1)
	}
	journal := store.NewSaleJournal()

	advisor := service.NewAdvisor(book, journal, cfg.SimOrigin, cfg.PredictWindow)

	session{advisor: advisor, out: os.Stdout}.run(os.Stdin)
}

// session is the interactive advisor loop: it reads commands from the
// user, validates argument counts, and renders advisor results. All
// diagnostic output goes through slog; everything here is user-facing.
type session struct {
	advisor *service.Advisor
	out     *os.File
}

func (s session) run(in *os.File) {
	s.printHelp()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(s.out, "Please enter a command, or help for a list of commands")
		if !scanner.Scan() {
			return
		}

		input := strings.Fields(scanner.Text())
		if len(input) == 0 {
			s.printInvalid()
			continue
		}

		fmt.Fprintln(s.out)
		switch input[0] {
		case "help":
			s.handleHelp(input)
		case "prod":
			s.handleProd()
		case "min":
			s.handleMin(input)
		case "max":
			s.handleMax(input)
		case "avg":
			s.handleAvg(input)
		case "predict":
			s.handlePredict(input)
		case "time":
			s.handleTime()
		case "step":
			s.handleStep()
		case "order":
			s.handleOrder(input)
		case "match":
			s.handleMatch(input)
		case "sales":
			s.handleSales(input)
		case "exit":
			fmt.Fprintln(s.out, "Bye")
			return
		default:
			s.printInvalid()
		}
		fmt.Fprintln(s.out)
	}
}

func (s session) handleHelp(input []string) {
	switch len(input) {
	case 1:
		s.printHelp()
	case 2:
		s.printHelpFor(input[1])
	default:
		s.printInvalid()
	}
}

var commandHelp = [][2]string{
	{"help", "Get help on the available commands"},
	{"help <cmd>", "Get help on the specified <cmd> command"},
	{"prod", "List all available products"},
	{"min", "Find minimum bid or ask for product in current time step"},
	{"max", "Find maximum bid or ask for product in current time step"},
	{"avg", "Compute average ask/bid for product over the last timestamps"},
	{"predict", "Predict max or min ask or bid for the sent product for the next time"},
	{"time", "State current time in dataset, i.e. which timeframe are we looking at"},
	{"step", "Move to next time step"},
	{"order", "Place a simulated ask or bid at the current time step"},
	{"match", "Match asks to bids for product at the current time step"},
	{"sales", "List recorded sales for product"},
	{"exit", "Leave the advisor"},
}

func (s session) printHelp() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "===============================================")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Available commands are:")
	fmt.Fprintln(s.out)
	for _, entry := range commandHelp {
		fmt.Fprintf(s.out, "%s\t\t%s\n", entry[0], entry[1])
	}
	fmt.Fprintln(s.out)
}

func (s session) printHelpFor(command string) {
	for _, entry := range commandHelp {
		if entry[0] == command {
			fmt.Fprintf(s.out, "%s\t\t%s\n", entry[0], entry[1])
			return
		}
	}
	s.printInvalid()
}

func (s session) handleProd() {
	fmt.Fprintln(s.out, "Available products:")
	for _, product := range s.advisor.Products() {
		fmt.Fprintln(s.out, product)
	}
}

func (s session) handleMin(input []string) {
	if len(input) != 3 {
		s.printInvalid()
		return
	}
	price, err := s.advisor.MinPrice(input[1], input[2])
	if err != nil {
		s.printQueryError(err, input[2], input[1], fmt.Sprintf("the current timestamp: %s", s.advisor.CurrentTime()))
		return
	}
	fmt.Fprintf(s.out, "The min %s for %s is %g\n", input[2], input[1], price)
}

func (s session) handleMax(input []string) {
	if len(input) != 3 {
		s.printInvalid()
		return
	}
	price, err := s.advisor.MaxPrice(input[1], input[2])
	if err != nil {
		s.printQueryError(err, input[2], input[1], fmt.Sprintf("the current timestamp: %s", s.advisor.CurrentTime()))
		return
	}
	fmt.Fprintf(s.out, "The max %s for %s is %g\n", input[2], input[1], price)
}

func (s session) handleAvg(input []string) {
	if len(input) != 4 {
		s.printInvalid()
		return
	}
	window, err := strconv.Atoi(input[3])
	if err != nil {
		fmt.Fprintln(s.out, "amount of timestamps is invalid. valid inputs are: numbers (1,2,3..)")
		return
	}
	avg, err := s.advisor.Average(input[1], input[2], window)
	if err != nil {
		s.printQueryError(err, input[2], input[1], fmt.Sprintf("the last %d timestamps", window))
		return
	}
	fmt.Fprintf(s.out, "The avg %s %s over the last %d was %g\n", input[1], input[2], window, avg)
}

func (s session) handlePredict(input []string) {
	if len(input) != 4 {
		s.printInvalid()
		return
	}
	prediction, err := s.advisor.Predict(input[1], input[2], input[3])
	if err != nil {
		s.printQueryError(err, input[3], input[2], "the prediction window")
		return
	}
	fmt.Fprintf(s.out, "The predicted %s %s price for %s is %g\n", input[1], input[3], input[2], prediction)
}

func (s session) handleTime() {
	fmt.Fprintf(s.out, "Current time is: %s\n", s.advisor.CurrentTime())
}

func (s session) handleStep() {
	fmt.Fprintln(s.out, "Going to next time frame.")
	s.advisor.Step()
	s.handleTime()
}

func (s session) handleOrder(input []string) {
	if len(input) != 5 {
		s.printInvalid()
		return
	}
	price, err := strconv.ParseFloat(input[3], 64)
	if err != nil {
		fmt.Fprintln(s.out, "price is invalid. valid inputs are: numbers")
		return
	}
	amount, err := strconv.ParseFloat(input[4], 64)
	if err != nil {
		fmt.Fprintln(s.out, "amount is invalid. valid inputs are: numbers")
		return
	}
	rec, err := s.advisor.PlaceOrder(input[1], input[2], price, amount)
	if err != nil {
		s.printQueryError(err, input[1], input[2], "")
		return
	}
	fmt.Fprintf(s.out, "Placed %s for %s: %g at %g\n", rec.Side, rec.Product, rec.Amount, rec.Price)
}

func (s session) handleMatch(input []string) {
	if len(input) != 2 {
		s.printInvalid()
		return
	}
	sales := s.advisor.MatchAt(input[1])
	if len(sales) == 0 {
		fmt.Fprintf(s.out, "No sales for %s at the current timestamp\n", input[1])
		return
	}
	fmt.Fprintf(s.out, "Matched %d sales for %s:\n", len(sales), input[1])
	for _, sale := range sales {
		fmt.Fprintf(s.out, "%s %g at %g\n", sale.Side, sale.Amount, sale.Price)
	}
}

func (s session) handleSales(input []string) {
	if len(input) != 2 {
		s.printInvalid()
		return
	}
	sales := s.advisor.SalesFor(input[1])
	if len(sales) == 0 {
		fmt.Fprintf(s.out, "No recorded sales for %s\n", input[1])
		return
	}
	for _, sale := range sales {
		fmt.Fprintf(s.out, "%s %s %s %g at %g\n", sale.SaleID, sale.Timestamp, sale.Side, sale.Amount, sale.Price)
	}
}

func (s session) printQueryError(err error, sideText, product, where string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(s.out, verr.Message)
	case errors.Is(err, domain.ErrProductNotFound):
		fmt.Fprintf(s.out, "%s for %s not found in %s\n", sideText, product, where)
	case errors.Is(err, domain.ErrNoData), errors.Is(err, domain.ErrEmptyInput):
		fmt.Fprintf(s.out, "not enough data for %s to answer\n", product)
	default:
		fmt.Fprintln(s.out, err.Error())
	}
}

func (s session) printInvalid() {
	fmt.Fprintln(s.out, "Invalid input. type help, to see available commands")
}
