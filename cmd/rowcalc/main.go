package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnnaCode987/rowcalc"
)

// rootCmd evaluates one or more formulas against a single row of column
// values supplied inline or taken from a CSV file.
var rootCmd = &cobra.Command{
	Use:   "rowcalc [formula]...",
	Short: "Evaluate spreadsheet formulas against a row of column values.",
	Long: `Evaluate spreadsheet formulas against a row of column values.

Columns are referenced as c1..cN. Example:

  rowcalc --row 10,20,30 "SUM(c1:c3)" "c1*c2" "IF(c3>25,c1,c2)"`,
	Args: cobra.MinimumNArgs(1),
	Run:  run,
}

func init() {
	rootCmd.Flags().String("row", "", "comma-separated column values (numbers, booleans or strings)")
	rootCmd.Flags().String("csv", "", "CSV file to take the row from")
	rootCmd.Flags().Int("line", 1, "1-based line of the CSV file to evaluate against")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
	row, err := loadRow(cmd)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("evaluating %d formula(s) against %d column(s)", len(args), len(row))
	failed := false
	for _, formula := range args {
		res, err := rowcalc.EvaluateString(formula, row)
		if err != nil {
			log.Errorf("%s: %v", formula, err)
			failed = true
			continue
		}
		if res.IsError() {
			log.Warnf("%s: %s", formula, res.Value())
			failed = true
		}
		fmt.Printf("%s = %s\n", formula, res.Value())
	}
	if failed {
		os.Exit(1)
	}
}

// loadRow builds the column row from --row or --csv.
func loadRow(cmd *cobra.Command) (rowcalc.Row, error) {
	inline, _ := cmd.Flags().GetString("row")
	file, _ := cmd.Flags().GetString("csv")
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("--row and --csv are mutually exclusive")
	case inline != "":
		return parseRow(inline), nil
	case file != "":
		line, _ := cmd.Flags().GetInt("line")
		return loadCSVRow(file, line)
	}
	return nil, fmt.Errorf("one of --row or --csv is required")
}

// parseRow converts a comma-separated value list into a row, recognising
// numbers and booleans and falling back to strings.
func parseRow(values string) rowcalc.Row {
	fields := strings.Split(values, ",")
	row := make(rowcalc.Row, 0, len(fields))
	for _, field := range fields {
		row = append(row, parseValue(strings.TrimSpace(field)))
	}
	return row
}

func parseValue(field string) any {
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(strings.ToLower(field)); err == nil {
		return b
	}
	return field
}

// loadCSVRow reads the given 1-based line of a CSV file as the column row.
func loadCSVRow(path string, line int) (rowcalc.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if line < 1 || line > len(records) {
		return nil, fmt.Errorf("line %d is out of range for %s (%d lines)", line, path, len(records))
	}
	row := make(rowcalc.Row, 0, len(records[line-1]))
	for _, field := range records[line-1] {
		row = append(row, parseValue(field))
	}
	return row, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
