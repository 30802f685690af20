package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bomtools/dd1750/internal/form"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	report, err := form.InspectFile(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error inspecting fields: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("DD1750 Fields - Inspect the fillable fields on a generated packing list")
	fmt.Println()
	fmt.Println("This tool dumps the header fields stamped onto a DD Form 1750 so that values")
	fmt.Println("edited in a PDF viewer can be checked against what the generator wrote.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  dd1750_fields packing_list.pdf")
	fmt.Println("  dd1750_fields -format json packing_list.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  dd1750_fields [OPTIONS] <pdf_file>")
}

func outputResults(report *form.FieldReport) error {
	switch *outputFormat {
	case "json":
		return outputJSON(report)
	case "text":
		return outputText(report)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(report *form.FieldReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func outputText(report *form.FieldReport) error {
	fmt.Printf("File: %s\n", report.Path)
	fmt.Printf("Pages: %d\n", report.Pages)
	fmt.Println()

	if report.FieldCount == 0 {
		fmt.Println("No fillable fields detected. Blank forms and untouched templates carry none.")
		return nil
	}

	fmt.Printf("Found %d fillable fields\n", report.FieldCount)
	fmt.Println()

	for i, field := range report.Fields {
		fmt.Printf("[%d] %s\n", i+1, field.Name)
		if field.Tooltip != "" {
			fmt.Printf("    Label: %s\n", field.Tooltip)
		}
		if field.Value != "" {
			fmt.Printf("    Value: %s\n", field.Value)
		}
		fmt.Printf("    Position: (%.1f, %.1f) to (%.1f, %.1f)\n",
			field.Rect[0], field.Rect[1], field.Rect[2], field.Rect[3])
		fmt.Println()
	}

	return nil
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
