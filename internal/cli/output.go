package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thenoetrevino/dragboard/internal/models"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if ids, ok := idsOf(data); ok {
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// idsOf extracts the ids printed in quiet mode
func idsOf(data any) ([]string, bool) {
	switch v := data.(type) {
	case *models.Board:
		return []string{v.ID.String()}, true
	case *models.List:
		return []string{v.ID.String()}, true
	case *models.Card:
		return []string{v.ID.String()}, true
	case []*models.Board:
		ids := make([]string, 0, len(v))
		for _, b := range v {
			ids = append(ids, b.ID.String())
		}
		return ids, true
	case []*models.List:
		ids := make([]string, 0, len(v))
		for _, l := range v {
			ids = append(ids, l.ID.String())
		}
		return ids, true
	}
	return nil, false
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	switch v := data.(type) {
	case *models.Board:
		fmt.Printf("Board %s: %s\n", v.ID, v.Title)
	case []*models.Board:
		if len(v) == 0 {
			fmt.Println("No boards found")
			return nil
		}
		fmt.Println("Boards:")
		for i, b := range v {
			fmt.Printf("  %d. %s (ID: %s)\n", i+1, b.Title, b.ID)
		}
	case *models.List:
		fmt.Printf("List %s: %s (position %d)\n", v.ID, v.Title, v.Order)
	case *models.Card:
		fmt.Printf("Card %s: %s (list %s, position %d)\n", v.ID, v.Title, v.ListID, v.Order)
	case []*models.List:
		if len(v) == 0 {
			fmt.Println("No lists on this board")
			return nil
		}
		for _, l := range v {
			fmt.Printf("%s (ID: %s, %d cards)\n", l.Title, l.ID, len(l.Cards))
			for j, c := range l.Cards {
				fmt.Printf("  %d. %s (ID: %s)\n", j+1, c.Title, c.ID)
			}
		}
	case string:
		fmt.Println(v)
	default:
		fmt.Printf("%+v\n", data)
	}
	return nil
}
