package validator_test

import (
	"fmt"
	"log"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/validator"
)

// ExampleValidate demonstrates validating a generated document
func ExampleValidate() {
	doc, err := catalog.Build("https://idp.example.org")
	if err != nil {
		log.Fatal(err)
	}
	result, err := validator.Validate(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Valid: %v\n", result.Valid)
	fmt.Printf("Errors: %d\n", result.ErrorCount)
	fmt.Printf("Warnings: %d\n", result.WarningCount)
	// Output:
	// Valid: true
	// Errors: 0
	// Warnings: 0
}

// ExampleValidate_placeholders shows that undescribed endpoints surface as warnings
func ExampleValidate_placeholders() {
	doc, err := catalog.New(catalog.WithPlaceholders()).Build("https://idp.example.org")
	if err != nil {
		log.Fatal(err)
	}
	result, err := validator.Validate(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Valid: %v\n", result.Valid)
	fmt.Println(result.Warnings[0])
	// Output:
	// Valid: true
	// ⚠ $.paths['/connect/checksession'] (placeholder: /connect/checksession): endpoint is not described
}
